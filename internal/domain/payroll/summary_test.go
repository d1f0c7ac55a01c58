package payroll

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSummary(t *testing.T) {
	emp := EmployeePay{EmployeeID: "e1", EmployeeName: "Abebe Kebede", Method: PaymentMethodWeekly, Rates: Rates{Daily: dec("160")}}
	records := []AttendanceEntry{
		present("e1", day(2024, time.May, 6), "09:00", "13:00"),
		present("e1", day(2024, time.May, 7), "09:00", "13:00"),
		present("e1", day(2024, time.May, 8), "09:00", "13:00"),
	}
	entry, ok, err := Calculate(CalculationInput{Employee: emp, Records: records, Period: testWeek, Rules: DefaultRules()})
	require.NoError(t, err)
	require.True(t, ok)

	want := strings.Join([]string{
		"Payroll Summary",
		"Employee: Abebe Kebede",
		"Payment: Weekly",
		"Period: 06 May 2024 - 12 May 2024",
		"Ethiopian: 28 Miazia 2016 - 4 Genbot 2016",
		"Working days: 3",
		"Total hours: 22.50",
		"Overtime hours: 0.00",
		"Base pay: 450.00 ETB",
		"Overtime pay: 0.00 ETB",
		"Total payout: 450.00 ETB",
		"Status: Unpaid",
	}, "\n")

	text, err := FormatSummary(entry, "")
	require.NoError(t, err)
	assert.Equal(t, want, text)

	text, err = FormatSummary(entry, "Birr")
	require.NoError(t, err)
	assert.Contains(t, text, "Total payout: 450.00 Birr")
}
