package mongodb

import (
	"testing"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var eat = time.FixedZone("EAT", 3*60*60)

func TestEmployeeDocument_DecimalRates(t *testing.T) {
	daily := decimal.RequireFromString("400.50")
	e := employee.Employee{
		ID:            "e1",
		FullName:      "Abebe Kebede",
		PhoneNumber:   "0911223344",
		PaymentMethod: payroll.PaymentMethodWeekly,
		DailyRate:     &daily,
	}

	doc, err := newEmployeeDocument(e)
	require.NoError(t, err)
	assert.Nil(t, doc.HourlyRate)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var decoded employeeDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	got, err := decoded.entity()
	require.NoError(t, err)
	require.NotNil(t, got.DailyRate)
	assert.True(t, daily.Equal(*got.DailyRate))
	assert.Nil(t, got.MonthlyRate)
	assert.Equal(t, payroll.PaymentMethodWeekly, got.PaymentMethod)
}

func TestAttendanceDocument_DayInShopZone(t *testing.T) {
	date := time.Date(2024, time.May, 8, 0, 0, 0, 0, eat)
	doc := newAttendanceDocument(attendance.Attendance{ID: "a1", EmployeeID: "e1", Date: date, Status: attendance.StatusLate})

	// midnight EAT is still the 7th in UTC; the day key must not shift
	assert.Equal(t, "2024-05-08", doc.Day)

	got, err := doc.entity(eat)
	require.NoError(t, err)
	assert.True(t, date.Equal(got.Date))
	assert.Equal(t, eat, got.Date.Location())
	assert.Equal(t, attendance.StatusLate, got.Status)
}

func TestDayRange(t *testing.T) {
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, eat)
	assert.Equal(t, bson.M{"$gte": "2024-05-01"}, dayRange(&from, nil))
	assert.Empty(t, dayRange(nil, nil))
}
