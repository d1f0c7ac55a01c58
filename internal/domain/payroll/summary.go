package payroll

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/shopspring/decimal"
)

const DefaultCurrency = "ETB"

var summaryTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"hours": func(h float64) string { return decimal.NewFromFloat(h).StringFixed(2) },
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
}).Parse(`Payroll Summary
Employee: {{.Entry.EmployeeName}}
Payment: {{.Entry.PaymentMethod}}
Period: {{.Entry.PeriodLabel}}
Ethiopian: {{.Entry.PeriodLabelEthiopian}}
Working days: {{.Entry.WorkingDays}}
Total hours: {{hours .Entry.TotalHours}}
Overtime hours: {{hours .Entry.OvertimeHours}}
Base pay: {{money .Entry.BaseAmount}} {{.Currency}}
Overtime pay: {{money .Entry.OvertimeAmount}} {{.Currency}}
Total payout: {{money .Entry.Amount}} {{.Currency}}
Status: {{.Entry.Status}}`))

// FormatSummary renders the entry as a plain-text message for chat or SMS.
func FormatSummary(entry Entry, currency string) (string, error) {
	if currency == "" {
		currency = DefaultCurrency
	}

	var b strings.Builder
	err := summaryTemplate.Execute(&b, struct {
		Entry    Entry
		Currency string
	}{entry, currency})
	if err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return b.String(), nil
}
