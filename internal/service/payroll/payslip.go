package payroll

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, query payroll.EmployeePeriodQuery) ([]byte, string, error) {
	if err := query.Validate(); err != nil {
		return nil, "", err
	}
	emp, entry, payment, err := s.entryFor(ctx, query)
	if err != nil {
		return nil, "", err
	}

	pdf, err := renderPayslip(emp, entry, payment, s.settings.Currency)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render payslip: %w", err)
	}

	filename := fmt.Sprintf("payslip-%s-%s.pdf", slug(emp.FullName), entry.Period.Start.Format(time.DateOnly))
	return pdf, filename, nil
}

func renderPayslip(emp employee.Employee, entry payroll.Entry, payment *payroll.Payment, currency string) ([]byte, error) {
	money := func(d decimal.Decimal) string { return d.StringFixed(2) + " " + currency }
	hours := func(h float64) string { return decimal.NewFromFloat(h).StringFixed(2) }

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+entry.PeriodLabel, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Employee", emp.FullName},
		{"Phone", emp.PhoneNumber},
	}
	if emp.JobTitle != nil {
		rows = append(rows, [2]string{"Job title", *emp.JobTitle})
	}
	if emp.BankAccount != nil {
		rows = append(rows, [2]string{"Bank account", *emp.BankAccount})
	}
	rows = append(rows,
		[2]string{"Payment", string(entry.PaymentMethod)},
		[2]string{"Period", entry.PeriodLabel},
		[2]string{"Ethiopian", entry.PeriodLabelEthiopian},
	)
	for _, row := range rows {
		labelRow(pdf, row[0], row[1])
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 8, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(80, 8, "Amount", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)

	lines := [][2]string{
		{"Working days", fmt.Sprintf("%d", entry.WorkingDays)},
		{"Hours worked", hours(entry.TotalHours)},
		{"Overtime hours", hours(entry.OvertimeHours)},
		{"Hourly rate", money(entry.HourlyRate.Round(2))},
		{"Base pay", money(entry.BaseAmount)},
		{"Overtime pay", money(entry.OvertimeAmount)},
	}
	for _, line := range lines {
		pdf.CellFormat(90, 8, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 8, line[1], "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 9, "Total payout", "T", 0, "L", false, 0, "")
	pdf.CellFormat(80, 9, money(entry.Amount), "T", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	status := string(entry.Status)
	if payment != nil && payment.PaidAt != nil {
		status += " on " + payment.PaidAt.In(entry.Period.Start.Location()).Format("02 Jan 2006 15:04")
	}
	labelRow(pdf, "Status", status)
	if len(entry.DuplicateDates) > 0 {
		labelRow(pdf, "Duplicate days", strings.Join(entry.DuplicateDates, ", "))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func labelRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(40, 7, label+":", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

// slug keeps letters and digits of name, joined by dashes.
func slug(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "employee"
	}
	return strings.Join(fields, "-")
}
