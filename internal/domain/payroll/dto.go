package payroll

import (
	"time"

	"github.com/furnishop/shop-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== REQUEST DTOs ==========

// PeriodQuery selects a pay period. Reference defaults to today; the period
// used is the last full week or month before it.
type PeriodQuery struct {
	Method    string `json:"method"`
	Reference string `json:"reference,omitempty"`
}

func (q *PeriodQuery) Validate() error {
	var errs validator.ValidationErrors

	if _, err := ParsePaymentMethod(q.Method); err != nil {
		errs = append(errs, validator.ValidationError{Field: "method", Message: "must be 'Weekly' or 'Monthly'"})
	}
	errs = append(errs, validateReference(q.Reference)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeePeriodQuery selects one employee's payroll for the period before
// Reference. The employee's own payment method decides week or month.
type EmployeePeriodQuery struct {
	EmployeeID string `json:"-"`
	Reference  string `json:"reference,omitempty"`
}

func (q *EmployeePeriodQuery) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(q.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	errs = append(errs, validateReference(q.Reference)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaymentRequest struct {
	EmployeePeriodQuery
	PaidBy string `json:"-"`
}

type SendSummaryRequest struct {
	EmployeePeriodQuery
	RecipientID *string `json:"recipient_id,omitempty"`
}

type DashboardQuery struct {
	Reference string `json:"reference,omitempty"`
}

func (q *DashboardQuery) Validate() error {
	if errs := validateReference(q.Reference); len(errs) > 0 {
		return errs
	}
	return nil
}

const MaxExpenseMonths = 24

type ExpenseQuery struct {
	Months    int    `json:"months"`
	Reference string `json:"reference,omitempty"`
}

func (q *ExpenseQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Months < 1 || q.Months > MaxExpenseMonths {
		errs = append(errs, validator.ValidationError{Field: "months", Message: "must be between 1 and 24"})
	}
	errs = append(errs, validateReference(q.Reference)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateReference(reference string) validator.ValidationErrors {
	if reference == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(reference); !ok {
		return validator.ValidationErrors{{Field: "reference", Message: "must be in YYYY-MM-DD format"}}
	}
	return nil
}

// ReferenceDate resolves a YYYY-MM-DD reference in loc, falling back to now.
func ReferenceDate(reference string, now time.Time, loc *time.Location) time.Time {
	if reference != "" {
		if t, err := time.ParseInLocation(time.DateOnly, reference, loc); err == nil {
			return t
		}
	}
	return DateOf(now, loc)
}

// ========== RESPONSE DTOs ==========

type EntryResponse struct {
	EmployeeID           string          `json:"employee_id"`
	EmployeeName         string          `json:"employee_name"`
	PaymentMethod        PaymentMethod   `json:"payment_method"`
	PeriodStart          string          `json:"period_start"`
	PeriodEnd            string          `json:"period_end"`
	PeriodLabel          string          `json:"period_label"`
	PeriodLabelEthiopian string          `json:"period_label_ethiopian"`
	WorkingDays          int             `json:"working_days"`
	TotalHours           float64         `json:"total_hours"`
	OvertimeHours        float64         `json:"overtime_hours"`
	HourlyRate           decimal.Decimal `json:"hourly_rate"`
	BaseAmount           decimal.Decimal `json:"base_amount"`
	OvertimeAmount       decimal.Decimal `json:"overtime_amount"`
	Amount               decimal.Decimal `json:"amount"`
	Status               PayStatus       `json:"status"`
	PaidAt               *time.Time      `json:"paid_at,omitempty"`
	DuplicateDates       []string        `json:"duplicate_dates,omitempty"`
}

func NewEntryResponse(e Entry, payment *Payment) EntryResponse {
	resp := EntryResponse{
		EmployeeID:           e.EmployeeID,
		EmployeeName:         e.EmployeeName,
		PaymentMethod:        e.PaymentMethod,
		PeriodStart:          e.Period.Start.Format(time.DateOnly),
		PeriodEnd:            e.Period.End.Format(time.DateOnly),
		PeriodLabel:          e.PeriodLabel,
		PeriodLabelEthiopian: e.PeriodLabelEthiopian,
		WorkingDays:          e.WorkingDays,
		TotalHours:           e.TotalHours,
		OvertimeHours:        e.OvertimeHours,
		HourlyRate:           e.HourlyRate.Round(4),
		BaseAmount:           e.BaseAmount,
		OvertimeAmount:       e.OvertimeAmount,
		Amount:               e.Amount,
		Status:               e.Status,
		DuplicateDates:       e.DuplicateDates,
	}
	if payment != nil && payment.Status == PayStatusPaid {
		resp.Status = PayStatusPaid
		resp.PaidAt = payment.PaidAt
	}
	return resp
}

type RunResponse struct {
	Method               PaymentMethod   `json:"method"`
	PeriodStart          string          `json:"period_start"`
	PeriodEnd            string          `json:"period_end"`
	PeriodLabel          string          `json:"period_label"`
	PeriodLabelEthiopian string          `json:"period_label_ethiopian"`
	Currency             string          `json:"currency"`
	EmployeeCount        int             `json:"employee_count"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	PaidAmount           decimal.Decimal `json:"paid_amount"`
	UnpaidAmount         decimal.Decimal `json:"unpaid_amount"`
	Entries              []EntryResponse `json:"entries"`
}

type SummaryResponse struct {
	EmployeeID  string `json:"employee_id"`
	PeriodLabel string `json:"period_label"`
	Text        string `json:"text"`
}

type SendSummaryResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	RecipientID string `json:"recipient_id"`
	Text        string `json:"text"`
}

type PeriodTotals struct {
	Method               PaymentMethod   `json:"method"`
	PeriodStart          string          `json:"period_start"`
	PeriodEnd            string          `json:"period_end"`
	PeriodLabel          string          `json:"period_label"`
	PeriodLabelEthiopian string          `json:"period_label_ethiopian"`
	EmployeeCount        int             `json:"employee_count"`
	TotalHours           float64         `json:"total_hours"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
}

type DashboardResponse struct {
	Reference string       `json:"reference"`
	Currency  string       `json:"currency"`
	Weekly    PeriodTotals `json:"weekly"`
	Monthly   PeriodTotals `json:"monthly"`
}

type ExpensePoint struct {
	Month          string          `json:"month"`
	Label          string          `json:"label"`
	LabelEthiopian string          `json:"label_ethiopian"`
	EmployeeCount  int             `json:"employee_count"`
	Amount         decimal.Decimal `json:"amount"`
}

// DigestResponse reports how many summaries were handed to the notification
// queue. Delivery itself happens asynchronously.
type DigestResponse struct {
	Method      PaymentMethod `json:"method"`
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	PeriodLabel string        `json:"period_label"`
	Queued      int           `json:"queued"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
}
