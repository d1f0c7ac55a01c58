package employee

import (
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CreateEmployeeRequest struct {
	FullName      string           `json:"full_name" validate:"required,max=120"`
	PhoneNumber   string           `json:"phone_number" validate:"required,phone"`
	JobTitle      *string          `json:"job_title,omitempty" validate:"omitempty,max=80"`
	PaymentMethod string           `json:"payment_method" validate:"required,oneof=Weekly Monthly"`
	BankAccount   *string          `json:"bank_account,omitempty" validate:"omitempty,max=40"`
	DailyRate     *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlyRate   *decimal.Decimal `json:"monthly_rate,omitempty"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty"`
	ChatID        *string          `json:"chat_id,omitempty" validate:"omitempty,max=64"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	errs = append(errs, validateRates(r.DailyRate, r.MonthlyRate, r.HourlyRate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest is a partial update. A zero rate clears that rate.
type UpdateEmployeeRequest struct {
	ID            string           `json:"-"`
	FullName      *string          `json:"full_name,omitempty" validate:"omitempty,min=1,max=120"`
	PhoneNumber   *string          `json:"phone_number,omitempty" validate:"omitempty,phone"`
	JobTitle      *string          `json:"job_title,omitempty" validate:"omitempty,max=80"`
	PaymentMethod *string          `json:"payment_method,omitempty" validate:"omitempty,oneof=Weekly Monthly"`
	BankAccount   *string          `json:"bank_account,omitempty" validate:"omitempty,max=40"`
	DailyRate     *decimal.Decimal `json:"daily_rate,omitempty"`
	MonthlyRate   *decimal.Decimal `json:"monthly_rate,omitempty"`
	HourlyRate    *decimal.Decimal `json:"hourly_rate,omitempty"`
	ChatID        *string          `json:"chat_id,omitempty" validate:"omitempty,max=64"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "is required"})
	}
	if err := validator.Struct(r); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, fieldErrs...)
	}
	errs = append(errs, validateRates(r.DailyRate, r.MonthlyRate, r.HourlyRate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplyTo returns a copy of e with the requested changes.
func (r UpdateEmployeeRequest) ApplyTo(e Employee) Employee {
	if r.FullName != nil {
		e.FullName = *r.FullName
	}
	if r.PhoneNumber != nil {
		e.PhoneNumber = *r.PhoneNumber
	}
	if r.JobTitle != nil {
		e.JobTitle = emptyToNil(*r.JobTitle)
	}
	if r.PaymentMethod != nil {
		e.PaymentMethod = payroll.PaymentMethod(*r.PaymentMethod)
	}
	if r.BankAccount != nil {
		e.BankAccount = emptyToNil(*r.BankAccount)
	}
	if r.DailyRate != nil {
		e.DailyRate = zeroToNil(*r.DailyRate)
	}
	if r.MonthlyRate != nil {
		e.MonthlyRate = zeroToNil(*r.MonthlyRate)
	}
	if r.HourlyRate != nil {
		e.HourlyRate = zeroToNil(*r.HourlyRate)
	}
	if r.ChatID != nil {
		e.ChatID = emptyToNil(*r.ChatID)
	}
	return e
}

func validateRates(daily, monthly, hourly *decimal.Decimal) validator.ValidationErrors {
	var errs validator.ValidationErrors
	rates := []struct {
		field string
		value *decimal.Decimal
	}{{"daily_rate", daily}, {"monthly_rate", monthly}, {"hourly_rate", hourly}}

	for _, r := range rates {
		if r.value != nil && r.value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: r.field, Message: "must be non-negative"})
		}
	}
	return errs
}

func emptyToNil(s string) *string {
	if validator.IsEmpty(s) {
		return nil
	}
	return &s
}

func zeroToNil(d decimal.Decimal) *decimal.Decimal {
	if d.IsZero() {
		return nil
	}
	return &d
}

type EmployeeFilter struct {
	// Search & Filter
	Search        *string `json:"search,omitempty"` // matches full name
	PaymentMethod *string `json:"payment_method,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // full_name, created_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if f.PaymentMethod != nil && !payroll.PaymentMethod(*f.PaymentMethod).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "payment_method must be one of: Weekly, Monthly"})
	}

	if f.SortBy == "" {
		f.SortBy = "full_name"
	} else if !validator.IsInSlice(f.SortBy, []string{"full_name", "created_at"}) {
		errs = append(errs, validator.ValidationError{Field: "sort_by", Message: "sort_by must be one of: full_name, created_at"})
	}
	if f.SortOrder == "" {
		f.SortOrder = "asc"
	} else if f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "sort_order must be 'asc' or 'desc'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID            string                `json:"id"`
	FullName      string                `json:"full_name"`
	PhoneNumber   string                `json:"phone_number"`
	JobTitle      *string               `json:"job_title,omitempty"`
	PaymentMethod payroll.PaymentMethod `json:"payment_method"`
	BankAccount   *string               `json:"bank_account,omitempty"`
	DailyRate     *decimal.Decimal      `json:"daily_rate,omitempty"`
	MonthlyRate   *decimal.Decimal      `json:"monthly_rate,omitempty"`
	HourlyRate    *decimal.Decimal      `json:"hourly_rate,omitempty"`
	ChatID        *string               `json:"chat_id,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		FullName:      e.FullName,
		PhoneNumber:   e.PhoneNumber,
		JobTitle:      e.JobTitle,
		PaymentMethod: e.PaymentMethod,
		BankAccount:   e.BankAccount,
		DailyRate:     e.DailyRate,
		MonthlyRate:   e.MonthlyRate,
		HourlyRate:    e.HourlyRate,
		ChatID:        e.ChatID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}
