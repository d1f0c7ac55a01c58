package attendance

import (
	"time"

	"github.com/furnishop/shop-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CreateAttendanceRequest struct {
	EmployeeID    string       `json:"employee_id"`
	Date          FlexibleDate `json:"date"`
	Morning       *string      `json:"morning,omitempty"`
	Afternoon     *string      `json:"afternoon,omitempty"`
	Status        string       `json:"status"`
	OvertimeHours *float64     `json:"overtime_hours,omitempty"`
}

// Validate checks required fields; value formats are checked by ApplyChange.
func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.Date.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date is required"})
	}
	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r CreateAttendanceRequest) Change() Change {
	status := Status(r.Status)
	return Change{
		Date:          &r.Date,
		Morning:       r.Morning,
		Afternoon:     r.Afternoon,
		Status:        &status,
		OvertimeHours: r.OvertimeHours,
	}
}

// UpdateAttendanceRequest is a partial update of an attendance record.
type UpdateAttendanceRequest struct {
	ID            string        `json:"-"`
	Date          *FlexibleDate `json:"date,omitempty"`
	Morning       *string       `json:"morning,omitempty"`
	Afternoon     *string       `json:"afternoon,omitempty"`
	Status        *string       `json:"status,omitempty"`
	OvertimeHours *float64      `json:"overtime_hours,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Date == nil && r.Morning == nil && r.Afternoon == nil && r.Status == nil && r.OvertimeHours == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field must be provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r UpdateAttendanceRequest) Change() Change {
	change := Change{
		Date:          r.Date,
		Morning:       r.Morning,
		Afternoon:     r.Afternoon,
		OvertimeHours: r.OvertimeHours,
	}
	if r.Status != nil {
		status := Status(*r.Status)
		change.Status = &status
	}
	return change
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortOrder string `json:"sort_order"` // by date: asc, desc

	// Resolved by Validate
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

// Validate checks the filter, applies defaults, and resolves the date range
// in loc.
func (f *AttendanceFilter) Validate(loc *time.Location) error {
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

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: Present, Late, Absent"})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if t, err := time.ParseInLocation(time.DateOnly, *f.StartDate, loc); err != nil {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		} else {
			f.From = &t
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if t, err := time.ParseInLocation(time.DateOnly, *f.EndDate, loc); err != nil {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		} else {
			f.To = &t
		}
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if f.SortOrder == "" {
		f.SortOrder = "desc"
	} else if f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "sort_order must be 'asc' or 'desc'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string    `json:"id"`
	EmployeeID    string    `json:"employee_id"`
	EmployeeName  *string   `json:"employee_name,omitempty"`
	Date          string    `json:"date"`
	Morning       *string   `json:"morning,omitempty"`
	Afternoon     *string   `json:"afternoon,omitempty"`
	Status        Status    `json:"status"`
	OvertimeHours *float64  `json:"overtime_hours,omitempty"`
	WorkHours     float64   `json:"work_hours"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ChangeEvent is published on every successful write.
type ChangeEvent struct {
	Action     string             `json:"action"` // created, updated, deleted
	Attendance AttendanceResponse `json:"attendance"`
}
