package attendance

import (
	"strings"
	"time"

	"github.com/furnishop/shop-backend-go/internal/pkg/validator"
)

const maxOvertimeHours = 24

// Change describes an edit to an attendance record. Nil fields keep their
// current value. An empty clock-in or zero overtime clears the field.
type Change struct {
	Date          *FlexibleDate
	Morning       *string
	Afternoon     *string
	Status        *Status
	OvertimeHours *float64
}

// ApplyChange returns the record that results from applying change to
// current. current is never modified; storing the result is the caller's job.
func ApplyChange(current Attendance, change Change, loc *time.Location) (Attendance, error) {
	var errs validator.ValidationErrors
	next := current

	if change.Date != nil {
		date, err := change.Date.Time(loc)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a date (YYYY-MM-DD), an RFC 3339 timestamp or a {seconds, nanoseconds} object"})
		} else {
			next.Date = date
		}
	}

	if change.Morning != nil {
		clock, ok := normalizeClock(*change.Morning)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "morning", Message: "must be a time in HH:MM format"})
		}
		next.Morning = clock
	}
	if change.Afternoon != nil {
		clock, ok := normalizeClock(*change.Afternoon)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "afternoon", Message: "must be a time in HH:MM format"})
		}
		next.Afternoon = clock
	}

	if change.Status != nil {
		if !change.Status.IsValid() {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of: Present, Late, Absent"})
		}
		next.Status = *change.Status
	}

	if change.OvertimeHours != nil {
		hours := *change.OvertimeHours
		switch {
		case hours < 0 || hours > maxOvertimeHours:
			errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be between 0 and 24"})
		case hours == 0:
			next.OvertimeHours = nil
		default:
			next.OvertimeHours = &hours
		}
	}

	if len(errs) > 0 {
		return current, errs
	}
	return next, nil
}

// normalizeClock returns nil for blank input and a zero-padded "HH:MM"
// otherwise.
func normalizeClock(s string) (*string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return nil, false
	}
	clock := t.Format("15:04")
	return &clock, true
}
