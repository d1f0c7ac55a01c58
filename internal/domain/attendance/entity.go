package attendance

import (
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
)

type Status string

const (
	StatusPresent Status = payroll.AttendancePresent
	StatusLate    Status = payroll.AttendanceLate
	StatusAbsent  Status = payroll.AttendanceAbsent
)

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusLate || s == StatusAbsent
}

// Attendance is one employee's record for one calendar day. Date is always
// midnight in the shop's location.
type Attendance struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	Morning       *string
	Afternoon     *string
	Status        Status
	OvertimeHours *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}

// Entry converts the record into calculator input.
func (a Attendance) Entry() payroll.AttendanceEntry {
	entry := payroll.AttendanceEntry{
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Morning:    a.Morning,
		Afternoon:  a.Afternoon,
		Status:     string(a.Status),
	}
	if a.OvertimeHours != nil {
		entry.OvertimeHours = *a.OvertimeHours
	}
	return entry
}

// Entries converts records into calculator input.
func Entries(records []Attendance) []payroll.AttendanceEntry {
	entries := make([]payroll.AttendanceEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, r.Entry())
	}
	return entries
}
