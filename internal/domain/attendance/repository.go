package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create fails with ErrAttendanceAlreadyExists when the employee already
	// has a record on that date.
	Create(ctx context.Context, newAttendance Attendance) (Attendance, error)
	GetByID(ctx context.Context, id string) (Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
	// ListByDateRange returns the records dated within [from, to], optionally
	// restricted to employeeIDs.
	ListByDateRange(ctx context.Context, from, to time.Time, employeeIDs []string) ([]Attendance, error)
	Update(ctx context.Context, updated Attendance) error
	Delete(ctx context.Context, id string) error
}
