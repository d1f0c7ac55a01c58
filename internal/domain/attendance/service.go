package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CreateAttendance records one day for an employee
	CreateAttendance(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// UpdateAttendance applies a partial change and stores the result
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// DeleteAttendance removes an attendance record
	DeleteAttendance(ctx context.Context, id string) error

	// Subscribe streams change events until the returned cancel is called
	Subscribe(ctx context.Context) (<-chan ChangeEvent, func())
}
