package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyExists = errors.New("attendance already recorded for this employee on this date")
	ErrInvalidDate             = errors.New("invalid attendance date")
)
