package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/domain/auth"
	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/notification"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, auth.ErrInvalidRole):
		Forbidden(w, "Invalid role")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrPhoneNumberExists):
		Conflict(w, "Phone number already registered")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrAttendanceAlreadyExists):
		Conflict(w, "Attendance already recorded for this employee and date")
	case errors.Is(err, attendance.ErrInvalidDate):
		Unprocessable(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidClockTime),
		errors.Is(err, payroll.ErrInvalidPaymentMethod),
		errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrNoRecipient):
		Unprocessable(w, err.Error())
	case errors.Is(err, payroll.ErrNoPayrollEntry):
		NotFound(w, "No payroll for this employee in the period")
	case errors.Is(err, payroll.ErrPaymentNotFound):
		NotFound(w, "Payment not found")

	// Notification domain errors
	case errors.Is(err, notification.ErrMissingCredential):
		InternalServerError(w, "Chat bot is not configured")
	case errors.Is(err, notification.ErrDeliveryFailed):
		BadGateway(w, "Message delivery failed")
	case errors.Is(err, notification.ErrQueueFull):
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Error: &ErrorDetail{Code: "QUEUE_FULL", Message: "Notification queue is full"},
		})

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
