package payroll

import "errors"

var (
	ErrInvalidClockTime     = errors.New("invalid clock time, expected HH:MM")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrNoPayrollEntry       = errors.New("employee has no payroll for this period")
	ErrPaymentNotFound      = errors.New("payroll payment not found")
	ErrNoRecipient          = errors.New("no chat recipient configured for employee")
)
