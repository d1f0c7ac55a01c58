package payroll

import (
	"context"
	"time"
)

// PaymentRepository persists paid/unpaid marks per (employee, period).
type PaymentRepository interface {
	// Upsert creates or replaces the payment for the same employee and period.
	Upsert(ctx context.Context, payment Payment) (Payment, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (Payment, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]Payment, error)
	Delete(ctx context.Context, employeeID string, start, end time.Time) error
}
