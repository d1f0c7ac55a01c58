package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment marks an employee's payroll for one period as paid. The calculator
// never reads it; it is overlaid on freshly computed entries.
type Payment struct {
	ID          string
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Amount      decimal.Decimal
	Status      PayStatus
	PaidAt      *time.Time
	PaidBy      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PeriodKey identifies a payment by employee and period bounds.
func PeriodKey(employeeID string, start, end time.Time) string {
	return employeeID + "|" + start.Format(time.DateOnly) + "|" + end.Format(time.DateOnly)
}

func (p Payment) Key() string {
	return PeriodKey(p.EmployeeID, p.PeriodStart, p.PeriodEnd)
}
