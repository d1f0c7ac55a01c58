package employee

import (
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	FullName      string
	PhoneNumber   string
	JobTitle      *string
	PaymentMethod payroll.PaymentMethod
	BankAccount   *string
	DailyRate     *decimal.Decimal
	MonthlyRate   *decimal.Decimal
	HourlyRate    *decimal.Decimal
	ChatID        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Pay returns the fields the payroll calculator works from.
func (e Employee) Pay() payroll.EmployeePay {
	return payroll.EmployeePay{
		EmployeeID:   e.ID,
		EmployeeName: e.FullName,
		Method:       e.PaymentMethod,
		Rates: payroll.Rates{
			Hourly:  e.HourlyRate,
			Daily:   e.DailyRate,
			Monthly: e.MonthlyRate,
		},
	}
}
