package employee

import (
	"context"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
)

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// ListByPaymentMethod returns every employee paid on method; an empty
	// method returns all employees.
	ListByPaymentMethod(ctx context.Context, method payroll.PaymentMethod) ([]Employee, error)
	Update(ctx context.Context, updated Employee) error
	Delete(ctx context.Context, id string) error
}
