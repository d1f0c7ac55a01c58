// Package memory holds map-backed repositories for tests and local runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
)

type employeeRepositoryImpl struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepositoryImpl{employees: make(map[string]employee.Employee)}
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phoneTaken(newEmployee.PhoneNumber, "") {
		return employee.Employee{}, employee.ErrPhoneNumberExists
	}
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []employee.Employee
	for _, e := range r.employees {
		if filter.Search != nil && *filter.Search != "" &&
			!strings.Contains(strings.ToLower(e.FullName), strings.ToLower(*filter.Search)) {
			continue
		}
		if filter.PaymentMethod != nil && string(e.PaymentMethod) != *filter.PaymentMethod {
			continue
		}
		matched = append(matched, e)
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if filter.SortOrder == "desc" {
			a, b = b, a
		}
		if filter.SortBy == "created_at" && !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.FullName != b.FullName {
			return a.FullName < b.FullName
		}
		return a.ID < b.ID
	})

	return paginate(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func (r *employeeRepositoryImpl) ListByPaymentMethod(ctx context.Context, method payroll.PaymentMethod) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		if method == "" || e.PaymentMethod == method {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[updated.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	if r.phoneTaken(updated.PhoneNumber, updated.ID) {
		return employee.ErrPhoneNumberExists
	}
	r.employees[updated.ID] = updated
	return nil
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

func (r *employeeRepositoryImpl) phoneTaken(phone, exceptID string) bool {
	for id, e := range r.employees {
		if id != exceptID && e.PhoneNumber == phone {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
