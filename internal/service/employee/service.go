package employee

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}
	now := s.now().UTC()

	newEmployee := employee.Employee{
		ID:            id.String(),
		FullName:      strings.TrimSpace(req.FullName),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		JobTitle:      req.JobTitle,
		PaymentMethod: payroll.PaymentMethod(req.PaymentMethod),
		BankAccount:   req.BankAccount,
		DailyRate:     req.DailyRate,
		MonthlyRate:   req.MonthlyRate,
		HourlyRate:    req.HourlyRate,
		ChatID:        req.ChatID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	// zero rates mean "not set", same as on update
	newEmployee = employee.UpdateEmployeeRequest{
		DailyRate:   req.DailyRate,
		MonthlyRate: req.MonthlyRate,
		HourlyRate:  req.HourlyRate,
	}.ApplyTo(newEmployee)

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "payment_method", created.PaymentMethod)
	return employee.NewEmployeeResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated := req.ApplyTo(current)
	updated.UpdatedAt = s.now().UTC()

	if err := s.employeeRepo.Update(ctx, updated); err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee updated", "employee_id", updated.ID)
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Employee deleted", "employee_id", id)
	return nil
}
