package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const employeeColumns = `
	id, full_name, phone_number, job_title, payment_method, bank_account,
	daily_rate::text, monthly_rate::text, hourly_rate::text, chat_id, created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp                    employee.Employee
		method                 string
		daily, monthly, hourly *string
	)
	err := row.Scan(
		&emp.ID, &emp.FullName, &emp.PhoneNumber, &emp.JobTitle, &method, &emp.BankAccount,
		&daily, &monthly, &hourly, &emp.ChatID, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	emp.PaymentMethod = payroll.PaymentMethod(method)

	if emp.DailyRate, err = scanDecimal(daily); err != nil {
		return employee.Employee{}, err
	}
	if emp.MonthlyRate, err = scanDecimal(monthly); err != nil {
		return employee.Employee{}, err
	}
	if emp.HourlyRate, err = scanDecimal(hourly); err != nil {
		return employee.Employee{}, err
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, full_name, phone_number, job_title, payment_method, bank_account,
			daily_rate, monthly_rate, hourly_rate, chat_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7::numeric, $8::numeric, $9::numeric, $10, $11, $12
		)
		RETURNING` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.ID, newEmployee.FullName, newEmployee.PhoneNumber, newEmployee.JobTitle,
		string(newEmployee.PaymentMethod), newEmployee.BankAccount,
		decimalParam(newEmployee.DailyRate), decimalParam(newEmployee.MonthlyRate), decimalParam(newEmployee.HourlyRate),
		newEmployee.ChatID, newEmployee.CreatedAt, newEmployee.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrPhoneNumberExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, `SELECT`+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("full_name ILIKE $%d", argIdx))
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.PaymentMethod != nil && *filter.PaymentMethod != "" {
		conditions = append(conditions, fmt.Sprintf("payment_method = $%d", argIdx))
		args = append(args, *filter.PaymentMethod)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM employees WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	sortColumn := "full_name"
	if filter.SortBy == "created_at" {
		sortColumn = "created_at"
	}
	sortOrder := "ASC"
	if strings.ToUpper(filter.SortOrder) == "DESC" {
		sortOrder = "DESC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE %s ORDER BY %s %s, id LIMIT $%d OFFSET $%d`,
		employeeColumns, whereClause, sortColumn, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	employees, err := e.query(ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListByPaymentMethod implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByPaymentMethod(ctx context.Context, method payroll.PaymentMethod) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	if method == "" {
		return e.query(ctx, q, `SELECT`+employeeColumns+` FROM employees ORDER BY id`)
	}
	return e.query(ctx, q, `SELECT`+employeeColumns+` FROM employees WHERE payment_method = $1 ORDER BY id`, string(method))
}

func (e *employeeRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees SET
			full_name = $2, phone_number = $3, job_title = $4, payment_method = $5, bank_account = $6,
			daily_rate = $7::numeric, monthly_rate = $8::numeric, hourly_rate = $9::numeric,
			chat_id = $10, updated_at = $11
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		updated.ID, updated.FullName, updated.PhoneNumber, updated.JobTitle,
		string(updated.PaymentMethod), updated.BankAccount,
		decimalParam(updated.DailyRate), decimalParam(updated.MonthlyRate), decimalParam(updated.HourlyRate),
		updated.ChatID, updated.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrPhoneNumberExists
		}
		return fmt.Errorf("failed to update employee with id %s: %w", updated.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// Delete implements employee.EmployeeRepository. Attendance and payments go
// with the employee through ON DELETE CASCADE.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
