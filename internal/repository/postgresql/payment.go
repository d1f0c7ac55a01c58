package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const paymentColumns = `
	id, employee_id, period_start, period_end, amount::text, status, paid_at, paid_by, created_at, updated_at`

type paymentRepository struct {
	db  *database.DB
	loc *time.Location
}

func NewPaymentRepository(db *database.DB, loc *time.Location) payroll.PaymentRepository {
	return &paymentRepository{db: db, loc: loc}
}

func (r *paymentRepository) scan(row pgx.Row) (payroll.Payment, error) {
	var (
		p          payroll.Payment
		start, end time.Time
		amount     string
		status     string
	)
	err := row.Scan(&p.ID, &p.EmployeeID, &start, &end, &amount, &status, &p.PaidAt, &p.PaidBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return payroll.Payment{}, err
	}
	if p.Amount, err = decimal.NewFromString(amount); err != nil {
		return payroll.Payment{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	p.PeriodStart = inLocation(start, r.loc)
	p.PeriodEnd = inLocation(end, r.loc)
	p.Status = payroll.PayStatus(status)
	return p, nil
}

// Upsert implements payroll.PaymentRepository.
func (r *paymentRepository) Upsert(ctx context.Context, payment payroll.Payment) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_payments (
			id, employee_id, period_start, period_end, amount, status, paid_at, paid_by, created_at, updated_at
		) VALUES ($1, $2, $3::date, $4::date, $5::numeric, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, period_start, period_end) DO UPDATE SET
			amount = EXCLUDED.amount,
			status = EXCLUDED.status,
			paid_at = EXCLUDED.paid_at,
			paid_by = EXCLUDED.paid_by,
			updated_at = EXCLUDED.updated_at
		RETURNING` + paymentColumns

	saved, err := r.scan(q.QueryRow(ctx, query,
		payment.ID, payment.EmployeeID,
		payment.PeriodStart.Format(time.DateOnly), payment.PeriodEnd.Format(time.DateOnly),
		payment.Amount.String(), string(payment.Status), payment.PaidAt, payment.PaidBy,
		payment.CreatedAt, payment.UpdatedAt,
	))
	if err != nil {
		return payroll.Payment{}, fmt.Errorf("failed to upsert payment: %w", err)
	}
	return saved, nil
}

// GetByEmployeePeriod implements payroll.PaymentRepository.
func (r *paymentRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + paymentColumns + `
		FROM payroll_payments
		WHERE employee_id = $1 AND period_start = $2::date AND period_end = $3::date`

	p, err := r.scan(q.QueryRow(ctx, query, employeeID, start.Format(time.DateOnly), end.Format(time.DateOnly)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payment{}, payroll.ErrPaymentNotFound
		}
		return payroll.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

// ListByPeriod implements payroll.PaymentRepository.
func (r *paymentRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + paymentColumns + `
		FROM payroll_payments
		WHERE period_start = $1::date AND period_end = $2::date
		ORDER BY employee_id`

	rows, err := q.Query(ctx, query, start.Format(time.DateOnly), end.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []payroll.Payment
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// Delete implements payroll.PaymentRepository.
func (r *paymentRepository) Delete(ctx context.Context, employeeID string, start, end time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`DELETE FROM payroll_payments WHERE employee_id = $1 AND period_start = $2::date AND period_end = $3::date`,
		employeeID, start.Format(time.DateOnly), end.Format(time.DateOnly),
	)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPaymentNotFound
	}
	return nil
}
