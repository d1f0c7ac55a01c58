package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/notification"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settings are the shop-wide payroll parameters.
type Settings struct {
	Rules            payroll.Rules
	Location         *time.Location
	WeekStart        time.Weekday
	Currency         string
	DefaultRecipient string
}

type PayrollServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	paymentRepo    payroll.PaymentRepository
	notifier       notification.Service
	metrics        *metrics.Metrics
	settings       Settings
	now            func() time.Time
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	paymentRepo payroll.PaymentRepository,
	notifier notification.Service,
	m *metrics.Metrics,
	settings Settings,
) payroll.PayrollService {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	if settings.Currency == "" {
		settings.Currency = payroll.DefaultCurrency
	}
	return &PayrollServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		paymentRepo:    paymentRepo,
		notifier:       notifier,
		metrics:        m,
		settings:       settings,
		now:            time.Now,
	}
}

// ========== PAYROLL RUNS ==========

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, query payroll.PeriodQuery) (payroll.RunResponse, error) {
	if err := query.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}
	method, _ := payroll.ParsePaymentMethod(query.Method)

	period, err := payroll.PreviousPeriod(method, s.reference(query.Reference), s.settings.WeekStart, s.settings.Location)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	employees, err := s.employeeRepo.ListByPaymentMethod(ctx, method)
	if err != nil {
		return payroll.RunResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	entries, err := s.compute(ctx, employees, period, false)
	s.metrics.PayrollCalculated(string(method), len(entries), err)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	payments, err := s.paymentsByEmployee(ctx, period)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	resp := payroll.RunResponse{
		Method:               method,
		PeriodStart:          period.Start.Format(time.DateOnly),
		PeriodEnd:            period.End.Format(time.DateOnly),
		PeriodLabel:          period.Label(),
		PeriodLabelEthiopian: period.EthiopianLabel(),
		Currency:             s.settings.Currency,
		EmployeeCount:        len(entries),
		TotalAmount:          payroll.Total(entries),
		PaidAmount:           decimal.Zero,
		UnpaidAmount:         decimal.Zero,
		Entries:              make([]payroll.EntryResponse, 0, len(entries)),
	}
	for _, entry := range entries {
		var payment *payroll.Payment
		if p, ok := payments[entry.EmployeeID]; ok {
			payment = &p
		}
		er := payroll.NewEntryResponse(entry, payment)
		if er.Status == payroll.PayStatusPaid {
			resp.PaidAmount = resp.PaidAmount.Add(er.Amount)
		} else {
			resp.UnpaidAmount = resp.UnpaidAmount.Add(er.Amount)
		}
		resp.Entries = append(resp.Entries, er)
	}

	slog.Info("Payroll calculated",
		"method", method,
		"period", resp.PeriodLabel,
		"entries", resp.EmployeeCount,
		"total", resp.TotalAmount.StringFixed(2),
	)
	return resp, nil
}

// GetEntry implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetEntry(ctx context.Context, query payroll.EmployeePeriodQuery) (payroll.EntryResponse, error) {
	if err := query.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}
	_, entry, payment, err := s.entryFor(ctx, query)
	if err != nil {
		return payroll.EntryResponse{}, err
	}
	return payroll.NewEntryResponse(entry, payment), nil
}

// ========== PAYMENT STATUS ==========

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaymentRequest) (payroll.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}
	_, entry, _, err := s.entryFor(ctx, req.EmployeePeriodQuery)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.EntryResponse{}, fmt.Errorf("failed to generate payment id: %w", err)
	}
	now := s.now().UTC()
	payment := payroll.Payment{
		ID:          id.String(),
		EmployeeID:  entry.EmployeeID,
		PeriodStart: entry.Period.Start,
		PeriodEnd:   entry.Period.End,
		Amount:      entry.Amount,
		Status:      payroll.PayStatusPaid,
		PaidAt:      &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.PaidBy != "" {
		payment.PaidBy = &req.PaidBy
	}

	saved, err := s.paymentRepo.Upsert(ctx, payment)
	if err != nil {
		return payroll.EntryResponse{}, fmt.Errorf("failed to save payment: %w", err)
	}

	slog.Info("Payroll marked paid", "employee_id", entry.EmployeeID, "period", entry.PeriodLabel, "amount", entry.Amount.StringFixed(2))
	return payroll.NewEntryResponse(entry, &saved), nil
}

// MarkUnpaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkUnpaid(ctx context.Context, req payroll.MarkPaymentRequest) (payroll.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.EntryResponse{}, err
	}
	_, entry, _, err := s.entryFor(ctx, req.EmployeePeriodQuery)
	if err != nil {
		return payroll.EntryResponse{}, err
	}

	err = s.paymentRepo.Delete(ctx, entry.EmployeeID, entry.Period.Start, entry.Period.End)
	if err != nil && !errors.Is(err, payroll.ErrPaymentNotFound) {
		return payroll.EntryResponse{}, fmt.Errorf("failed to clear payment: %w", err)
	}

	entry.Status = payroll.PayStatusUnpaid

	slog.Info("Payroll marked unpaid", "employee_id", entry.EmployeeID, "period", entry.PeriodLabel)
	return payroll.NewEntryResponse(entry, nil), nil
}

// ========== HELPERS ==========

func (s *PayrollServiceImpl) reference(reference string) time.Time {
	return payroll.ReferenceDate(reference, s.now(), s.settings.Location)
}

// compute loads the attendance of employees inside period and runs the
// calculator. With asMonthly every employee is evaluated as monthly paid.
func (s *PayrollServiceImpl) compute(ctx context.Context, employees []employee.Employee, period payroll.Period, asMonthly bool) ([]payroll.Entry, error) {
	if len(employees) == 0 {
		return []payroll.Entry{}, nil
	}

	pays := make([]payroll.EmployeePay, 0, len(employees))
	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		pay := emp.Pay()
		if asMonthly {
			pay.Method = payroll.PaymentMethodMonthly
		}
		pays = append(pays, pay)
		ids = append(ids, emp.ID)
	}

	records, err := s.attendanceRepo.ListByDateRange(ctx, period.Start, period.End, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}

	entries, err := payroll.CalculateAll(pays, attendance.Entries(records), period, s.settings.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate payroll: %w", err)
	}
	return entries, nil
}

// entryFor computes one employee's entry for the period before the query
// reference, using the employee's own payment method.
func (s *PayrollServiceImpl) entryFor(ctx context.Context, query payroll.EmployeePeriodQuery) (employee.Employee, payroll.Entry, *payroll.Payment, error) {
	emp, err := s.employeeRepo.GetByID(ctx, query.EmployeeID)
	if err != nil {
		return employee.Employee{}, payroll.Entry{}, nil, err
	}

	period, err := payroll.PreviousPeriod(emp.PaymentMethod, s.reference(query.Reference), s.settings.WeekStart, s.settings.Location)
	if err != nil {
		return employee.Employee{}, payroll.Entry{}, nil, err
	}

	entries, err := s.compute(ctx, []employee.Employee{emp}, period, false)
	if err != nil {
		return employee.Employee{}, payroll.Entry{}, nil, err
	}
	if len(entries) == 0 {
		return employee.Employee{}, payroll.Entry{}, nil, payroll.ErrNoPayrollEntry
	}
	entry := entries[0]

	payment, err := s.paymentRepo.GetByEmployeePeriod(ctx, emp.ID, period.Start, period.End)
	switch {
	case errors.Is(err, payroll.ErrPaymentNotFound):
		return emp, entry, nil, nil
	case err != nil:
		return employee.Employee{}, payroll.Entry{}, nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment.Status == payroll.PayStatusPaid {
		entry.Status = payroll.PayStatusPaid
	}
	return emp, entry, &payment, nil
}

func (s *PayrollServiceImpl) paymentsByEmployee(ctx context.Context, period payroll.Period) (map[string]payroll.Payment, error) {
	payments, err := s.paymentRepo.ListByPeriod(ctx, period.Start, period.End)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	byEmployee := make(map[string]payroll.Payment, len(payments))
	for _, p := range payments {
		byEmployee[p.EmployeeID] = p
	}
	return byEmployee, nil
}
