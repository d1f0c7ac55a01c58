package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
)

// GetDashboard implements payroll.PayrollService. Totals cover the week and
// month that contain the reference date, so they grow as attendance comes in.
func (s *PayrollServiceImpl) GetDashboard(ctx context.Context, query payroll.DashboardQuery) (payroll.DashboardResponse, error) {
	if err := query.Validate(); err != nil {
		return payroll.DashboardResponse{}, err
	}
	ref := s.reference(query.Reference)

	resp := payroll.DashboardResponse{
		Reference: ref.Format(time.DateOnly),
		Currency:  s.settings.Currency,
	}
	for _, method := range []payroll.PaymentMethod{payroll.PaymentMethodWeekly, payroll.PaymentMethodMonthly} {
		totals, err := s.periodTotals(ctx, method, ref)
		if err != nil {
			return payroll.DashboardResponse{}, err
		}
		if method == payroll.PaymentMethodWeekly {
			resp.Weekly = totals
		} else {
			resp.Monthly = totals
		}
	}
	return resp, nil
}

func (s *PayrollServiceImpl) periodTotals(ctx context.Context, method payroll.PaymentMethod, ref time.Time) (payroll.PeriodTotals, error) {
	period, err := payroll.PeriodContaining(method, ref, s.settings.WeekStart, s.settings.Location)
	if err != nil {
		return payroll.PeriodTotals{}, err
	}

	employees, err := s.employeeRepo.ListByPaymentMethod(ctx, method)
	if err != nil {
		return payroll.PeriodTotals{}, fmt.Errorf("failed to list employees: %w", err)
	}
	entries, err := s.compute(ctx, employees, period, false)
	if err != nil {
		return payroll.PeriodTotals{}, err
	}

	var hours float64
	for _, e := range entries {
		hours += e.TotalHours
	}
	return payroll.PeriodTotals{
		Method:               method,
		PeriodStart:          period.Start.Format(time.DateOnly),
		PeriodEnd:            period.End.Format(time.DateOnly),
		PeriodLabel:          period.Label(),
		PeriodLabelEthiopian: period.EthiopianLabel(),
		EmployeeCount:        len(entries),
		TotalHours:           hours,
		TotalAmount:          payroll.Total(entries),
	}, nil
}

// GetExpenseSeries implements payroll.PayrollService. Every employee is
// evaluated as monthly paid so weekly staff show up in the month they worked.
// Points are ordered oldest first and end with the reference month.
func (s *PayrollServiceImpl) GetExpenseSeries(ctx context.Context, query payroll.ExpenseQuery) ([]payroll.ExpensePoint, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	ref := s.reference(query.Reference)

	employees, err := s.employeeRepo.ListByPaymentMethod(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	points := make([]payroll.ExpensePoint, 0, query.Months)
	for i := query.Months - 1; i >= 0; i-- {
		first := time.Date(ref.Year(), ref.Month()-time.Month(i), 1, 0, 0, 0, 0, s.settings.Location)
		period := payroll.MonthPeriod(first.Year(), first.Month(), s.settings.Location)

		entries, err := s.compute(ctx, employees, period, true)
		if err != nil {
			return nil, err
		}

		points = append(points, payroll.ExpensePoint{
			Month:          period.Start.Format("2006-01"),
			Label:          period.Start.Format("Jan 2006"),
			LabelEthiopian: period.EthiopianLabel(),
			EmployeeCount:  len(entries),
			Amount:         payroll.Total(entries),
		})
	}
	return points, nil
}
