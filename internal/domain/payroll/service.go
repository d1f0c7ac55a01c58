package payroll

import "context"

type PayrollService interface {
	// Payroll runs
	Calculate(ctx context.Context, query PeriodQuery) (RunResponse, error)
	GetEntry(ctx context.Context, query EmployeePeriodQuery) (EntryResponse, error)

	// Payment status
	MarkPaid(ctx context.Context, req MarkPaymentRequest) (EntryResponse, error)
	MarkUnpaid(ctx context.Context, req MarkPaymentRequest) (EntryResponse, error)

	// Summaries
	GetSummary(ctx context.Context, query EmployeePeriodQuery) (SummaryResponse, error)
	SendSummary(ctx context.Context, req SendSummaryRequest) (SendSummaryResponse, error)
	SendDigest(ctx context.Context, query PeriodQuery) (DigestResponse, error)
	GeneratePayslip(ctx context.Context, query EmployeePeriodQuery) (pdf []byte, filename string, err error)

	// Dashboard
	GetDashboard(ctx context.Context, query DashboardQuery) (DashboardResponse, error)
	GetExpenseSeries(ctx context.Context, query ExpenseQuery) ([]ExpensePoint, error)
}
