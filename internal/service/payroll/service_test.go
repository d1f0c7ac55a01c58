package payroll

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/attendance"
	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/notification"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var eat = time.FixedZone("EAT", 3*60*60)

func ptr[T any](v T) *T { return &v }

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []notification.SendMessageRequest
	queued []notification.SendMessageRequest
	result notification.SendResult
	qErr   error
}

func (f *fakeNotifier) SendMessage(ctx context.Context, req notification.SendMessageRequest) notification.SendResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	return f.result
}

func (f *fakeNotifier) Queue(ctx context.Context, req notification.SendMessageRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.qErr != nil {
		return f.qErr
	}
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) Stop() {}

type fixture struct {
	svc      payroll.PayrollService
	notifier *fakeNotifier
	payments payroll.PaymentRepository
}

// newFixture seeds a weekly employee paid 400/day who worked Mon 6 and Tue 7
// May 2024, and a monthly employee paid 10400/month who worked 10 April 2024.
func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	employees := memory.NewEmployeeRepository()
	records := memory.NewAttendanceRepository()
	payments := memory.NewPaymentRepository()

	_, err := employees.Create(ctx, employee.Employee{
		ID:            "weekly-1",
		FullName:      "Abebe Kebede",
		PhoneNumber:   "0911000001",
		PaymentMethod: payroll.PaymentMethodWeekly,
		DailyRate:     ptr(decimal.NewFromInt(400)),
		ChatID:        ptr("1001"),
	})
	require.NoError(t, err)
	_, err = employees.Create(ctx, employee.Employee{
		ID:            "monthly-1",
		FullName:      "Sara Tesfaye",
		PhoneNumber:   "0911000002",
		PaymentMethod: payroll.PaymentMethodMonthly,
		MonthlyRate:   ptr(decimal.NewFromInt(10400)),
	})
	require.NoError(t, err)

	seed := []attendance.Attendance{
		{ID: "a1", EmployeeID: "weekly-1", Date: time.Date(2024, time.May, 6, 0, 0, 0, 0, eat), Morning: ptr("08:00"), Afternoon: ptr("13:00"), Status: attendance.StatusPresent},
		{ID: "a2", EmployeeID: "weekly-1", Date: time.Date(2024, time.May, 7, 0, 0, 0, 0, eat), Morning: ptr("09:00"), Afternoon: ptr("13:00"), Status: attendance.StatusLate},
		{ID: "a3", EmployeeID: "weekly-1", Date: time.Date(2024, time.May, 8, 0, 0, 0, 0, eat), Status: attendance.StatusAbsent},
		{ID: "a4", EmployeeID: "monthly-1", Date: time.Date(2024, time.April, 10, 0, 0, 0, 0, eat), Morning: ptr("08:00"), Afternoon: ptr("13:00"), Status: attendance.StatusPresent},
	}
	for _, rec := range seed {
		_, err := records.Create(ctx, rec)
		require.NoError(t, err)
	}

	notifier := &fakeNotifier{result: notification.SendResult{Success: true}}
	svc := NewPayrollService(employees, records, payments, notifier, nil, Settings{
		Rules:     payroll.DefaultRules(),
		Location:  eat,
		WeekStart: time.Monday,
		Currency:  "ETB",
	})
	return fixture{svc: svc, notifier: notifier, payments: payments}
}

func weeklyQuery() payroll.EmployeePeriodQuery {
	return payroll.EmployeePeriodQuery{EmployeeID: "weekly-1", Reference: "2024-05-15"}
}

func TestCalculate_Weekly(t *testing.T) {
	f := newFixture(t)

	run, err := f.svc.Calculate(context.Background(), payroll.PeriodQuery{Method: "weekly", Reference: "2024-05-15"})
	require.NoError(t, err)

	assert.Equal(t, payroll.PaymentMethodWeekly, run.Method)
	assert.Equal(t, "2024-05-06", run.PeriodStart)
	assert.Equal(t, "2024-05-12", run.PeriodEnd)
	require.Len(t, run.Entries, 1)

	entry := run.Entries[0]
	assert.Equal(t, "weekly-1", entry.EmployeeID)
	assert.Equal(t, 2, entry.WorkingDays)
	assert.Equal(t, 16.0, entry.TotalHours)
	assert.Equal(t, "800.00", entry.Amount.StringFixed(2))
	assert.Equal(t, payroll.PayStatusUnpaid, entry.Status)
	assert.Equal(t, "800.00", run.UnpaidAmount.StringFixed(2))
	assert.True(t, run.PaidAmount.IsZero())
}

func TestCalculate_Monthly(t *testing.T) {
	f := newFixture(t)

	run, err := f.svc.Calculate(context.Background(), payroll.PeriodQuery{Method: "Monthly", Reference: "2024-05-15"})
	require.NoError(t, err)

	assert.Equal(t, "2024-04-01", run.PeriodStart)
	assert.Equal(t, "2024-04-30", run.PeriodEnd)
	require.Len(t, run.Entries, 1)
	assert.Equal(t, "425.00", run.TotalAmount.StringFixed(2))
}

func TestCalculate_InvalidMethod(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Calculate(context.Background(), payroll.PeriodQuery{Method: "Daily"})
	assert.Error(t, err)
}

func TestGetEntry_NoPayroll(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetEntry(context.Background(), payroll.EmployeePeriodQuery{EmployeeID: "weekly-1", Reference: "2024-06-20"})
	assert.ErrorIs(t, err, payroll.ErrNoPayrollEntry)

	_, err = f.svc.GetEntry(context.Background(), payroll.EmployeePeriodQuery{EmployeeID: "nobody"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestMarkPaidAndUnpaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	paid, err := f.svc.MarkPaid(ctx, payroll.MarkPaymentRequest{EmployeePeriodQuery: weeklyQuery(), PaidBy: "owner-1"})
	require.NoError(t, err)
	assert.Equal(t, payroll.PayStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	run, err := f.svc.Calculate(ctx, payroll.PeriodQuery{Method: "Weekly", Reference: "2024-05-15"})
	require.NoError(t, err)
	assert.Equal(t, payroll.PayStatusPaid, run.Entries[0].Status)
	assert.Equal(t, "800.00", run.PaidAmount.StringFixed(2))

	stored, err := f.payments.GetByEmployeePeriod(ctx, "weekly-1",
		time.Date(2024, time.May, 6, 0, 0, 0, 0, eat), time.Date(2024, time.May, 12, 0, 0, 0, 0, eat))
	require.NoError(t, err)
	assert.Equal(t, "owner-1", *stored.PaidBy)

	unpaid, err := f.svc.MarkUnpaid(ctx, payroll.MarkPaymentRequest{EmployeePeriodQuery: weeklyQuery()})
	require.NoError(t, err)
	assert.Equal(t, payroll.PayStatusUnpaid, unpaid.Status)
	assert.Nil(t, unpaid.PaidAt)

	entry, err := f.svc.GetEntry(ctx, weeklyQuery())
	require.NoError(t, err)
	assert.Equal(t, unpaid.Status, entry.Status)

	// already unpaid
	_, err = f.svc.MarkUnpaid(ctx, payroll.MarkPaymentRequest{EmployeePeriodQuery: weeklyQuery()})
	assert.NoError(t, err)
}

func TestGetSummary(t *testing.T) {
	f := newFixture(t)

	summary, err := f.svc.GetSummary(context.Background(), weeklyQuery())
	require.NoError(t, err)

	assert.Equal(t, "06 May 2024 - 12 May 2024", summary.PeriodLabel)
	assert.Contains(t, summary.Text, "Employee: Abebe Kebede")
	assert.Contains(t, summary.Text, "Total payout: 800.00 ETB")
}

func TestSendSummary_Recipients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.svc.SendSummary(ctx, payroll.SendSummaryRequest{EmployeePeriodQuery: weeklyQuery()})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "1001", resp.RecipientID)

	resp, err = f.svc.SendSummary(ctx, payroll.SendSummaryRequest{EmployeePeriodQuery: weeklyQuery(), RecipientID: ptr("777")})
	require.NoError(t, err)
	assert.Equal(t, "777", resp.RecipientID)

	require.Len(t, f.notifier.sent, 2)
	assert.Contains(t, f.notifier.sent[0].Text, "Payroll Summary")

	// the monthly employee has no chat and no default is configured
	_, err = f.svc.SendSummary(ctx, payroll.SendSummaryRequest{
		EmployeePeriodQuery: payroll.EmployeePeriodQuery{EmployeeID: "monthly-1", Reference: "2024-05-15"},
	})
	assert.ErrorIs(t, err, payroll.ErrNoRecipient)
}

func TestSendSummary_DeliveryFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.result = notification.SendResult{Success: false, Error: "chat not found"}

	resp, err := f.svc.SendSummary(context.Background(), payroll.SendSummaryRequest{EmployeePeriodQuery: weeklyQuery()})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "1001", resp.RecipientID)
	assert.Equal(t, "chat not found", resp.Error)
}

func TestSendDigest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	weekly, err := f.svc.SendDigest(ctx, payroll.PeriodQuery{Method: "Weekly", Reference: "2024-05-15"})
	require.NoError(t, err)
	assert.Equal(t, 1, weekly.Queued)
	assert.Equal(t, 0, weekly.Skipped)

	monthly, err := f.svc.SendDigest(ctx, payroll.PeriodQuery{Method: "Monthly", Reference: "2024-05-15"})
	require.NoError(t, err)
	assert.Equal(t, 0, monthly.Queued)
	assert.Equal(t, 1, monthly.Skipped)

	require.Len(t, f.notifier.queued, 1)
	assert.Equal(t, "1001", f.notifier.queued[0].RecipientID)
}

func TestGeneratePayslip(t *testing.T) {
	f := newFixture(t)

	pdf, filename, err := f.svc.GeneratePayslip(context.Background(), weeklyQuery())
	require.NoError(t, err)

	assert.Equal(t, "payslip-abebe-kebede-2024-05-06.pdf", filename)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGetDashboard(t *testing.T) {
	f := newFixture(t)

	dash, err := f.svc.GetDashboard(context.Background(), payroll.DashboardQuery{Reference: "2024-05-08"})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-08", dash.Reference)
	assert.Equal(t, "2024-05-06", dash.Weekly.PeriodStart)
	assert.Equal(t, 1, dash.Weekly.EmployeeCount)
	assert.Equal(t, "800.00", dash.Weekly.TotalAmount.StringFixed(2))
	assert.Equal(t, "2024-05-01", dash.Monthly.PeriodStart)
	assert.Equal(t, 0, dash.Monthly.EmployeeCount)
}

func TestGetExpenseSeries(t *testing.T) {
	f := newFixture(t)

	points, err := f.svc.GetExpenseSeries(context.Background(), payroll.ExpenseQuery{Months: 2, Reference: "2024-05-15"})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "2024-04", points[0].Month)
	assert.Equal(t, "425.00", points[0].Amount.StringFixed(2))
	assert.Equal(t, "2024-05", points[1].Month)
	assert.Equal(t, "Apr 2024", points[0].Label)
	assert.Equal(t, "800.00", points[1].Amount.StringFixed(2))

	_, err = f.svc.GetExpenseSeries(context.Background(), payroll.ExpenseQuery{Months: 0})
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "abebe-kebede", slug("  Abebe  Kebede "))
	assert.Equal(t, "employee", slug("!!"))
}
