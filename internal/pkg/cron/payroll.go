package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
)

// PayrollJobs sends the payroll digest of the previous period once per
// period and payment method.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	interval       time.Duration
	weekStart      time.Weekday
	location       *time.Location
	now            func() time.Time

	mu   sync.Mutex
	sent map[payroll.PaymentMethod]string
}

func NewPayrollJobs(payrollService payroll.PayrollService, interval time.Duration, weekStart time.Weekday, loc *time.Location) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		interval:       interval,
		weekStart:      weekStart,
		location:       loc,
		now:            time.Now,
		sent:           make(map[payroll.PaymentMethod]string),
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("payroll_digest", j.interval, j.SendDigests)
}

// SendDigests queues summaries for the last full week and the last full
// month. A period already digested by this process is skipped.
func (j *PayrollJobs) SendDigests(ctx context.Context) error {
	now := j.now().In(j.location)

	var errs []error
	for _, method := range []payroll.PaymentMethod{payroll.PaymentMethodWeekly, payroll.PaymentMethodMonthly} {
		if err := j.sendDigest(ctx, method, now); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (j *PayrollJobs) sendDigest(ctx context.Context, method payroll.PaymentMethod, now time.Time) error {
	period, err := payroll.PreviousPeriod(method, now, j.weekStart, j.location)
	if err != nil {
		return err
	}

	j.mu.Lock()
	done := j.sent[method] == period.Start.Format(time.DateOnly)
	j.mu.Unlock()
	if done {
		slog.Debug("Cron: payroll digest already sent", "method", method, "period", period.Label())
		return nil
	}

	reference := now.Format(time.DateOnly)
	result, err := j.payrollService.SendDigest(ctx, payroll.PeriodQuery{Method: string(method), Reference: reference})
	if err != nil {
		return err
	}

	j.mu.Lock()
	j.sent[method] = result.PeriodStart
	j.mu.Unlock()

	slog.Info("Cron: payroll digest queued",
		"method", method,
		"period", result.PeriodLabel,
		"queued", result.Queued,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return nil
}
