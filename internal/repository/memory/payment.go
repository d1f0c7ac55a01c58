package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
)

type paymentRepositoryImpl struct {
	mu       sync.RWMutex
	payments map[string]payroll.Payment
}

func NewPaymentRepository() payroll.PaymentRepository {
	return &paymentRepositoryImpl{payments: make(map[string]payroll.Payment)}
}

func (r *paymentRepositoryImpl) Upsert(ctx context.Context, payment payroll.Payment) (payroll.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.payments[payment.Key()]; ok {
		payment.ID = existing.ID
		payment.CreatedAt = existing.CreatedAt
	}
	r.payments[payment.Key()] = payment
	return payment, nil
}

func (r *paymentRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) (payroll.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[payroll.PeriodKey(employeeID, start, end)]
	if !ok {
		return payroll.Payment{}, payroll.ErrPaymentNotFound
	}
	return p, nil
}

func (r *paymentRepositoryImpl) ListByPeriod(ctx context.Context, start, end time.Time) ([]payroll.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	startKey, endKey := start.Format(time.DateOnly), end.Format(time.DateOnly)
	var result []payroll.Payment
	for _, p := range r.payments {
		if p.PeriodStart.Format(time.DateOnly) == startKey && p.PeriodEnd.Format(time.DateOnly) == endKey {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeID < result[j].EmployeeID })
	return result, nil
}

func (r *paymentRepositoryImpl) Delete(ctx context.Context, employeeID string, start, end time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := payroll.PeriodKey(employeeID, start, end)
	if _, ok := r.payments[key]; !ok {
		return payroll.ErrPaymentNotFound
	}
	delete(r.payments, key)
	return nil
}
