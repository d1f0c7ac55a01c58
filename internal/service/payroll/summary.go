package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/furnishop/shop-backend-go/internal/domain/employee"
	"github.com/furnishop/shop-backend-go/internal/domain/notification"
	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
)

// GetSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetSummary(ctx context.Context, query payroll.EmployeePeriodQuery) (payroll.SummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return payroll.SummaryResponse{}, err
	}
	_, entry, _, err := s.entryFor(ctx, query)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	text, err := payroll.FormatSummary(entry, s.settings.Currency)
	if err != nil {
		return payroll.SummaryResponse{}, err
	}

	return payroll.SummaryResponse{
		EmployeeID:  entry.EmployeeID,
		PeriodLabel: entry.PeriodLabel,
		Text:        text,
	}, nil
}

// SendSummary implements payroll.PayrollService. The recipient is the one in
// the request, else the employee's chat, else the shop default.
func (s *PayrollServiceImpl) SendSummary(ctx context.Context, req payroll.SendSummaryRequest) (payroll.SendSummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SendSummaryResponse{}, err
	}
	emp, entry, _, err := s.entryFor(ctx, req.EmployeePeriodQuery)
	if err != nil {
		return payroll.SendSummaryResponse{}, err
	}

	var override string
	if req.RecipientID != nil {
		override = *req.RecipientID
	}
	recipient := s.recipientFor(emp, override)
	if recipient == "" {
		return payroll.SendSummaryResponse{}, payroll.ErrNoRecipient
	}

	text, err := payroll.FormatSummary(entry, s.settings.Currency)
	if err != nil {
		return payroll.SendSummaryResponse{}, err
	}
	result := s.notifier.SendMessage(ctx, notification.SendMessageRequest{RecipientID: recipient, Text: text})

	resp := payroll.SendSummaryResponse{
		Success:     result.Success,
		Error:       result.Error,
		RecipientID: recipient,
		Text:        text,
	}
	if !result.Success {
		slog.Warn("Payroll summary not delivered", "employee_id", emp.ID, "recipient_id", recipient, "error", result.Error)
		return resp, nil
	}

	slog.Info("Payroll summary sent", "employee_id", emp.ID, "period", entry.PeriodLabel)
	return resp, nil
}

// SendDigest implements payroll.PayrollService. Summaries are queued for
// every employee with an entry in the period; employees without any
// recipient are skipped.
func (s *PayrollServiceImpl) SendDigest(ctx context.Context, query payroll.PeriodQuery) (payroll.DigestResponse, error) {
	if err := query.Validate(); err != nil {
		return payroll.DigestResponse{}, err
	}
	method, _ := payroll.ParsePaymentMethod(query.Method)

	period, err := payroll.PreviousPeriod(method, s.reference(query.Reference), s.settings.WeekStart, s.settings.Location)
	if err != nil {
		return payroll.DigestResponse{}, err
	}

	employees, err := s.employeeRepo.ListByPaymentMethod(ctx, method)
	if err != nil {
		return payroll.DigestResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	entries, err := s.compute(ctx, employees, period, false)
	if err != nil {
		return payroll.DigestResponse{}, err
	}
	payments, err := s.paymentsByEmployee(ctx, period)
	if err != nil {
		return payroll.DigestResponse{}, err
	}

	byID := make(map[string]employee.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	resp := payroll.DigestResponse{
		Method:      method,
		PeriodStart: period.Start.Format(time.DateOnly),
		PeriodEnd:   period.End.Format(time.DateOnly),
		PeriodLabel: period.Label(),
	}
	for _, entry := range entries {
		recipient := s.recipientFor(byID[entry.EmployeeID], "")
		if recipient == "" {
			resp.Skipped++
			continue
		}
		if p, ok := payments[entry.EmployeeID]; ok && p.Status == payroll.PayStatusPaid {
			entry.Status = payroll.PayStatusPaid
		}

		text, err := payroll.FormatSummary(entry, s.settings.Currency)
		if err != nil {
			return payroll.DigestResponse{}, err
		}

		err = s.notifier.Queue(ctx, notification.SendMessageRequest{
			RecipientID: recipient,
			Text:        text,
		})
		if err != nil {
			slog.Warn("Failed to queue payroll summary", "employee_id", entry.EmployeeID, "error", err)
			resp.Failed++
			continue
		}
		resp.Queued++
	}

	slog.Info("Payroll digest queued",
		"method", method,
		"period", resp.PeriodLabel,
		"queued", resp.Queued,
		"skipped", resp.Skipped,
		"failed", resp.Failed,
	)
	return resp, nil
}

func (s *PayrollServiceImpl) recipientFor(emp employee.Employee, override string) string {
	switch {
	case override != "":
		return override
	case emp.ChatID != nil && *emp.ChatID != "":
		return *emp.ChatID
	}
	return s.settings.DefaultRecipient
}
