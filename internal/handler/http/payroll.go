package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/handler/http/middleware"
	"github.com/furnishop/shop-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	GetEntry(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	SendSummary(w http.ResponseWriter, r *http.Request)
	SendDigest(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
	MarkUnpaid(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func employeePeriodQuery(r *http.Request) payroll.EmployeePeriodQuery {
	return payroll.EmployeePeriodQuery{
		EmployeeID: chi.URLParam(r, "id"),
		Reference:  r.URL.Query().Get("reference"),
	}
}

// Calculate implements PayrollHandler
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	query := payroll.PeriodQuery{
		Method:    r.URL.Query().Get("method"),
		Reference: r.URL.Query().Get("reference"),
	}

	result, err := h.payrollService.Calculate(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEntry implements PayrollHandler
func (h *payrollHandlerImpl) GetEntry(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetEntry(r.Context(), employeePeriodQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements PayrollHandler
func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetSummary(r.Context(), employeePeriodQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SendSummary implements PayrollHandler. The body is optional.
func (h *payrollHandlerImpl) SendSummary(w http.ResponseWriter, r *http.Request) {
	req := payroll.SendSummaryRequest{EmployeePeriodQuery: employeePeriodQuery(r)}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.SendSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if !result.Success {
		response.SuccessWithMessage(w, "Payroll summary not delivered", result)
		return
	}
	response.SuccessWithMessage(w, "Payroll summary sent", result)
}

// SendDigest implements PayrollHandler
func (h *payrollHandlerImpl) SendDigest(w http.ResponseWriter, r *http.Request) {
	var query payroll.PeriodQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.SendDigest(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll digest queued", result)
}

// DownloadPayslip implements PayrollHandler
func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	pdf, filename, err := h.payrollService.GeneratePayslip(r.Context(), employeePeriodQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// MarkPaid implements PayrollHandler
func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	req := payroll.MarkPaymentRequest{
		EmployeePeriodQuery: employeePeriodQuery(r),
		PaidBy:              middleware.Subject(r.Context()),
	}

	result, err := h.payrollService.MarkPaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll marked as paid", result)
}

// MarkUnpaid implements PayrollHandler
func (h *payrollHandlerImpl) MarkUnpaid(w http.ResponseWriter, r *http.Request) {
	req := payroll.MarkPaymentRequest{EmployeePeriodQuery: employeePeriodQuery(r)}

	result, err := h.payrollService.MarkUnpaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll marked as unpaid", result)
}
