package http

import (
	"net/http"

	"github.com/furnishop/shop-backend-go/internal/domain/payroll"
	"github.com/furnishop/shop-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetPayroll returns running totals for the current week and month
	GetPayroll(w http.ResponseWriter, r *http.Request)
	// GetExpenses returns the monthly payroll expense series
	GetExpenses(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewDashboardHandler(payrollService payroll.PayrollService) DashboardHandler {
	return &dashboardHandlerImpl{payrollService: payrollService}
}

// GetPayroll handles GET /dashboard/payroll
func (h *dashboardHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	query := payroll.DashboardQuery{Reference: r.URL.Query().Get("reference")}

	result, err := h.payrollService.GetDashboard(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetExpenses handles GET /dashboard/expenses
func (h *dashboardHandlerImpl) GetExpenses(w http.ResponseWriter, r *http.Request) {
	query := payroll.ExpenseQuery{
		Months:    getIntQueryParam(r, "months", 6),
		Reference: r.URL.Query().Get("reference"),
	}

	result, err := h.payrollService.GetExpenseSeries(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
