package http

import (
	"net/http"

	"github.com/paylens/attendance-backend-go/internal/handler/http/response"
	"github.com/paylens/attendance-backend-go/internal/pkg/validator"
	"github.com/paylens/attendance-backend-go/internal/service/payroll"
	"github.com/shopspring/decimal"
)

type PayrollHandler interface {
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService *payroll.PayrollService
}

func NewPayrollHandler(payrollService *payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	req := payroll.SummaryRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Month:      r.URL.Query().Get("month"),
		JoinDate:   r.URL.Query().Get("join_date"),
	}

	if validator.IsEmpty(req.EmployeeID) {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}
	if _, ok := validator.IsValidMonth(req.Month); !ok {
		response.BadRequest(w, "month must be YYYY-MM", nil)
		return
	}
	if req.JoinDate != "" {
		if _, ok := validator.IsValidDate(req.JoinDate); !ok {
			response.BadRequest(w, "join_date must be YYYY-MM-DD", nil)
			return
		}
	}

	if salaryStr := r.URL.Query().Get("salary"); salaryStr != "" {
		salary, err := decimal.NewFromString(salaryStr)
		if err != nil || salary.IsNegative() {
			response.BadRequest(w, "salary must be a non-negative number", nil)
			return
		}
		req.Salary = &salary
	}

	result, err := h.payrollService.Summary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
