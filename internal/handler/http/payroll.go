package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMyPayrolls(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.payrollService.CreatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll created successfully", resp)
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.payrollService.GeneratePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, fmt.Sprintf("Generated %d payroll records", resp.Generated), resp)
}

func (h *payrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req payroll.UpdatePayrollRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.payrollService.UpdatePayroll(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll updated successfully", resp)
}

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := h.payrollService.GetPayroll(r.Context(), id, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := payrollFilter(w, r)
	if !ok {
		return
	}
	filter.EmployeeID = queryString(r, "employee_id")

	resp, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *payrollHandlerImpl) GetMyPayrolls(w http.ResponseWriter, r *http.Request) {
	p, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	filter, ok := payrollFilter(w, r)
	if !ok {
		return
	}

	resp, err := h.payrollService.GetMyPayrolls(r.Context(), p.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ========== REPORTS ==========

func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	month, year, ok := period(w, r)
	if !ok {
		return
	}

	summary, err := h.payrollService.GetPayrollSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	month, year, ok := period(w, r)
	if !ok {
		return
	}
	if month == 0 && year == 0 {
		month, year = h.payrollService.CurrentPeriod()
	}

	// Buffered so that a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.payrollService.ExportPayrolls(r.Context(), month, year, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payroll-%04d-%02d.xlsx", year, month)
	if err := response.Attachment(w, xlsxContentType, filename, int64(buf.Len()), &buf); err != nil {
		slog.Warn("payroll export interrupted", "month", month, "year", year, "error", err)
	}
}

func payrollFilter(w http.ResponseWriter, r *http.Request) (payroll.PayrollFilter, bool) {
	params, ok := pageParams(w, r)
	if !ok {
		return payroll.PayrollFilter{}, false
	}
	month, ok := queryInt(w, r, "month")
	if !ok {
		return payroll.PayrollFilter{}, false
	}
	year, ok := queryInt(w, r, "year")
	if !ok {
		return payroll.PayrollFilter{}, false
	}

	return payroll.PayrollFilter{
		Params:      params,
		PeriodMonth: month,
		PeriodYear:  year,
		Status:      queryString(r, "status"),
	}, true
}

// period reads the required month and year query parameters.
func period(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	month, ok := queryInt(w, r, "month")
	if !ok {
		return 0, 0, false
	}
	year, ok := queryInt(w, r, "year")
	if !ok {
		return 0, 0, false
	}

	// Neither given: zero month and year select the current period.
	if month == nil && year == nil {
		return 0, 0, true
	}

	var errs validator.ValidationErrors
	if month == nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month is required when year is given"})
	}
	if year == nil {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is required when month is given"})
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return 0, 0, false
	}
	return *month, *year, true
}
