package http

import (
	"net/http"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	p, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	var req leave.ApplyLeaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := l.leaveService.ApplyLeave(r.Context(), p.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", resp)
}

// GetMyBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	p, ok := employeePrincipal(w, r)
	if !ok {
		return
	}
	l.writeBalance(w, r, p.EmployeeID)
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := pathID(w, r, "employeeID")
	if !ok {
		return
	}
	l.writeBalance(w, r, employeeID)
}

func (l *LeaveHandlerImpl) writeBalance(w http.ResponseWriter, r *http.Request, employeeID string) {
	year, ok := queryInt(w, r, "year")
	if !ok {
		return
	}
	y := 0
	if year != nil {
		y = *year
	}

	balance, err := l.leaveService.GetLeaveBalance(r.Context(), employeeID, y)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	p, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	filter, ok := leaveFilter(w, r)
	if !ok {
		return
	}

	resp, err := l.leaveService.GetMyLeaves(r.Context(), p.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter, ok := leaveFilter(w, r)
	if !ok {
		return
	}
	filter.EmployeeID = queryString(r, "employee_id")

	resp, err := l.leaveService.ListLeaves(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	resp, err := l.leaveService.GetLeave(r.Context(), id, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// UpdateStatus implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req leave.UpdateLeaveStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := l.leaveService.SetLeaveStatus(r.Context(), id, p.UserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", resp)
}

func leaveFilter(w http.ResponseWriter, r *http.Request) (leave.LeaveFilter, bool) {
	params, ok := pageParams(w, r)
	if !ok {
		return leave.LeaveFilter{}, false
	}

	return leave.LeaveFilter{
		Params: params,
		Status: queryString(r, "status"),
		Type:   queryString(r, "type"),
	}, true
}
