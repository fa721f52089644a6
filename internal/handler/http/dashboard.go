package http

import (
	"net/http"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetAdminDashboard handles GET /dashboard/admin
	GetAdminDashboard(w http.ResponseWriter, r *http.Request)
	// GetEmployeeDashboard handles GET /dashboard/employee
	GetEmployeeDashboard(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

func (h *dashboardHandlerImpl) GetAdminDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetAdminDashboard(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *dashboardHandlerImpl) GetEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	p, ok := employeePrincipal(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardService.GetEmployeeDashboard(r.Context(), p.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
