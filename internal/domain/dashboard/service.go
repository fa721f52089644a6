package dashboard

import "context"

type DashboardService interface {
	// GetAdminDashboard returns organisation-wide stats
	GetAdminDashboard(ctx context.Context) (AdminDashboardResponse, error)

	// GetEmployeeDashboard returns the self-service view of one employee
	GetEmployeeDashboard(ctx context.Context, employeeID string) (EmployeeDashboardResponse, error)
}
