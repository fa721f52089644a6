package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
)

// EmployeeCounts combines headcount totals in a single query
type EmployeeCounts struct {
	Total  int64
	Active int64
}

// StatusCount is one row of a grouped count
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// DashboardRepository defines the aggregate queries behind the admin dashboard
type DashboardRepository interface {
	// CountEmployees returns total and active employee counts
	CountEmployees(ctx context.Context) (EmployeeCounts, error)

	// CountPendingLeaves returns the number of leave requests awaiting a decision
	CountPendingLeaves(ctx context.Context) (int64, error)

	// CountPresentOn returns attendance records of the date with status PRESENT or LATE
	CountPresentOn(ctx context.Context, date time.Time) (int64, error)

	// CountPayrollsForPeriod returns the payroll records created for the period
	CountPayrollsForPeriod(ctx context.Context, month, year int) (int64, error)

	// DepartmentBreakdown returns active headcount grouped by department
	DepartmentBreakdown(ctx context.Context) ([]employee.DepartmentCount, error)

	// LeaveStatusBreakdown returns leave request counts grouped by status
	LeaveStatusBreakdown(ctx context.Context) ([]StatusCount, error)

	// RecentEmployees returns the most recently created active employees
	RecentEmployees(ctx context.Context, limit int) ([]employee.Employee, error)
}
