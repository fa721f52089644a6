package dashboard

import (
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
)

// ========== ADMIN DASHBOARD ==========

// AdminDashboardResponse is the combined response for the admin dashboard endpoint
type AdminDashboardResponse struct {
	Stats               AdminStats                  `json:"stats"`
	DepartmentBreakdown []employee.DepartmentCount  `json:"department_breakdown"`
	LeaveBreakdown      []StatusCount               `json:"leave_breakdown"`
	RecentEmployees     []employee.EmployeeResponse `json:"recent_employees"`
	Date                string                      `json:"date"` // Format: "YYYY-MM-DD"
}

type AdminStats struct {
	TotalEmployees    int64 `json:"total_employees"`
	ActiveEmployees   int64 `json:"active_employees"`
	PendingLeaves     int64 `json:"pending_leaves"`
	TodayPresent      int64 `json:"today_present"`
	PayrollsThisMonth int64 `json:"payrolls_this_month"`
}

// ========== EMPLOYEE DASHBOARD ==========

type EmployeeDashboardResponse struct {
	Stats           EmployeeStats                   `json:"stats"`
	TodayAttendance *attendance.AttendanceResponse  `json:"today_attendance"`
	RecentPayrolls  []payroll.PayrollRecordResponse `json:"recent_payrolls"`
	UpcomingLeaves  []leave.LeaveRequestResponse    `json:"upcoming_leaves"`
	LeaveBalance    leave.Balance                   `json:"leave_balance"`
}

type EmployeeStats struct {
	PendingLeaves           int64   `json:"pending_leaves"`
	ApprovedLeavesThisMonth int64   `json:"approved_leaves_this_month"`
	PresentDaysThisMonth    int64   `json:"present_days_this_month"`
	HoursThisMonth          float64 `json:"hours_this_month"`
}
