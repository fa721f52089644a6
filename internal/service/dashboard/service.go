package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"golang.org/x/sync/errgroup"
)

const (
	recentEmployeesLimit = 5
	recentPayrollsLimit  = 3
	upcomingLeavesLimit  = 5
	upcomingLeavesWindow = 365 // days
)

type DashboardServiceImpl struct {
	dashboardRepo  dashboard.DashboardRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	payrollRepo    payroll.PayrollRepository
	clock          clock.Clock
	location       *time.Location
}

func NewDashboardService(
	dashboardRepo dashboard.DashboardRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	payrollRepo payroll.PayrollRepository,
	clk clock.Clock,
	loc *time.Location,
) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		dashboardRepo:  dashboardRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		payrollRepo:    payrollRepo,
		clock:          clk,
		location:       loc,
	}
}

// GetAdminDashboard runs each aggregate in its own goroutine.
func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context) (dashboard.AdminDashboardResponse, error) {
	today := clock.DateOf(s.clock.Now(), s.location)
	month, year := int(today.Month()), today.Year()

	var (
		counts      dashboard.EmployeeCounts
		pending     int64
		present     int64
		payrolls    int64
		departments []employee.DepartmentCount
		leaves      []dashboard.StatusCount
		recent      []employee.Employee
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		counts, err = s.dashboardRepo.CountEmployees(gCtx)
		return err
	})
	g.Go(func() (err error) {
		pending, err = s.dashboardRepo.CountPendingLeaves(gCtx)
		return err
	})
	g.Go(func() (err error) {
		present, err = s.dashboardRepo.CountPresentOn(gCtx, today)
		return err
	})
	g.Go(func() (err error) {
		payrolls, err = s.dashboardRepo.CountPayrollsForPeriod(gCtx, month, year)
		return err
	})
	g.Go(func() (err error) {
		departments, err = s.dashboardRepo.DepartmentBreakdown(gCtx)
		return err
	})
	g.Go(func() (err error) {
		leaves, err = s.dashboardRepo.LeaveStatusBreakdown(gCtx)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.dashboardRepo.RecentEmployees(gCtx, recentEmployeesLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminDashboardResponse{}, fmt.Errorf("failed to load admin dashboard: %w", err)
	}

	recentResponses := make([]employee.EmployeeResponse, 0, len(recent))
	for _, e := range recent {
		recentResponses = append(recentResponses, employee.NewEmployeeResponse(e))
	}
	if departments == nil {
		departments = []employee.DepartmentCount{}
	}
	if leaves == nil {
		leaves = []dashboard.StatusCount{}
	}

	return dashboard.AdminDashboardResponse{
		Stats: dashboard.AdminStats{
			TotalEmployees:    counts.Total,
			ActiveEmployees:   counts.Active,
			PendingLeaves:     pending,
			TodayPresent:      present,
			PayrollsThisMonth: payrolls,
		},
		DepartmentBreakdown: departments,
		LeaveBreakdown:      leaves,
		RecentEmployees:     recentResponses,
		Date:                today.Format("2006-01-02"),
	}, nil
}

// GetEmployeeDashboard composes the self-service view from the domain repositories.
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context, employeeID string) (dashboard.EmployeeDashboardResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	today := clock.DateOf(s.clock.Now(), s.location)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var (
		resp      dashboard.EmployeeDashboardResponse
		todayRec  *attendance.AttendanceResponse
		monthRecs []attendance.Attendance
		approved  []leave.LeaveRequest
		upcoming  []leave.LeaveRequest
		yearLeave []leave.LeaveRequest
		recentPay []payroll.PayrollRecord
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		filter := leave.LeaveFilter{EmployeeID: &employeeID, Status: ptr(string(leave.StatusPending))}
		filter.Page, filter.Limit = 1, 1
		_, total, err := s.leaveRepo.List(gCtx, filter)
		resp.Stats.PendingLeaves = total
		return err
	})
	g.Go(func() (err error) {
		approved, err = s.leaveRepo.ListApproved(gCtx, employeeID, monthStart, monthEnd)
		return err
	})
	g.Go(func() (err error) {
		upcoming, err = s.leaveRepo.ListApproved(gCtx, employeeID, today, today.AddDate(0, 0, upcomingLeavesWindow))
		return err
	})
	g.Go(func() (err error) {
		from, to := leave.YearRange(today.Year())
		yearLeave, err = s.leaveRepo.ListApproved(gCtx, employeeID, from, to)
		return err
	})
	g.Go(func() error {
		a, err := s.attendanceRepo.GetByEmployeeAndDate(gCtx, employeeID, today)
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		r := attendance.NewAttendanceResponse(a)
		todayRec = &r
		return nil
	})
	g.Go(func() (err error) {
		monthRecs, err = s.monthAttendance(gCtx, employeeID, monthStart, today)
		return err
	})
	g.Go(func() error {
		filter := payroll.PayrollFilter{EmployeeID: &employeeID}
		filter.Page, filter.Limit = 1, recentPayrollsLimit
		records, _, err := s.payrollRepo.ListPayrollRecords(gCtx, filter)
		recentPay = records
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.EmployeeDashboardResponse{}, fmt.Errorf("failed to load employee dashboard: %w", err)
	}

	resp.Stats.ApprovedLeavesThisMonth = int64(len(approved))
	for _, a := range monthRecs {
		if a.Status == attendance.StatusPresent || a.Status == attendance.StatusLate {
			resp.Stats.PresentDaysThisMonth++
		}
		if a.TotalHours != nil {
			resp.Stats.HoursThisMonth += *a.TotalHours
		}
	}

	resp.TodayAttendance = todayRec

	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].StartDate.Before(upcoming[j].StartDate) })
	if len(upcoming) > upcomingLeavesLimit {
		upcoming = upcoming[:upcomingLeavesLimit]
	}
	resp.UpcomingLeaves = make([]leave.LeaveRequestResponse, 0, len(upcoming))
	for _, l := range upcoming {
		resp.UpcomingLeaves = append(resp.UpcomingLeaves, leave.NewLeaveRequestResponse(l))
	}

	resp.RecentPayrolls = make([]payroll.PayrollRecordResponse, 0, len(recentPay))
	for _, p := range recentPay {
		resp.RecentPayrolls = append(resp.RecentPayrolls, payroll.NewPayrollRecordResponse(p))
	}

	resp.LeaveBalance = leave.ComputeBalance(today.Year(), yearLeave)

	return resp, nil
}

// monthAttendance pages through the employee's records between from and to.
func (s *DashboardServiceImpl) monthAttendance(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	start, end := from.Format("2006-01-02"), to.Format("2006-01-02")
	filter := attendance.AttendanceFilter{EmployeeID: &employeeID, StartDate: &start, EndDate: &end}
	filter.Page, filter.Limit = 1, pagination.MaxLimit

	var all []attendance.Attendance
	for {
		records, total, err := s.attendanceRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
		if int64(len(all)) >= total || len(records) == 0 {
			return all, nil
		}
		filter.Page++
	}
}

func ptr[T any](v T) *T {
	return &v
}
