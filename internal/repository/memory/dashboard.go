package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
)

type DashboardRepository struct {
	s *Store
}

var _ dashboard.DashboardRepository = (*DashboardRepository)(nil)

func (r *DashboardRepository) CountEmployees(ctx context.Context) (dashboard.EmployeeCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var counts dashboard.EmployeeCounts
	for _, e := range r.s.employees {
		counts.Total++
		if e.IsActive {
			counts.Active++
		}
	}
	return counts, nil
}

func (r *DashboardRepository) CountPendingLeaves(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, l := range r.s.leaves {
		if l.Status == leave.StatusPending {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepository) CountPresentOn(ctx context.Context, date time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, a := range r.s.attendances {
		if a.Date.Equal(date) && (a.Status == attendance.StatusPresent || a.Status == attendance.StatusLate) {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepository) CountPayrollsForPeriod(ctx context.Context, month, year int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, p := range r.s.payrolls {
		if p.PeriodMonth == month && p.PeriodYear == year {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepository) DepartmentBreakdown(ctx context.Context) ([]employee.DepartmentCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[string]int64)
	for _, e := range r.s.employees {
		if !e.IsActive || e.Department == nil {
			continue
		}
		counts[*e.Department]++
	}

	rows := make([]employee.DepartmentCount, 0, len(counts))
	for dept, n := range counts {
		rows = append(rows, employee.DepartmentCount{Department: dept, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Department < rows[j].Department })
	return rows, nil
}

func (r *DashboardRepository) LeaveStatusBreakdown(ctx context.Context) ([]dashboard.StatusCount, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := make(map[leave.Status]int64)
	for _, l := range r.s.leaves {
		counts[l.Status]++
	}

	rows := make([]dashboard.StatusCount, 0, len(counts))
	for status, n := range counts {
		rows = append(rows, dashboard.StatusCount{Status: string(status), Count: n})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Status < rows[j].Status })
	return rows, nil
}

func (r *DashboardRepository) RecentEmployees(ctx context.Context, limit int) ([]employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	active := make([]employee.Employee, 0)
	for _, e := range r.s.employees {
		if e.IsActive {
			active = append(active, e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
	if len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}
