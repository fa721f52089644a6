package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountEmployees returns total and active in single query
func (r *dashboardRepositoryImpl) CountEmployees(ctx context.Context) (dashboard.EmployeeCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) as active_count
		FROM employees
	`

	var counts dashboard.EmployeeCounts
	if err := q.QueryRow(ctx, query).Scan(&counts.Total, &counts.Active); err != nil {
		return dashboard.EmployeeCounts{}, fmt.Errorf("failed to count employees: %w", err)
	}
	return counts, nil
}

func (r *dashboardRepositoryImpl) CountPendingLeaves(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = 'PENDING'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending leaves: %w", err)
	}
	return n, nil
}

func (r *dashboardRepositoryImpl) CountPresentOn(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM attendances WHERE date = $1 AND status IN ('PRESENT', 'LATE')`

	var n int64
	if err := q.QueryRow(ctx, query, date).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count present employees: %w", err)
	}
	return n, nil
}

func (r *dashboardRepositoryImpl) CountPayrollsForPeriod(ctx context.Context, month, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payrolls WHERE month = $1 AND year = $2`, month, year).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count payrolls: %w", err)
	}
	return n, nil
}

func (r *dashboardRepositoryImpl) DepartmentBreakdown(ctx context.Context) ([]employee.DepartmentCount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT department, COUNT(*)
		FROM employees
		WHERE is_active AND department IS NOT NULL
		GROUP BY department
		ORDER BY department
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get department breakdown: %w", err)
	}
	defer rows.Close()

	result := make([]employee.DepartmentCount, 0)
	for rows.Next() {
		var dc employee.DepartmentCount
		if err := rows.Scan(&dc.Department, &dc.Count); err != nil {
			return nil, err
		}
		result = append(result, dc)
	}
	return result, rows.Err()
}

func (r *dashboardRepositoryImpl) LeaveStatusBreakdown(ctx context.Context) ([]dashboard.StatusCount, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM leave_requests GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave status breakdown: %w", err)
	}
	defer rows.Close()

	result := make([]dashboard.StatusCount, 0)
	for rows.Next() {
		var sc dashboard.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

func (r *dashboardRepositoryImpl) RecentEmployees(ctx context.Context, limit int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees e
		LEFT JOIN employees m ON m.id = e.manager_id
		WHERE e.is_active
		ORDER BY e.created_at DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent employees: %w", err)
	}
	defer rows.Close()

	result := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}
