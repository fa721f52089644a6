package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.break_duration,
	a.total_hours, a.status, a.notes, a.created_at, a.updated_at,
	emp.first_name || ' ' || emp.last_name, emp.employee_code, emp.designation`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut, &att.BreakDurationMinutes,
		&att.TotalHours, &att.Status, &att.Notes, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeCode, &att.Designation,
	)
	return att, err
}

// UpsertClockIn implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertClockIn(ctx context.Context, employeeID string, date time.Time, clockIn time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	// The conflict branch only fires for a row without clock_in, so a repeated
	// clock-in returns no row instead of overwriting the first one.
	query := `
		WITH a AS (
			INSERT INTO attendances (employee_id, date, clock_in, status)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT ON CONSTRAINT uk_attendance_employee_date DO UPDATE
				SET clock_in = EXCLUDED.clock_in, status = EXCLUDED.status, updated_at = NOW()
				WHERE attendances.clock_in IS NULL
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM a
		JOIN employees emp ON emp.id = a.employee_id
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date, clockIn, attendance.StatusPresent))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to clock in: %w", err)
	}
	return att, nil
}

// CompleteClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) CompleteClockOut(ctx context.Context, id string, clockOut time.Time, breakMinutes int, totalHours float64) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		WITH a AS (
			UPDATE attendances
			SET clock_out = $2, break_duration = $3, total_hours = $4, updated_at = NOW()
			WHERE id = $1 AND clock_out IS NULL
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM a
		JOIN employees emp ON emp.id = a.employee_id
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, clockOut, breakMinutes, totalHours))
	if err == nil {
		return att, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to clock out: %w", err)
	}

	if _, err := a.GetByID(ctx, id); err != nil {
		return attendance.Attendance{}, err
	}
	return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees emp ON emp.id = a.employee_id
		WHERE a.employee_id = $1 AND a.date = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		JOIN employees emp ON emp.id = a.employee_id
		WHERE a.id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance with id %s: %w", id, err)
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		WITH a AS (
			UPDATE attendances SET
				date = $2, clock_in = $3, clock_out = $4, break_duration = $5,
				total_hours = $6, status = $7, notes = $8, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + attendanceColumns + `
		FROM a
		JOIN employees emp ON emp.id = a.employee_id
	`

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.ID, att.Date, att.ClockIn, att.ClockOut, att.BreakDurationMinutes,
		att.TotalHours, att.Status, att.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		if isUniqueViolation(err, "uk_attendance_employee_date") {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Date != nil && *filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d::date", argIdx))
		args = append(args, *filter.Date)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances a " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN employees emp ON emp.id = a.employee_id
		%s
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	attendances := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return attendances, total, nil
}
