package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type AttendanceRepository struct {
	s *Store
}

var _ attendance.AttendanceRepository = (*AttendanceRepository)(nil)

func (r *AttendanceRepository) UpsertClockIn(ctx context.Context, employeeID string, date time.Time, clockIn time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if a, ok := r.findByDate(employeeID, date); ok {
		if a.ClockIn != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyClockedIn
		}
		a.ClockIn = &clockIn
		a.Status = attendance.StatusPresent
		a.UpdatedAt = now
		r.s.attendances[a.ID] = a
		return r.join(a), nil
	}

	a := attendance.Attendance{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
		ClockIn:    &clockIn,
		Status:     attendance.StatusPresent,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.s.attendances[a.ID] = a
	return r.join(a), nil
}

func (r *AttendanceRepository) CompleteClockOut(ctx context.Context, id string, clockOut time.Time, breakMinutes int, totalHours float64) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if a.ClockOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyClockedOut
	}

	a.ClockOut = &clockOut
	a.BreakDurationMinutes = breakMinutes
	a.TotalHours = &totalHours
	a.UpdatedAt = r.s.now()
	r.s.attendances[id] = a
	return r.join(a), nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.findByDate(employeeID, date)
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.join(a), nil
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.join(a), nil
}

func (r *AttendanceRepository) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.attendances[a.ID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if other, taken := r.findByDate(a.EmployeeID, a.Date); taken && other.ID != a.ID {
		return attendance.Attendance{}, attendance.ErrAttendanceExists
	}

	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = r.s.now()
	r.s.attendances[a.ID] = a
	return r.join(a), nil
}

func (r *AttendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	date := parseFilterDate(filter.Date)
	start := parseFilterDate(filter.StartDate)
	end := parseFilterDate(filter.EndDate)

	matched := make([]attendance.Attendance, 0)
	for _, a := range r.s.attendances {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		if date != nil && !a.Date.Equal(*date) {
			continue
		}
		if start != nil && a.Date.Before(*start) {
			continue
		}
		if end != nil && a.Date.After(*end) {
			continue
		}
		matched = append(matched, r.join(a))
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Date.After(matched[j].Date)
	})

	return paginate(matched, filter.Params), int64(len(matched)), nil
}

// findByDate mirrors uk_attendance_employee_date. Caller holds mu.
func (r *AttendanceRepository) findByDate(employeeID string, date time.Time) (attendance.Attendance, bool) {
	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			return a, true
		}
	}
	return attendance.Attendance{}, false
}

func (r *AttendanceRepository) join(a attendance.Attendance) attendance.Attendance {
	a.EmployeeName, a.EmployeeCode, a.Designation = r.s.employeeJoin(a.EmployeeID)
	return a
}

func parseFilterDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	t, ok := validator.IsValidDate(*value)
	if !ok {
		return nil
	}
	return &t
}
