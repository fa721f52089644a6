package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	clock          clock.Clock
	location       *time.Location
}

// NewAttendanceService builds the service. loc decides which calendar day "today" is.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		clock:          clk,
		location:       loc,
	}
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now().UTC()
	today := clock.DateOf(now, s.location)

	// Fast path; the upsert below still decides under concurrency.
	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if err == nil && existing.ClockIn != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
	}

	att, err := s.attendanceRepo.UpsertClockIn(ctx, employeeID, today, now)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("employee clocked in", "employee_id", employeeID, "date", today.Format("2006-01-02"))
	return attendance.NewAttendanceResponse(att), nil
}

// ClockOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now().UTC()
	today := clock.DateOf(now, s.location)

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	switch att.State() {
	case attendance.StateNoRecord:
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	case attendance.StateComplete:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedOut
	}

	hours := attendance.ComputeHours(*att.ClockIn, now, req.BreakDuration)

	updated, err := s.attendanceRepo.CompleteClockOut(ctx, att.ID, now, req.BreakDuration, hours)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("employee clocked out", "employee_id", employeeID, "total_hours", hours)
	return attendance.NewAttendanceResponse(updated), nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	today := clock.DateOf(s.clock.Now(), s.location)

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.NewAttendanceResponse(att), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, employeeID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	filter.EmployeeID = &employeeID
	return s.list(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.EmployeeID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *filter.EmployeeID); err != nil {
			return attendance.ListAttendanceResponse{}, err
		}
	}
	return s.list(ctx, filter)
}

// GetByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByDate(ctx context.Context, date string) ([]attendance.AttendanceResponse, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return nil, validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}

	filter := attendance.AttendanceFilter{Date: &date}
	filter.Page = 1
	filter.Limit = pagination.MaxLimit

	responses := make([]attendance.AttendanceResponse, 0)
	for {
		records, total, err := s.attendanceRepo.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list attendance by date: %w", err)
		}
		for _, att := range records {
			responses = append(responses, attendance.NewAttendanceResponse(att))
		}
		if int64(len(responses)) >= total || len(records) == 0 {
			break
		}
		filter.Page++
	}

	return responses, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	existing, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	patched, err := req.Apply(existing)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	updated, err := s.attendanceRepo.Update(ctx, patched)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("attendance corrected", "attendance_id", id, "employee_id", updated.EmployeeID)
	return attendance.NewAttendanceResponse(updated), nil
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, attendance.NewAttendanceResponse(att))
	}

	return attendance.ListAttendanceResponse{
		Meta:        pagination.NewMeta(filter.Params, total),
		Attendances: responses,
	}, nil
}
