package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn records today's clock-in for the employee
	ClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// ClockOut completes today's record and computes total hours
	ClockOut(ctx context.Context, employeeID string, req ClockOutRequest) (AttendanceResponse, error)

	// GetToday returns today's record of the employee
	GetToday(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for authenticated employee
	GetMyAttendance(ctx context.Context, employeeID string, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin/hr/manager)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// GetByDate lists every employee's record of one day
	GetByDate(ctx context.Context, date string) ([]AttendanceResponse, error)

	// UpdateAttendance corrects a record (admin/hr)
	UpdateAttendance(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
