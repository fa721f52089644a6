package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// UpsertClockIn creates the day's record or fills clock_in on a record that has none,
	// in a single statement. Returns ErrAlreadyClockedIn when the day already has a clock-in.
	UpsertClockIn(ctx context.Context, employeeID string, date time.Time, clockIn time.Time) (Attendance, error)

	// CompleteClockOut sets clock_out only if it is still empty.
	// Returns ErrAlreadyClockedOut when another request got there first.
	CompleteClockOut(ctx context.Context, id string, clockOut time.Time, breakMinutes int, totalHours float64) (Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when the day has no record
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// Update writes every mutable column. Returns ErrAttendanceExists on a date collision.
	Update(ctx context.Context, a Attendance) (Attendance, error)

	// List retrieves attendance records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}
