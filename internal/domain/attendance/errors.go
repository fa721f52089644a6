package attendance

import "errors"

// Attendance domain errors
var (
	// Clock errors
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("please clock in first")
	ErrAlreadyClockedOut = errors.New("already clocked out today")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance record already exists for this employee and date")
	ErrClockOutBeforeIn   = errors.New("clock_out must not be before clock_in")
)
