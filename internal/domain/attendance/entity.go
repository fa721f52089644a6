package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusLate    Status = "LATE"
	StatusOnLeave Status = "ON_LEAVE"
	StatusHoliday Status = "HOLIDAY"
)

var validStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusHalfDay),
	string(StatusLate),
	string(StatusOnLeave),
	string(StatusHoliday),
}

// Attendance is the single record of an employee for one calendar day.
// (EmployeeID, Date) is unique.
type Attendance struct {
	ID                   string
	EmployeeID           string
	Date                 time.Time
	ClockIn              *time.Time
	ClockOut             *time.Time
	BreakDurationMinutes int
	TotalHours           *float64
	Status               Status
	Notes                *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
	Designation  *string
}

// State derives the clock state of the record.
type State string

const (
	StateNoRecord  State = "NO_RECORD"
	StateClockedIn State = "CLOCKED_IN"
	StateComplete  State = "COMPLETE"
)

func (a Attendance) State() State {
	switch {
	case a.ClockIn == nil:
		return StateNoRecord
	case a.ClockOut == nil:
		return StateClockedIn
	default:
		return StateComplete
	}
}
