package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockOutRequest struct {
	BreakDuration int `json:"break_duration" validate:"gte=0,lte=1440"`
}

func (r *ClockOutRequest) Validate() error {
	return validator.Struct(r)
}

// UpdateAttendanceRequest holds the fields an administrator may correct.
// Timestamps are RFC3339, date is YYYY-MM-DD.
type UpdateAttendanceRequest struct {
	Date                 *string `json:"date,omitempty"`
	ClockIn              *string `json:"clock_in,omitempty"`
	ClockOut             *string `json:"clock_out,omitempty"`
	BreakDurationMinutes *int    `json:"break_duration,omitempty" validate:"omitempty,gte=0,lte=1440"`
	Status               *string `json:"status,omitempty"`
	Notes                *string `json:"notes,omitempty" validate:"omitempty,max=500"`

	// Parsed by Validate
	date     *time.Time
	clockIn  *time.Time
	clockOut *time.Time
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	errs, err := errs.Merge(validator.Struct(r))
	if err != nil {
		return err
	}

	if r.Date != nil {
		if d, ok := validator.IsValidDate(*r.Date); ok {
			r.date = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.ClockIn != nil {
		if t, ok := validator.IsValidDateTime(*r.ClockIn); ok {
			r.clockIn = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an RFC3339 timestamp",
			})
		}
	}

	if r.ClockOut != nil {
		if t, ok := validator.IsValidDateTime(*r.ClockOut); ok {
			r.clockOut = &t
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an RFC3339 timestamp",
			})
		}
	}

	if r.Status != nil {
		status := strings.ToUpper(*r.Status)
		if !validator.IsInSlice(status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(validStatuses, ", "),
			})
		}
		r.Status = &status
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply merges the request over a and recomputes TotalHours when the clock times or the
// break changed and both clock times are present. Validate must have succeeded.
func (r *UpdateAttendanceRequest) Apply(a Attendance) (Attendance, error) {
	recompute := false

	if r.date != nil {
		a.Date = *r.date
	}
	if r.clockIn != nil {
		t := r.clockIn.UTC()
		a.ClockIn = &t
		recompute = true
	}
	if r.clockOut != nil {
		t := r.clockOut.UTC()
		a.ClockOut = &t
		recompute = true
	}
	if r.BreakDurationMinutes != nil {
		a.BreakDurationMinutes = *r.BreakDurationMinutes
		recompute = true
	}
	if r.Status != nil {
		a.Status = Status(*r.Status)
	}
	if r.Notes != nil {
		a.Notes = r.Notes
	}

	if a.ClockIn != nil && a.ClockOut != nil {
		if a.ClockOut.Before(*a.ClockIn) {
			return Attendance{}, validator.ValidationErrors{{
				Field:   "clock_out",
				Message: ErrClockOutBeforeIn.Error(),
			}}
		}
		if recompute {
			hours := ComputeHours(*a.ClockIn, *a.ClockOut, a.BreakDurationMinutes)
			a.TotalHours = &hours
		}
	}

	return a, nil
}

type AttendanceResponse struct {
	ID                   string   `json:"id"`
	EmployeeID           string   `json:"employee_id"`
	EmployeeName         *string  `json:"employee_name,omitempty"`
	EmployeeCode         *string  `json:"employee_code,omitempty"`
	Designation          *string  `json:"designation,omitempty"`
	Date                 string   `json:"date"`
	ClockIn              *string  `json:"clock_in,omitempty"`
	ClockOut             *string  `json:"clock_out,omitempty"`
	BreakDurationMinutes int      `json:"break_duration"`
	TotalHours           *float64 `json:"total_hours,omitempty"`
	Status               string   `json:"status"`
	State                string   `json:"state"`
	Notes                *string  `json:"notes,omitempty"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

type AttendanceFilter struct {
	pagination.Params

	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
}

func (f *AttendanceFilter) Validate() error {
	errs := f.Params.Normalize(30)

	// Status validation
	if f.Status != nil {
		status := strings.ToUpper(*f.Status)
		if !validator.IsInSlice(status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: " + strings.Join(validStatuses, ", "),
			})
		}
		f.Status = &status
	}

	// Date validation
	for field, value := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if value == nil || *value == "" {
			continue
		}
		if _, valid := validator.IsValidDate(*value); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be in YYYY-MM-DD format",
			})
		}
	}

	if f.StartDate != nil && f.EndDate != nil && *f.StartDate != "" && *f.EndDate != "" && *f.StartDate > *f.EndDate {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	pagination.Meta
	Attendances []AttendanceResponse `json:"attendances"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                   a.ID,
		EmployeeID:           a.EmployeeID,
		EmployeeName:         a.EmployeeName,
		EmployeeCode:         a.EmployeeCode,
		Designation:          a.Designation,
		Date:                 a.Date.Format("2006-01-02"),
		BreakDurationMinutes: a.BreakDurationMinutes,
		TotalHours:           a.TotalHours,
		Status:               string(a.Status),
		State:                string(a.State()),
		Notes:                a.Notes,
		CreatedAt:            a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            a.UpdatedAt.Format(time.RFC3339),
	}

	if a.ClockIn != nil {
		s := a.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &s
	}
	if a.ClockOut != nil {
		s := a.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &s
	}

	return resp
}
