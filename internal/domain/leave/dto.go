package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	Type      string  `json:"type" validate:"required,oneof=SICK_LEAVE CASUAL_LEAVE EARNED_LEAVE MATERNITY_LEAVE PATERNITY_LEAVE COMP_OFF LOP"`
	StartDate string  `json:"start_date" validate:"required"`
	EndDate   string  `json:"end_date" validate:"required"`
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=1000"`
}

// Validate checks the shape of the request. The date order is checked by the service
// so that it surfaces as ErrInvalidDateRange.
func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	errs, err := errs.Merge(validator.Struct(r))
	if err != nil {
		return err
	}

	if r.StartDate != "" {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != "" {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Dates returns the parsed range. Validate must have succeeded.
func (r *ApplyLeaveRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type UpdateLeaveStatusRequest struct {
	Status         string  `json:"status"`
	RejectedReason *string `json:"rejected_reason,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	switch Status(strings.ToUpper(r.Status)) {
	case StatusApproved, StatusRejected, StatusCancelled:
		r.Status = strings.ToUpper(r.Status)
	default:
		return ErrInvalidStatus
	}
	return validator.Struct(r)
}

type LeaveFilter struct {
	pagination.Params

	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	Type       *string `json:"type,omitempty"`
}

func (f *LeaveFilter) Validate() error {
	errs := f.Params.Normalize(10)

	if f.Status != nil {
		status := Status(strings.ToUpper(*f.Status))
		switch status {
		case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
			s := string(status)
			f.Status = &s
		default:
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PENDING, APPROVED, REJECTED, CANCELLED",
			})
		}
	}

	if f.Type != nil {
		t := LeaveType(strings.ToUpper(*f.Type))
		if t.IsValid() {
			s := string(t)
			f.Type = &s
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type is not a known leave type",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	EmployeeCode   *string `json:"employee_code,omitempty"`
	Designation    *string `json:"designation,omitempty"`
	Type           string  `json:"type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Days           int     `json:"days"`
	Reason         *string `json:"reason,omitempty"`
	Status         string  `json:"status"`
	ApprovedBy     *string `json:"approved_by,omitempty"`
	ApprovedAt     *string `json:"approved_at,omitempty"`
	RejectedReason *string `json:"rejected_reason,omitempty"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type ListLeaveResponse struct {
	pagination.Meta
	Leaves []LeaveRequestResponse `json:"leaves"`
}

func NewLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:             l.ID,
		EmployeeID:     l.EmployeeID,
		EmployeeName:   l.EmployeeName,
		EmployeeCode:   l.EmployeeCode,
		Designation:    l.Designation,
		Type:           string(l.Type),
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		Days:           l.Days,
		Reason:         l.Reason,
		Status:         string(l.Status),
		ApprovedBy:     l.ApprovedBy,
		RejectedReason: l.RejectedReason,
		CreatedAt:      l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      l.UpdatedAt.Format(time.RFC3339),
	}
	if l.ApprovedAt != nil {
		s := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	return resp
}
