package review

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
)

type CreateReviewRequest struct {
	EmployeeID   string  `json:"employee_id" validate:"required,uuid"`
	Period       string  `json:"period" validate:"required,max=50"`
	Rating       *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Feedback     *string `json:"feedback,omitempty"`
	Goals        *string `json:"goals,omitempty"`
	Achievements *string `json:"achievements,omitempty"`
}

func (r *CreateReviewRequest) Validate() error {
	r.Period = strings.TrimSpace(r.Period)
	return validator.Struct(r)
}

// UpdateReviewRequest lists the fields a reviewer may change.
type UpdateReviewRequest struct {
	Period       *string `json:"period,omitempty" validate:"omitempty,min=1,max=50"`
	Rating       *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Feedback     *string `json:"feedback,omitempty"`
	Goals        *string `json:"goals,omitempty"`
	Achievements *string `json:"achievements,omitempty"`
	Status       *string `json:"status,omitempty"`
}

func (r *UpdateReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	errs, err := errs.Merge(validator.Struct(r))
	if err != nil {
		return err
	}

	if r.Status != nil {
		status := Status(strings.ToUpper(*r.Status))
		if !status.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: DRAFT, SUBMITTED, APPROVED",
			})
		} else {
			s := string(status)
			r.Status = &s
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the request over r.
func (req *UpdateReviewRequest) Apply(r Review) Review {
	if req.Period != nil {
		r.Period = *req.Period
	}
	if req.Rating != nil {
		r.Rating = req.Rating
	}
	if req.Feedback != nil {
		r.Feedback = req.Feedback
	}
	if req.Goals != nil {
		r.Goals = req.Goals
	}
	if req.Achievements != nil {
		r.Achievements = req.Achievements
	}
	if req.Status != nil {
		r.Status = Status(*req.Status)
	}
	return r
}

type ReviewFilter struct {
	pagination.Params

	EmployeeID *string `json:"employee_id,omitempty"`
	ReviewerID *string `json:"reviewer_id,omitempty"`
	Period     *string `json:"period,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (f *ReviewFilter) Validate() error {
	errs := f.Params.Normalize(10)

	if f.Status != nil {
		status := Status(strings.ToUpper(*f.Status))
		if !status.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: DRAFT, SUBMITTED, APPROVED",
			})
		} else {
			s := string(status)
			f.Status = &s
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	ReviewerID   string  `json:"reviewer_id"`
	ReviewerName *string `json:"reviewer_name,omitempty"`
	Period       string  `json:"period"`
	Rating       *int    `json:"rating,omitempty"`
	Feedback     *string `json:"feedback,omitempty"`
	Goals        *string `json:"goals,omitempty"`
	Achievements *string `json:"achievements,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListReviewResponse struct {
	pagination.Meta
	Reviews []ReviewResponse `json:"reviews"`
}

func NewReviewResponse(r Review) ReviewResponse {
	return ReviewResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		ReviewerID:   r.ReviewerID,
		ReviewerName: r.ReviewerName,
		Period:       r.Period,
		Rating:       r.Rating,
		Feedback:     r.Feedback,
		Goals:        r.Goals,
		Achievements: r.Achievements,
		Status:       string(r.Status),
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
