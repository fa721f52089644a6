package review

import "time"

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusApproved  Status = "APPROVED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved:
		return true
	}
	return false
}

// Review is a performance review of one employee for a period such as "2024-Q1".
type Review struct {
	ID           string
	EmployeeID   string
	ReviewerID   string
	Period       string
	Rating       *int
	Feedback     *string
	Goals        *string
	Achievements *string
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	EmployeeName   *string
	ReviewerName   *string
	ReviewerUserID *string
}
