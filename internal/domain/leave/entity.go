package leave

import (
	"time"
)

type LeaveType string

const (
	TypeSick      LeaveType = "SICK_LEAVE"
	TypeCasual    LeaveType = "CASUAL_LEAVE"
	TypeEarned    LeaveType = "EARNED_LEAVE"
	TypeMaternity LeaveType = "MATERNITY_LEAVE"
	TypePaternity LeaveType = "PATERNITY_LEAVE"
	TypeCompOff   LeaveType = "COMP_OFF"
	TypeLOP       LeaveType = "LOP"
)

// Types lists every leave category in display order.
var Types = []LeaveType{TypeSick, TypeCasual, TypeEarned, TypeMaternity, TypePaternity, TypeCompOff, TypeLOP}

func (t LeaveType) IsValid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// IsTerminal reports whether a request in this status can no longer transition.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// LeaveRequest entity
type LeaveRequest struct {
	ID             string
	EmployeeID     string
	Type           LeaveType
	StartDate      time.Time
	EndDate        time.Time
	Days           int
	Reason         *string
	Status         Status
	ApprovedBy     *string
	ApprovedAt     *time.Time
	RejectedReason *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / Join
	EmployeeName *string
	EmployeeCode *string
	Designation  *string
}

// Overlaps reports whether the request intersects [start, end].
func (l LeaveRequest) Overlaps(start, end time.Time) bool {
	return !l.StartDate.After(end) && !l.EndDate.Before(start)
}

// StatusTransition is the one-way decision applied to a PENDING request.
type StatusTransition struct {
	Status         Status
	ActorID        string
	At             time.Time
	RejectedReason *string
}

// OverlapPolicy decides whether a new request may intersect the employee's
// PENDING or APPROVED requests.
type OverlapPolicy string

const (
	OverlapAllow  OverlapPolicy = "allow"
	OverlapReject OverlapPolicy = "reject"
)
