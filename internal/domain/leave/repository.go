package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)

	// ListApproved returns the APPROVED requests of the employee whose start date is in [from, to].
	ListApproved(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)

	// HasOverlap reports whether a PENDING or APPROVED request of the employee intersects [start, end].
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// UpdateStatus applies t only while the request is still PENDING.
	// Returns ErrLeaveRequestNotFound or ErrLeaveRequestAlreadyProcessed otherwise.
	UpdateStatus(ctx context.Context, id string, t StatusTransition) (LeaveRequest, error)
}
