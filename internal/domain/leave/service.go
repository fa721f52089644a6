package leave

import (
	"context"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
)

type LeaveService interface {
	// ApplyLeave files a PENDING request for the employee
	ApplyLeave(ctx context.Context, employeeID string, req ApplyLeaveRequest) (LeaveRequestResponse, error)

	// GetLeaveBalance computes the balance of year; year 0 means the current year
	GetLeaveBalance(ctx context.Context, employeeID string, year int) (Balance, error)

	// SetLeaveStatus moves a PENDING request to APPROVED, REJECTED or CANCELLED
	SetLeaveStatus(ctx context.Context, id string, actorID string, req UpdateLeaveStatusRequest) (LeaveRequestResponse, error)

	ListLeaves(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	GetMyLeaves(ctx context.Context, employeeID string, filter LeaveFilter) (ListLeaveResponse, error)

	// GetLeave returns a request visible to the caller: their own, or any for approvers
	GetLeave(ctx context.Context, id string, caller user.Principal) (LeaveRequestResponse, error)
}
