package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrInvalidDateRange             = errors.New("start date must not be after end date")
	ErrInvalidStatus                = errors.New("status must be one of: APPROVED, REJECTED, CANCELLED")
	ErrLeaveOverlap                 = errors.New("leave overlaps an existing pending or approved request")
)
