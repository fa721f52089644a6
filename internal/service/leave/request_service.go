package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
)

// ApplyLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) ApplyLeave(ctx context.Context, employeeID string, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, end := req.Dates()
	if start.After(end) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidDateRange
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if s.overlapPolicy == leave.OverlapReject {
		overlaps, err := s.leaveRepo.HasOverlap(ctx, employeeID, start, end)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to check overlapping leaves: %w", err)
		}
		if overlaps {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveOverlap
		}
	}

	var reason *string
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		r := strings.TrimSpace(*req.Reason)
		reason = &r
	}

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: employeeID,
		Type:       leave.LeaveType(req.Type),
		StartDate:  start,
		EndDate:    end,
		Days:       leave.ComputeDays(start, end),
		Reason:     reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	name := emp.FullName()
	created.EmployeeName = &name

	slog.Info("leave applied", "leave_id", created.ID, "employee_id", employeeID, "type", created.Type, "days", created.Days)
	return leave.NewLeaveRequestResponse(created), nil
}

// SetLeaveStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) SetLeaveStatus(ctx context.Context, id string, actorID string, req leave.UpdateLeaveStatusRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	transition := leave.StatusTransition{
		Status:  leave.Status(req.Status),
		ActorID: actorID,
		At:      s.clock.Now().UTC(),
	}
	if transition.Status == leave.StatusRejected && req.RejectedReason != nil && *req.RejectedReason != "" {
		transition.RejectedReason = req.RejectedReason
	}

	updated, err := s.leaveRepo.UpdateStatus(ctx, id, transition)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave status updated", "leave_id", id, "status", updated.Status, "actor_id", actorID)
	return leave.NewLeaveRequestResponse(updated), nil
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	requests, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}

	return leave.ListLeaveResponse{
		Meta:   pagination.NewMeta(filter.Params, total),
		Leaves: responses,
	}, nil
}

// GetMyLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyLeaves(ctx context.Context, employeeID string, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	filter.EmployeeID = &employeeID
	return s.ListLeaves(ctx, filter)
}

// GetLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeave(ctx context.Context, id string, caller user.Principal) (leave.LeaveRequestResponse, error) {
	request, err := s.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if !caller.CanApprove() && request.EmployeeID != caller.EmployeeID {
		return leave.LeaveRequestResponse{}, user.ErrAccessDenied
	}

	return leave.NewLeaveRequestResponse(request), nil
}
