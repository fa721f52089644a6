package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type LeaveRepository struct {
	s *Store
}

var _ leave.LeaveRequestRepository = (*LeaveRepository)(nil)

func (r *LeaveRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := r.s.now()
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.leaves[req.ID] = req
	return r.join(req), nil
}

func (r *LeaveRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r.join(req), nil
}

func (r *LeaveRepository) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]leave.LeaveRequest, 0)
	for _, req := range r.s.leaves {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(req.Status) != *filter.Status {
			continue
		}
		if filter.Type != nil && string(req.Type) != *filter.Type {
			continue
		}
		matched = append(matched, r.join(req))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return paginate(matched, filter.Params), int64(len(matched)), nil
}

func (r *LeaveRepository) ListApproved(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	approved := make([]leave.LeaveRequest, 0)
	for _, req := range r.s.leaves {
		if req.EmployeeID != employeeID || req.Status != leave.StatusApproved {
			continue
		}
		if req.StartDate.Before(from) || req.StartDate.After(to) {
			continue
		}
		approved = append(approved, r.join(req))
	}
	sort.Slice(approved, func(i, j int) bool { return approved[i].StartDate.Before(approved[j].StartDate) })
	return approved, nil
}

func (r *LeaveRepository) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, req := range r.s.leaves {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != leave.StatusPending && req.Status != leave.StatusApproved {
			continue
		}
		if req.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *LeaveRepository) UpdateStatus(ctx context.Context, id string, t leave.StatusTransition) (leave.LeaveRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.leaves[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if req.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	at := t.At
	actor := t.ActorID
	req.Status = t.Status
	req.ApprovedBy = &actor
	req.ApprovedAt = &at
	req.RejectedReason = t.RejectedReason
	req.UpdatedAt = r.s.now()
	r.s.leaves[id] = req
	return r.join(req), nil
}

func (r *LeaveRepository) join(req leave.LeaveRequest) leave.LeaveRequest {
	req.EmployeeName, req.EmployeeCode, req.Designation = r.s.employeeJoin(req.EmployeeID)
	return req
}
