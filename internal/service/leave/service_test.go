package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hrUserID = "3b7a1f0c-2d4e-4f5a-8b6c-7d8e9f0a1b2c"

func newLeaveFixture(t *testing.T, opts ...Option) (leave.LeaveService, *memory.Store, string) {
	t.Helper()

	clk := &clock.Fixed{T: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)}
	store := memory.NewStore(clk)
	emp, err := store.Employees().Create(context.Background(), employee.Employee{
		EmployeeCode:  "EMP100",
		FirstName:     "Budi",
		LastName:      "Santoso",
		Email:         "budi@example.com",
		DateOfJoining: time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	})
	require.NoError(t, err)

	return NewLeaveService(store.Leaves(), store.Employees(), clk, opts...), store, emp.ID
}

func applyLeave(t *testing.T, svc leave.LeaveService, employeeID string, leaveType leave.LeaveType, start, end string) leave.LeaveRequestResponse {
	t.Helper()
	resp, err := svc.ApplyLeave(context.Background(), employeeID, leave.ApplyLeaveRequest{
		Type:      string(leaveType),
		StartDate: start,
		EndDate:   end,
	})
	require.NoError(t, err)
	return resp
}

// ===== APPLY =====

func TestLeaveService_ApplyLeave_Success(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)

	reason := "  family event  "
	resp, err := svc.ApplyLeave(ctx, empID, leave.ApplyLeaveRequest{
		Type:      string(leave.TypeCasual),
		StartDate: "2024-06-10",
		EndDate:   "2024-06-12",
		Reason:    &reason,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, "2024-06-10", resp.StartDate)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "family event", *resp.Reason)
	assert.Nil(t, resp.ApprovedBy)
}

func TestLeaveService_ApplyLeave_SingleDay(t *testing.T) {
	svc, _, empID := newLeaveFixture(t)

	resp := applyLeave(t, svc, empID, leave.TypeSick, "2024-06-10", "2024-06-10")

	assert.Equal(t, 1, resp.Days)
}

func TestLeaveService_ApplyLeave_InvalidDateRange(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)

	_, err := svc.ApplyLeave(ctx, empID, leave.ApplyLeaveRequest{
		Type:      string(leave.TypeSick),
		StartDate: "2024-06-12",
		EndDate:   "2024-06-10",
	})

	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestLeaveService_ApplyLeave_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)

	_, err := svc.ApplyLeave(ctx, empID, leave.ApplyLeaveRequest{
		Type:      "VACATION",
		StartDate: "10/06/2024",
		EndDate:   "2024-06-12",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "start_date")
}

func TestLeaveService_ApplyLeave_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLeaveFixture(t)

	_, err := svc.ApplyLeave(ctx, "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f", leave.ApplyLeaveRequest{
		Type:      string(leave.TypeSick),
		StartDate: "2024-06-10",
		EndDate:   "2024-06-10",
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestLeaveService_ApplyLeave_OverlapPolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  leave.OverlapPolicy
		wantErr error
	}{
		{name: "allow keeps both requests", policy: leave.OverlapAllow},
		{name: "reject refuses the second request", policy: leave.OverlapReject, wantErr: leave.ErrLeaveOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, _, empID := newLeaveFixture(t, WithOverlapPolicy(tt.policy))

			applyLeave(t, svc, empID, leave.TypeCasual, "2024-06-10", "2024-06-14")

			_, err := svc.ApplyLeave(ctx, empID, leave.ApplyLeaveRequest{
				Type:      string(leave.TypeSick),
				StartDate: "2024-06-14",
				EndDate:   "2024-06-15",
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLeaveService_ApplyLeave_RejectPolicyIgnoresClosedRequests(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t, WithOverlapPolicy(leave.OverlapReject))

	first := applyLeave(t, svc, empID, leave.TypeCasual, "2024-06-10", "2024-06-14")
	_, err := svc.SetLeaveStatus(ctx, first.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)

	_, err = svc.ApplyLeave(ctx, empID, leave.ApplyLeaveRequest{
		Type:      string(leave.TypeCasual),
		StartDate: "2024-06-12",
		EndDate:   "2024-06-12",
	})

	assert.NoError(t, err)
}

// ===== STATUS GATE =====

func TestLeaveService_SetLeaveStatus_Approve(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)
	req := applyLeave(t, svc, empID, leave.TypeEarned, "2024-07-01", "2024-07-05")

	resp, err := svc.SetLeaveStatus(ctx, req.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "approved"})

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, hrUserID, *resp.ApprovedBy)
	require.NotNil(t, resp.ApprovedAt)
	assert.Equal(t, "2024-06-03T09:00:00Z", *resp.ApprovedAt)
	assert.Nil(t, resp.RejectedReason)
}

func TestLeaveService_SetLeaveStatus_RejectWithReason(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)
	req := applyLeave(t, svc, empID, leave.TypeEarned, "2024-07-01", "2024-07-05")

	reason := "peak season"
	resp, err := svc.SetLeaveStatus(ctx, req.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "REJECTED", RejectedReason: &reason})

	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), resp.Status)
	require.NotNil(t, resp.RejectedReason)
	assert.Equal(t, "peak season", *resp.RejectedReason)
	require.NotNil(t, resp.ApprovedBy)
}

func TestLeaveService_SetLeaveStatus_OnlyFromPending(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)
	req := applyLeave(t, svc, empID, leave.TypeEarned, "2024-07-01", "2024-07-05")

	_, err := svc.SetLeaveStatus(ctx, req.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)

	_, err = svc.SetLeaveStatus(ctx, req.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "REJECTED"})

	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestLeaveService_SetLeaveStatus_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)
	req := applyLeave(t, svc, empID, leave.TypeEarned, "2024-07-01", "2024-07-05")

	for _, status := range []string{"PENDING", "DONE", ""} {
		_, err := svc.SetLeaveStatus(ctx, req.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: status})
		assert.ErrorIs(t, err, leave.ErrInvalidStatus, status)
	}
}

func TestLeaveService_SetLeaveStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newLeaveFixture(t)

	_, err := svc.SetLeaveStatus(ctx, "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f", hrUserID, leave.UpdateLeaveStatusRequest{Status: "APPROVED"})

	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

// ===== BALANCE =====

func TestLeaveService_GetLeaveBalance(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)

	approved := applyLeave(t, svc, empID, leave.TypeSick, "2024-02-05", "2024-02-07")
	_, err := svc.SetLeaveStatus(ctx, approved.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)

	// Pending and rejected requests do not count
	applyLeave(t, svc, empID, leave.TypeSick, "2024-03-01", "2024-03-01")
	rejected := applyLeave(t, svc, empID, leave.TypeCasual, "2024-04-01", "2024-04-02")
	_, err = svc.SetLeaveStatus(ctx, rejected.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "REJECTED"})
	require.NoError(t, err)

	// Unpaid leave has no allowance and goes negative
	lop := applyLeave(t, svc, empID, leave.TypeLOP, "2024-05-06", "2024-05-07")
	_, err = svc.SetLeaveStatus(ctx, lop.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)

	balance, err := svc.GetLeaveBalance(ctx, empID, 0)

	require.NoError(t, err)
	assert.Equal(t, 2024, balance.Year)
	assert.Equal(t, 5, balance.TotalUsed)
	assert.Equal(t, leave.BalanceEntry{Total: 12, Used: 3, Remaining: 9}, balance.Balances[leave.TypeSick])
	assert.Equal(t, leave.BalanceEntry{Total: 12, Used: 0, Remaining: 12}, balance.Balances[leave.TypeCasual])
	assert.Equal(t, leave.BalanceEntry{Total: 0, Used: 2, Remaining: -2}, balance.Balances[leave.TypeLOP])
	assert.Len(t, balance.Balances, len(leave.Types))
}

func TestLeaveService_GetLeaveBalance_OtherYear(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)

	req := applyLeave(t, svc, empID, leave.TypeSick, "2023-12-28", "2024-01-02")
	_, err := svc.SetLeaveStatus(ctx, req.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)

	current, err := svc.GetLeaveBalance(ctx, empID, 2024)
	require.NoError(t, err)
	assert.Equal(t, 0, current.TotalUsed)

	previous, err := svc.GetLeaveBalance(ctx, empID, 2023)
	require.NoError(t, err)
	assert.Equal(t, 6, previous.Balances[leave.TypeSick].Used)
}

func TestLeaveService_GetLeaveBalance_InvalidYear(t *testing.T) {
	svc, _, empID := newLeaveFixture(t)

	_, err := svc.GetLeaveBalance(context.Background(), empID, 10000)

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

// ===== QUERIES =====

func TestLeaveService_GetLeave_Visibility(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)
	req := applyLeave(t, svc, empID, leave.TypeSick, "2024-06-10", "2024-06-10")

	owner := user.Principal{UserID: "u-owner", EmployeeID: empID, Role: user.RoleEmployee}
	other := user.Principal{UserID: "u-other", EmployeeID: "0c9f3b1e-1111-4a2b-9c3d-4e5f6a7b8c9d", Role: user.RoleEmployee}
	manager := user.Principal{UserID: "u-manager", Role: user.RoleManager}

	_, err := svc.GetLeave(ctx, req.ID, owner)
	assert.NoError(t, err)

	_, err = svc.GetLeave(ctx, req.ID, manager)
	assert.NoError(t, err)

	_, err = svc.GetLeave(ctx, req.ID, other)
	assert.ErrorIs(t, err, user.ErrAccessDenied)
}

func TestLeaveService_ListLeaves_Filters(t *testing.T) {
	ctx := context.Background()
	svc, _, empID := newLeaveFixture(t)

	approved := applyLeave(t, svc, empID, leave.TypeSick, "2024-06-10", "2024-06-10")
	_, err := svc.SetLeaveStatus(ctx, approved.ID, hrUserID, leave.UpdateLeaveStatusRequest{Status: "APPROVED"})
	require.NoError(t, err)
	applyLeave(t, svc, empID, leave.TypeCasual, "2024-06-20", "2024-06-21")

	status := "pending"
	resp, err := svc.ListLeaves(ctx, leave.LeaveFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, string(leave.TypeCasual), resp.Leaves[0].Type)

	leaveType := "SICK_LEAVE"
	resp, err = svc.GetMyLeaves(ctx, empID, leave.LeaveFilter{Type: &leaveType})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	assert.Equal(t, 10, resp.Limit)

	bad := "UNKNOWN"
	_, err = svc.ListLeaves(ctx, leave.LeaveFilter{Status: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
