package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{name: "same day", start: "2024-06-10", end: "2024-06-10", want: 1},
		{name: "inclusive range", start: "2024-06-10", end: "2024-06-14", want: 5},
		{name: "across leap day", start: "2024-02-28", end: "2024-03-01", want: 3},
		{name: "across year end", start: "2023-12-30", end: "2024-01-02", want: 4},
		{name: "reversed order", start: "2024-06-14", end: "2024-06-10", want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDays(date(tt.start), date(tt.end)))
		})
	}
}

func TestComputeDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, 6, 10, 23, 30, 0, 0, time.UTC)
	end := time.Date(2024, 6, 11, 0, 15, 0, 0, time.UTC)

	assert.Equal(t, 2, ComputeDays(start, end))
}

func TestComputeBalance(t *testing.T) {
	requests := []LeaveRequest{
		{Type: TypeSick, Status: StatusApproved, StartDate: date("2024-01-10"), Days: 2},
		{Type: TypeSick, Status: StatusApproved, StartDate: date("2024-11-03"), Days: 1},
		{Type: TypeSick, Status: StatusPending, StartDate: date("2024-02-01"), Days: 4},
		{Type: TypeCasual, Status: StatusRejected, StartDate: date("2024-03-01"), Days: 2},
		{Type: TypeEarned, Status: StatusApproved, StartDate: date("2023-12-30"), Days: 4},
		{Type: TypeCompOff, Status: StatusApproved, StartDate: date("2024-05-05"), Days: 1},
	}

	balance := ComputeBalance(2024, requests)

	assert.Equal(t, 2024, balance.Year)
	assert.Equal(t, 4, balance.TotalUsed)
	assert.Equal(t, BalanceEntry{Total: 12, Used: 3, Remaining: 9}, balance.Balances[TypeSick])
	assert.Equal(t, BalanceEntry{Total: 12, Used: 0, Remaining: 12}, balance.Balances[TypeCasual])
	assert.Equal(t, BalanceEntry{Total: 15, Used: 0, Remaining: 15}, balance.Balances[TypeEarned])
	assert.Equal(t, BalanceEntry{Total: 0, Used: 1, Remaining: -1}, balance.Balances[TypeCompOff])
	assert.Equal(t, BalanceEntry{Total: 26, Used: 0, Remaining: 26}, balance.Balances[TypeMaternity])
}

func TestComputeBalance_NoRequests(t *testing.T) {
	balance := ComputeBalance(2025, nil)

	assert.Equal(t, 0, balance.TotalUsed)
	assert.Len(t, balance.Balances, len(Types))
	for _, lt := range Types {
		entry := balance.Balances[lt]
		assert.Equal(t, Allowances[lt], entry.Total, lt)
		assert.Equal(t, entry.Total, entry.Remaining, lt)
	}
}

func TestLeaveRequest_Overlaps(t *testing.T) {
	req := LeaveRequest{StartDate: date("2024-06-10"), EndDate: date("2024-06-14")}

	assert.True(t, req.Overlaps(date("2024-06-14"), date("2024-06-20")))
	assert.True(t, req.Overlaps(date("2024-06-01"), date("2024-06-10")))
	assert.True(t, req.Overlaps(date("2024-06-11"), date("2024-06-12")))
	assert.False(t, req.Overlaps(date("2024-06-15"), date("2024-06-20")))
	assert.False(t, req.Overlaps(date("2024-06-01"), date("2024-06-09")))
}

func TestUpdateLeaveStatusRequest_Validate(t *testing.T) {
	for _, status := range []string{"approved", "REJECTED", "Cancelled"} {
		req := UpdateLeaveStatusRequest{Status: status}
		assert.NoError(t, req.Validate(), status)
	}

	for _, status := range []string{"PENDING", "", "archived"} {
		req := UpdateLeaveStatusRequest{Status: status}
		assert.ErrorIs(t, req.Validate(), ErrInvalidStatus, status)
	}
}
