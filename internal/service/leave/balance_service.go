package leave

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
)

// GetLeaveBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveBalance(ctx context.Context, employeeID string, year int) (leave.Balance, error) {
	if year == 0 {
		year = s.clock.Now().In(s.location).Year()
	}
	if year < 1900 || year > 9999 {
		return leave.Balance{}, validator.ValidationErrors{{
			Field:   "year",
			Message: "year must be between 1900 and 9999",
		}}
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.Balance{}, err
	}

	from, to := leave.YearRange(year)
	approved, err := s.leaveRepo.ListApproved(ctx, employeeID, from, to)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to load approved leaves: %w", err)
	}

	return leave.ComputeBalance(year, approved), nil
}
