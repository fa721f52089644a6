package leave

import (
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
)

type LeaveServiceImpl struct {
	leaveRepo     leave.LeaveRequestRepository
	employeeRepo  employee.EmployeeRepository
	clock         clock.Clock
	location      *time.Location
	overlapPolicy leave.OverlapPolicy
}

type Option func(*LeaveServiceImpl)

// WithOverlapPolicy sets how overlapping requests are treated. Default is leave.OverlapAllow.
func WithOverlapPolicy(p leave.OverlapPolicy) Option {
	return func(s *LeaveServiceImpl) {
		s.overlapPolicy = p
	}
}

// WithLocation sets the timezone used to decide the current year.
func WithLocation(loc *time.Location) Option {
	return func(s *LeaveServiceImpl) {
		if loc != nil {
			s.location = loc
		}
	}
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	opts ...Option,
) leave.LeaveService {
	s := &LeaveServiceImpl{
		leaveRepo:     leaveRepo,
		employeeRepo:  employeeRepo,
		clock:         clk,
		location:      time.UTC,
		overlapPolicy: leave.OverlapAllow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
