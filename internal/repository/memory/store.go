// Package memory provides mutex-guarded in-memory repositories. They honour the same
// uniqueness and conditional-update contracts as the PostgreSQL repositories and back the
// service tests.
package memory

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/review"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
)

// Store holds every table. Repositories created from the same Store see each other's rows,
// which lets list queries join employee names the way SQL does.
type Store struct {
	mu    sync.Mutex
	clock clock.Clock

	employees   map[string]employee.Employee
	attendances map[string]attendance.Attendance
	leaves      map[string]leave.LeaveRequest
	payrolls    map[string]payroll.PayrollRecord
	reviews     map[string]review.Review
	documents   map[string]document.Document
}

func NewStore(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.New()
	}
	return &Store{
		clock:       clk,
		employees:   make(map[string]employee.Employee),
		attendances: make(map[string]attendance.Attendance),
		leaves:      make(map[string]leave.LeaveRequest),
		payrolls:    make(map[string]payroll.PayrollRecord),
		reviews:     make(map[string]review.Review),
		documents:   make(map[string]document.Document),
	}
}

func (s *Store) Employees() *EmployeeRepository     { return &EmployeeRepository{s} }
func (s *Store) Attendances() *AttendanceRepository { return &AttendanceRepository{s} }
func (s *Store) Leaves() *LeaveRepository           { return &LeaveRepository{s} }
func (s *Store) Payrolls() *PayrollRepository       { return &PayrollRepository{s} }
func (s *Store) Reviews() *ReviewRepository         { return &ReviewRepository{s} }
func (s *Store) Documents() *DocumentRepository     { return &DocumentRepository{s} }
func (s *Store) Dashboard() *DashboardRepository    { return &DashboardRepository{s} }

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

// employeeJoin returns name, code and designation of the employee. Caller holds mu.
func (s *Store) employeeJoin(id string) (*string, *string, *string) {
	e, ok := s.employees[id]
	if !ok {
		return nil, nil, nil
	}
	name, code := e.FullName(), e.EmployeeCode
	return &name, &code, e.Designation
}

// paginate applies the offset window of p. A zero limit returns everything.
func paginate[T any](items []T, p pagination.Params) []T {
	if p.Limit <= 0 {
		return items
	}
	offset := p.Offset()
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
