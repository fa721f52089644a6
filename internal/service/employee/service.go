package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, clk clock.Clock) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		clock:        clk,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}

	return employee.ListEmployeeResponse{
		Meta:      pagination.NewMeta(filter.Params, total),
		Employees: responses,
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	now := s.clock.Now()

	code := fmt.Sprintf("EMP%d", now.UnixMilli())
	if req.EmployeeCode != nil && strings.TrimSpace(*req.EmployeeCode) != "" {
		code = strings.TrimSpace(*req.EmployeeCode)
	}

	joined := clock.DateOf(now, time.UTC)
	if req.DateOfJoining != nil && *req.DateOfJoining != "" {
		joined, _ = time.Parse("2006-01-02", *req.DateOfJoining)
	}

	if req.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}

	newEmployee := employee.Employee{
		UserID:        req.UserID,
		EmployeeCode:  code,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		DateOfBirth:   parseOptionalDate(req.DateOfBirth),
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Country:       req.Country,
		Department:    req.Department,
		Designation:   req.Designation,
		Salary:        req.Salary,
		ManagerID:     req.ManagerID,
		DateOfJoining: joined,
		IsActive:      true,
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.ManagerID != nil {
		if *req.ManagerID == id {
			return employee.EmployeeResponse{}, employee.ErrCannotManageSelf
		}
		if _, err := s.employeeRepo.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, err
		}
		existing.ManagerID = req.ManagerID
	}

	if req.FirstName != nil {
		existing.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		existing.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.DateOfBirth != nil {
		existing.DateOfBirth = parseOptionalDate(req.DateOfBirth)
	}
	if req.Address != nil {
		existing.Address = req.Address
	}
	if req.City != nil {
		existing.City = req.City
	}
	if req.State != nil {
		existing.State = req.State
	}
	if req.ZipCode != nil {
		existing.ZipCode = req.ZipCode
	}
	if req.Country != nil {
		existing.Country = req.Country
	}
	if req.Department != nil {
		existing.Department = req.Department
	}
	if req.Designation != nil {
		existing.Designation = req.Designation
	}
	if req.Salary != nil {
		existing.Salary = req.Salary
	}

	updated, err := s.employeeRepo.Update(ctx, existing)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.IsActive {
		return employee.ErrEmployeeAlreadyInactive
	}

	if err := s.employeeRepo.Deactivate(ctx, id); err != nil {
		return err
	}

	slog.Info("employee deactivated", "employee_id", id)
	return nil
}

// ListByDepartment implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListByDepartment(ctx context.Context, department string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list department employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0)
	for _, e := range employees {
		if e.Department != nil && *e.Department == department {
			responses = append(responses, employee.NewEmployeeResponse(e))
		}
	}
	return responses, nil
}

func parseOptionalDate(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil
	}
	return &t
}
