package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
	location     *time.Location
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	loc *time.Location,
) payroll.PayrollService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		clock:        clk,
		location:     loc,
	}
}

// ========== RECORDS ==========

// CreatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayroll(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	exists, err := s.payrollRepo.ExistsForPeriod(ctx, req.EmployeeID, req.PeriodMonth, req.PeriodYear)
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to check existing payroll: %w", err)
	}
	if exists {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyExists
	}

	record := payroll.PayrollRecord{
		EmployeeID:  req.EmployeeID,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		BaseSalary:  *req.BaseSalary,
		Allowances:  orZero(req.Allowances),
		Deductions:  orZero(req.Deductions),
		Tax:         orZero(req.Tax),
		Status:      payroll.PayrollStatusPending,
		Notes:       req.Notes,
	}
	record.Recompute()

	// A concurrent create for the same period is rejected by the unique constraint.
	created, err := s.payrollRepo.CreatePayrollRecord(ctx, record)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	withEmployee(&created, emp)

	return payroll.NewPayrollRecordResponse(created), nil
}

// GeneratePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.GeneratePayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.GeneratePayrollResponse{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to load active employees: %w", err)
	}

	result := payroll.GeneratePayrollResponse{
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Payrolls:    make([]payroll.PayrollRecordResponse, 0),
	}

	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			return payroll.GeneratePayrollResponse{}, err
		}

		exists, err := s.payrollRepo.ExistsForPeriod(ctx, emp.ID, req.PeriodMonth, req.PeriodYear)
		if err != nil {
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to check payroll of employee %s: %w", emp.ID, err)
		}
		if exists {
			result.Skipped++
			continue
		}

		base := emp.BaseSalary().Round(payroll.MoneyScale)
		record := payroll.PayrollRecord{
			EmployeeID:  emp.ID,
			PeriodMonth: req.PeriodMonth,
			PeriodYear:  req.PeriodYear,
			BaseSalary:  base,
			Allowances:  decimal.Zero,
			Deductions:  decimal.Zero,
			Tax:         payroll.ComputeTax(base),
			Status:      payroll.PayrollStatusPending,
		}
		record.Recompute()

		created, err := s.payrollRepo.CreatePayrollRecord(ctx, record)
		if err != nil {
			if errors.Is(err, payroll.ErrPayrollRecordAlreadyExists) {
				// Lost the race to a concurrent run.
				result.Skipped++
				continue
			}
			return payroll.GeneratePayrollResponse{}, fmt.Errorf("failed to create payroll of employee %s: %w", emp.ID, err)
		}
		withEmployee(&created, emp)

		result.Payrolls = append(result.Payrolls, payroll.NewPayrollRecordResponse(created))
	}

	result.Generated = len(result.Payrolls)
	slog.Info("payroll generated",
		"month", req.PeriodMonth,
		"year", req.PeriodYear,
		"generated", result.Generated,
		"skipped", result.Skipped,
	)

	return result, nil
}

// UpdatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdatePayroll(ctx context.Context, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	existing, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	updated, err := s.payrollRepo.UpdatePayrollRecord(ctx, req.Apply(existing))
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return payroll.NewPayrollRecordResponse(updated), nil
}

// GetPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string, caller user.Principal) (payroll.PayrollRecordResponse, error) {
	record, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	if !caller.IsAdminOrHR() && record.EmployeeID != caller.EmployeeID {
		return payroll.PayrollRecordResponse{}, user.ErrAccessDenied
	}

	return payroll.NewPayrollRecordResponse(record), nil
}

// ListPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollResponse{}, err
	}

	records, total, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	return payroll.ListPayrollResponse{
		Meta:     pagination.NewMeta(filter.Params, total),
		Payrolls: mapToRecordResponses(records),
	}, nil
}

// GetMyPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetMyPayrolls(ctx context.Context, employeeID string, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	filter.EmployeeID = &employeeID
	if filter.Limit == 0 {
		filter.Limit = 12
	}
	return s.ListPayrolls(ctx, filter)
}

// CurrentPeriod implements payroll.PayrollService.
func (s *PayrollServiceImpl) CurrentPeriod() (int, int) {
	now := s.clock.Now().In(s.location)
	return int(now.Month()), now.Year()
}

// resolvePeriod falls back to the current period when neither month nor year is given.
func (s *PayrollServiceImpl) resolvePeriod(month, year int) (int, int) {
	if month == 0 && year == 0 {
		return s.CurrentPeriod()
	}
	return month, year
}

// GetPayrollSummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummary, error) {
	month, year = s.resolvePeriod(month, year)
	req := payroll.GeneratePayrollRequest{PeriodMonth: month, PeriodYear: year}
	if err := req.Validate(); err != nil {
		return payroll.PayrollSummary{}, err
	}
	return s.payrollRepo.GetPayrollSummary(ctx, month, year)
}

// ========== HELPERS ==========

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func withEmployee(r *payroll.PayrollRecord, emp employee.Employee) {
	name := emp.FullName()
	code := emp.EmployeeCode
	r.EmployeeName = &name
	r.EmployeeCode = &code
	r.Designation = emp.Designation
}

func mapToRecordResponses(records []payroll.PayrollRecord) []payroll.PayrollRecordResponse {
	responses := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.NewPayrollRecordResponse(r))
	}
	return responses
}
