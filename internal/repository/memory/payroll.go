package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PayrollRepository struct {
	s *Store
}

var _ payroll.PayrollRepository = (*PayrollRepository)(nil)

func (r *PayrollRepository) CreatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.existsLocked(record.EmployeeID, record.PeriodMonth, record.PeriodYear) {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyExists
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := r.s.now()
	record.CreatedAt, record.UpdatedAt = now, now
	r.s.payrolls[record.ID] = record
	return r.join(record), nil
}

func (r *PayrollRepository) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record, ok := r.s.payrolls[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.join(record), nil
}

func (r *PayrollRepository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.existsLocked(employeeID, month, year), nil
}

func (r *PayrollRepository) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]payroll.PayrollRecord, 0)
	for _, p := range r.s.payrolls {
		if filter.EmployeeID != nil && p.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.PeriodMonth != nil && p.PeriodMonth != *filter.PeriodMonth {
			continue
		}
		if filter.PeriodYear != nil && p.PeriodYear != *filter.PeriodYear {
			continue
		}
		if filter.Status != nil && string(p.Status) != *filter.Status {
			continue
		}
		matched = append(matched, r.join(p))
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.PeriodYear != b.PeriodYear {
			return a.PeriodYear > b.PeriodYear
		}
		if a.PeriodMonth != b.PeriodMonth {
			return a.PeriodMonth > b.PeriodMonth
		}
		return a.EmployeeID < b.EmployeeID
	})

	return paginate(matched, filter.Params), int64(len(matched)), nil
}

func (r *PayrollRepository) UpdatePayrollRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.payrolls[record.ID]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}

	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = r.s.now()
	r.s.payrolls[record.ID] = record
	return r.join(record), nil
}

func (r *PayrollRepository) GetPayrollSummary(ctx context.Context, month, year int) (payroll.PayrollSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	summary := payroll.PayrollSummary{
		PeriodMonth:     month,
		PeriodYear:      year,
		TotalBaseSalary: decimal.Zero,
		TotalAllowances: decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalTax:        decimal.Zero,
		TotalNetSalary:  decimal.Zero,
	}
	for _, p := range r.s.payrolls {
		if p.PeriodMonth != month || p.PeriodYear != year {
			continue
		}
		summary.TotalRecords++
		summary.TotalBaseSalary = summary.TotalBaseSalary.Add(p.BaseSalary)
		summary.TotalAllowances = summary.TotalAllowances.Add(p.Allowances)
		summary.TotalDeductions = summary.TotalDeductions.Add(p.Deductions)
		summary.TotalTax = summary.TotalTax.Add(p.Tax)
		summary.TotalNetSalary = summary.TotalNetSalary.Add(p.NetSalary)
	}
	return summary, nil
}

// existsLocked mirrors uk_payroll_employee_period. Caller holds mu.
func (r *PayrollRepository) existsLocked(employeeID string, month, year int) bool {
	for _, p := range r.s.payrolls {
		if p.EmployeeID == employeeID && p.PeriodMonth == month && p.PeriodYear == year {
			return true
		}
	}
	return false
}

func (r *PayrollRepository) join(p payroll.PayrollRecord) payroll.PayrollRecord {
	p.EmployeeName, p.EmployeeCode, p.Designation = r.s.employeeJoin(p.EmployeeID)
	return p
}
