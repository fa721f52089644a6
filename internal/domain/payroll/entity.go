package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending   PayrollStatus = "PENDING"
	PayrollStatusProcessed PayrollStatus = "PROCESSED"
	PayrollStatusPaid      PayrollStatus = "PAID"
)

func (s PayrollStatus) IsValid() bool {
	switch s {
	case PayrollStatusPending, PayrollStatusProcessed, PayrollStatusPaid:
		return true
	}
	return false
}

// PayrollRecord is the payroll of one employee for one period.
// (EmployeeID, PeriodMonth, PeriodYear) is unique.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	BaseSalary  decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	Tax         decimal.Decimal
	NetSalary   decimal.Decimal
	Status      PayrollStatus
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
	Designation  *string
}

// Recompute sets NetSalary from the current money fields.
func (r *PayrollRecord) Recompute() {
	r.NetSalary = ComputeNetSalary(r.BaseSalary, r.Allowances, r.Deductions, r.Tax)
}

// PayrollSummary aggregates one period.
type PayrollSummary struct {
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	TotalRecords    int64           `json:"total_records"`
	TotalBaseSalary decimal.Decimal `json:"total_base_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalTax        decimal.Decimal `json:"total_tax"`
	TotalNetSalary  decimal.Decimal `json:"total_net_salary"`
}
