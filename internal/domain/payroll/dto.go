package payroll

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePayrollRequest struct {
	EmployeeID  string           `json:"employee_id" validate:"required,uuid"`
	PeriodMonth int              `json:"month" validate:"min=1,max=12"`
	PeriodYear  int              `json:"year" validate:"min=1900,max=9999"`
	BaseSalary  *decimal.Decimal `json:"base_salary"`
	Allowances  *decimal.Decimal `json:"allowances,omitempty"`
	Deductions  *decimal.Decimal `json:"deductions,omitempty"`
	Tax         *decimal.Decimal `json:"tax,omitempty"`
	Notes       *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *CreatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	errs, err := errs.Merge(validator.Struct(r))
	if err != nil {
		return err
	}

	if r.BaseSalary == nil {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary is required"})
	}
	errs = append(errs, validateMoney("base_salary", r.BaseSalary)...)
	errs = append(errs, validateMoney("allowances", r.Allowances)...)
	errs = append(errs, validateMoney("deductions", r.Deductions)...)
	errs = append(errs, validateMoney("tax", r.Tax)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GeneratePayrollRequest struct {
	PeriodMonth int `json:"month" validate:"min=1,max=12"`
	PeriodYear  int `json:"year" validate:"min=1900,max=9999"`
}

func (r *GeneratePayrollRequest) Validate() error {
	return validator.Struct(r)
}

// UpdatePayrollRequest holds the fields that may change after creation.
// Any money field triggers a net salary recomputation.
type UpdatePayrollRequest struct {
	BaseSalary *decimal.Decimal `json:"base_salary,omitempty"`
	Allowances *decimal.Decimal `json:"allowances,omitempty"`
	Deductions *decimal.Decimal `json:"deductions,omitempty"`
	Tax        *decimal.Decimal `json:"tax,omitempty"`
	Status     *string          `json:"status,omitempty"`
	Notes      *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	errs, err := errs.Merge(validator.Struct(r))
	if err != nil {
		return err
	}

	errs = append(errs, validateMoney("base_salary", r.BaseSalary)...)
	errs = append(errs, validateMoney("allowances", r.Allowances)...)
	errs = append(errs, validateMoney("deductions", r.Deductions)...)
	errs = append(errs, validateMoney("tax", r.Tax)...)

	if r.Status != nil {
		status := PayrollStatus(strings.ToUpper(*r.Status))
		if !status.IsValid() {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PENDING, PROCESSED, PAID",
			})
		} else {
			s := string(status)
			r.Status = &s
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the request over record and recomputes NetSalary when a money field is present.
func (r *UpdatePayrollRequest) Apply(record PayrollRecord) PayrollRecord {
	moneyChanged := false

	if r.BaseSalary != nil {
		record.BaseSalary = *r.BaseSalary
		moneyChanged = true
	}
	if r.Allowances != nil {
		record.Allowances = *r.Allowances
		moneyChanged = true
	}
	if r.Deductions != nil {
		record.Deductions = *r.Deductions
		moneyChanged = true
	}
	if r.Tax != nil {
		record.Tax = *r.Tax
		moneyChanged = true
	}
	if r.Status != nil {
		record.Status = PayrollStatus(*r.Status)
	}
	if r.Notes != nil {
		record.Notes = r.Notes
	}

	if moneyChanged {
		record.Recompute()
	}
	return record
}

type PayrollRecordResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	EmployeeCode *string         `json:"employee_code,omitempty"`
	Designation  *string         `json:"designation,omitempty"`
	PeriodMonth  int             `json:"month"`
	PeriodYear   int             `json:"year"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Allowances   decimal.Decimal `json:"allowances"`
	Deductions   decimal.Decimal `json:"deductions"`
	Tax          decimal.Decimal `json:"tax"`
	NetSalary    decimal.Decimal `json:"net_salary"`
	Status       string          `json:"status"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type GeneratePayrollResponse struct {
	PeriodMonth int                     `json:"month"`
	PeriodYear  int                     `json:"year"`
	Generated   int                     `json:"generated"`
	Skipped     int                     `json:"skipped"`
	Payrolls    []PayrollRecordResponse `json:"payrolls"`
}

type PayrollFilter struct {
	pagination.Params

	EmployeeID  *string `json:"employee_id,omitempty"`
	PeriodMonth *int    `json:"month,omitempty"`
	PeriodYear  *int    `json:"year,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (f *PayrollFilter) Validate() error {
	errs := f.Params.Normalize(10)

	if f.PeriodMonth != nil && (*f.PeriodMonth < 1 || *f.PeriodMonth > 12) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if f.PeriodYear != nil && (*f.PeriodYear < 1900 || *f.PeriodYear > 9999) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 1900 and 9999"})
	}
	if f.Status != nil {
		status := PayrollStatus(strings.ToUpper(*f.Status))
		if !status.IsValid() {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: PENDING, PROCESSED, PAID"})
		} else {
			s := string(status)
			f.Status = &s
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListPayrollResponse struct {
	pagination.Meta
	Payrolls []PayrollRecordResponse `json:"payrolls"`
}

func NewPayrollRecordResponse(r PayrollRecord) PayrollRecordResponse {
	return PayrollRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		EmployeeCode: r.EmployeeCode,
		Designation:  r.Designation,
		PeriodMonth:  r.PeriodMonth,
		PeriodYear:   r.PeriodYear,
		BaseSalary:   r.BaseSalary,
		Allowances:   r.Allowances,
		Deductions:   r.Deductions,
		Tax:          r.Tax,
		NetSalary:    r.NetSalary,
		Status:       string(r.Status),
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}
