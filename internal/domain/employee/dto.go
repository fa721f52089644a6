package employee

import (
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	UserID        *string          `json:"user_id,omitempty" validate:"omitempty,uuid"`
	EmployeeCode  *string          `json:"employee_code,omitempty" validate:"omitempty,max=50"`
	FirstName     string           `json:"first_name" validate:"required,max=100"`
	LastName      string           `json:"last_name" validate:"required,max=100"`
	Email         string           `json:"email" validate:"required,email"`
	Phone         *string          `json:"phone,omitempty" validate:"omitempty,max=30"`
	DateOfBirth   *string          `json:"date_of_birth,omitempty"`
	Address       *string          `json:"address,omitempty"`
	City          *string          `json:"city,omitempty"`
	State         *string          `json:"state,omitempty"`
	ZipCode       *string          `json:"zip_code,omitempty"`
	Country       *string          `json:"country,omitempty"`
	Department    *string          `json:"department,omitempty" validate:"omitempty,max=100"`
	Designation   *string          `json:"designation,omitempty" validate:"omitempty,max=100"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	ManagerID     *string          `json:"manager_id,omitempty" validate:"omitempty,uuid"`
	DateOfJoining *string          `json:"date_of_joining,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs, err := errs.Merge(validator.Struct(r))
	if err != nil {
		return err
	}

	errs = append(errs, validateOptionalDate("date_of_birth", r.DateOfBirth)...)
	errs = append(errs, validateOptionalDate("date_of_joining", r.DateOfJoining)...)

	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateEmployeeRequest lists every field an administrator may change.
// Nil fields are left untouched.
type UpdateEmployeeRequest struct {
	FirstName   *string          `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName    *string          `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone       *string          `json:"phone,omitempty" validate:"omitempty,max=30"`
	DateOfBirth *string          `json:"date_of_birth,omitempty"`
	Address     *string          `json:"address,omitempty"`
	City        *string          `json:"city,omitempty"`
	State       *string          `json:"state,omitempty"`
	ZipCode     *string          `json:"zip_code,omitempty"`
	Country     *string          `json:"country,omitempty"`
	Department  *string          `json:"department,omitempty" validate:"omitempty,max=100"`
	Designation *string          `json:"designation,omitempty" validate:"omitempty,max=100"`
	Salary      *decimal.Decimal `json:"salary,omitempty"`
	ManagerID   *string          `json:"manager_id,omitempty" validate:"omitempty,uuid"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs, err := errs.Merge(validator.Struct(r))
	if err != nil {
		return err
	}

	errs = append(errs, validateOptionalDate("date_of_birth", r.DateOfBirth)...)

	if r.Salary != nil && r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeFilter struct {
	pagination.Params
	Search     *string `json:"search,omitempty"`
	Department *string `json:"department,omitempty"`
}

func (f *EmployeeFilter) Validate() error {
	errs := f.Params.Normalize(10)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID            string           `json:"id"`
	UserID        *string          `json:"user_id,omitempty"`
	EmployeeCode  string           `json:"employee_code"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	FullName      string           `json:"full_name"`
	Email         string           `json:"email"`
	Phone         *string          `json:"phone,omitempty"`
	DateOfBirth   *string          `json:"date_of_birth,omitempty"`
	Address       *string          `json:"address,omitempty"`
	City          *string          `json:"city,omitempty"`
	State         *string          `json:"state,omitempty"`
	ZipCode       *string          `json:"zip_code,omitempty"`
	Country       *string          `json:"country,omitempty"`
	Department    *string          `json:"department,omitempty"`
	Designation   *string          `json:"designation,omitempty"`
	Salary        *decimal.Decimal `json:"salary,omitempty"`
	ManagerID     *string          `json:"manager_id,omitempty"`
	ManagerName   *string          `json:"manager_name,omitempty"`
	DateOfJoining string           `json:"date_of_joining"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

type ListEmployeeResponse struct {
	pagination.Meta
	Employees []EmployeeResponse `json:"employees"`
}

func validateOptionalDate(field string, value *string) validator.ValidationErrors {
	if value == nil || *value == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(*value); !ok {
		return validator.ValidationErrors{{
			Field:   field,
			Message: field + " must be in YYYY-MM-DD format",
		}}
	}
	return nil
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	var dob *string
	if e.DateOfBirth != nil {
		s := e.DateOfBirth.Format("2006-01-02")
		dob = &s
	}

	return EmployeeResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		EmployeeCode:  e.EmployeeCode,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		FullName:      e.FullName(),
		Email:         e.Email,
		Phone:         e.Phone,
		DateOfBirth:   dob,
		Address:       e.Address,
		City:          e.City,
		State:         e.State,
		ZipCode:       e.ZipCode,
		Country:       e.Country,
		Department:    e.Department,
		Designation:   e.Designation,
		Salary:        e.Salary,
		ManagerID:     e.ManagerID,
		ManagerName:   e.ManagerName,
		DateOfJoining: e.DateOfJoining.Format("2006-01-02"),
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     e.UpdatedAt.Format(time.RFC3339),
	}
}
