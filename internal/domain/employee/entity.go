package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID            string
	UserID        *string
	EmployeeCode  string
	FirstName     string
	LastName      string
	Email         string
	Phone         *string
	DateOfBirth   *time.Time
	Address       *string
	City          *string
	State         *string
	ZipCode       *string
	Country       *string
	Department    *string
	Designation   *string
	Salary        *decimal.Decimal
	ManagerID     *string
	DateOfJoining time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	ManagerName *string
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// BaseSalary returns the configured salary, or zero when none is set.
func (e Employee) BaseSalary() decimal.Decimal {
	if e.Salary == nil {
		return decimal.Zero
	}
	return *e.Salary
}

// DepartmentCount is one row of the headcount breakdown.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}
