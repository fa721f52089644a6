package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll already exists for this month")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
)
