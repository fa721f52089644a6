package payroll

import "context"

// PayrollRepository defines data access methods for payroll.
type PayrollRepository interface {
	// CreatePayrollRecord returns ErrPayrollRecordAlreadyExists when the period is taken.
	CreatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)

	// ExistsForPeriod reports whether the employee already has a record for the period.
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)

	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	UpdatePayrollRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	// Aggregations
	GetPayrollSummary(ctx context.Context, month, year int) (PayrollSummary, error)
}
