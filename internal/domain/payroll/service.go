package payroll

import (
	"context"
	"io"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
)

type PayrollService interface {
	// CreatePayroll creates one record; fails when the period already has one
	CreatePayroll(ctx context.Context, req CreatePayrollRequest) (PayrollRecordResponse, error)

	// GeneratePayroll creates records for every active employee that has none for the period
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)

	// UpdatePayroll applies the explicit update fields and recomputes the net salary
	UpdatePayroll(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollRecordResponse, error)

	// GetPayroll returns a record visible to the caller: their own, or any for admin/hr
	GetPayroll(ctx context.Context, id string, caller user.Principal) (PayrollRecordResponse, error)

	ListPayrolls(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)
	GetMyPayrolls(ctx context.Context, employeeID string, filter PayrollFilter) (ListPayrollResponse, error)

	// GetPayrollSummary totals a period; month and year both zero mean the current period
	GetPayrollSummary(ctx context.Context, month, year int) (PayrollSummary, error)

	// ExportPayrolls writes the period as an XLSX workbook to w; zero month and year mean the current period
	ExportPayrolls(ctx context.Context, month, year int, w io.Writer) error

	// CurrentPeriod returns the month and year of now in the configured timezone
	CurrentPeriod() (month, year int)
}
