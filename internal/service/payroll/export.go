package payroll

import (
	"context"
	"fmt"
	"io"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payroll"

var exportHeader = []interface{}{
	"Employee Code", "Employee Name", "Designation", "Month", "Year",
	"Base Salary", "Allowances", "Deductions", "Tax", "Net Salary", "Status",
}

// ExportPayrolls implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportPayrolls(ctx context.Context, month, year int, w io.Writer) error {
	month, year = s.resolvePeriod(month, year)
	req := payroll.GeneratePayrollRequest{PeriodMonth: month, PeriodYear: year}
	if err := req.Validate(); err != nil {
		return err
	}

	records, err := s.allRecords(ctx, month, year)
	if err != nil {
		return err
	}
	summary, err := s.payrollRepo.GetPayrollSummary(ctx, month, year)
	if err != nil {
		return fmt.Errorf("failed to summarize payroll: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "K1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	row := 2
	for _, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			deref(r.EmployeeCode), deref(r.EmployeeName), deref(r.Designation),
			r.PeriodMonth, r.PeriodYear,
			r.BaseSalary.InexactFloat64(), r.Allowances.InexactFloat64(), r.Deductions.InexactFloat64(),
			r.Tax.InexactFloat64(), r.NetSalary.InexactFloat64(), string(r.Status),
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	totalCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	totals := []interface{}{
		"TOTAL", "", "", month, year,
		summary.TotalBaseSalary.InexactFloat64(), summary.TotalAllowances.InexactFloat64(),
		summary.TotalDeductions.InexactFloat64(), summary.TotalTax.InexactFloat64(),
		summary.TotalNetSalary.InexactFloat64(), "",
	}
	if err := f.SetSheetRow(exportSheet, totalCell, &totals); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(exportHeader), row)
	if err := f.SetCellStyle(exportSheet, totalCell, lastCell, bold); err != nil {
		return fmt.Errorf("failed to style totals: %w", err)
	}

	if err := f.SetColWidth(exportSheet, "A", "K", 18); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	return f.Write(w)
}

// allRecords pages through the whole period.
func (s *PayrollServiceImpl) allRecords(ctx context.Context, month, year int) ([]payroll.PayrollRecord, error) {
	filter := payroll.PayrollFilter{PeriodMonth: &month, PeriodYear: &year}
	filter.Page = 1
	filter.Limit = pagination.MaxLimit

	var all []payroll.PayrollRecord
	for {
		records, total, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list payrolls: %w", err)
		}
		all = append(all, records...)
		if int64(len(all)) >= total || len(records) == 0 {
			return all, nil
		}
		filter.Page++
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
