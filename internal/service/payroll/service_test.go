package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func seedEmployee(t *testing.T, store *memory.Store, code, first string, salary *decimal.Decimal, active bool) employee.Employee {
	t.Helper()
	emp, err := store.Employees().Create(context.Background(), employee.Employee{
		EmployeeCode:  code,
		FirstName:     first,
		LastName:      "Test",
		Email:         code + "@example.com",
		Salary:        salary,
		DateOfJoining: time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC),
		IsActive:      active,
	})
	require.NoError(t, err)
	return emp
}

func newPayrollFixture(t *testing.T) (payroll.PayrollService, *memory.Store) {
	t.Helper()
	clk := &clock.Fixed{T: time.Date(2024, 3, 28, 10, 0, 0, 0, time.UTC)}
	store := memory.NewStore(clk)
	return NewPayrollService(store.Payrolls(), store.Employees(), clk, time.UTC), store
}

// ===== CREATE =====

func TestPayrollService_CreatePayroll_Success(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	emp := seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)

	resp, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID:  emp.ID,
		PeriodMonth: 3,
		PeriodYear:  2024,
		BaseSalary:  dec("5000"),
		Allowances:  dec("200"),
		Deductions:  dec("100"),
		Tax:         dec("300"),
	})

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4800").Equal(resp.NetSalary), resp.NetSalary.String())
	assert.Equal(t, string(payroll.PayrollStatusPending), resp.Status)
	require.NotNil(t, resp.EmployeeCode)
	assert.Equal(t, "EMP001", *resp.EmployeeCode)
}

func TestPayrollService_CreatePayroll_DefaultsMissingAmountsToZero(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	emp := seedEmployee(t, store, "EMP001", "Citra", nil, true)

	resp, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID:  emp.ID,
		PeriodMonth: 3,
		PeriodYear:  2024,
		BaseSalary:  dec("3000"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Tax.IsZero())
	assert.True(t, decimal.RequireFromString("3000").Equal(resp.NetSalary))
}

func TestPayrollService_CreatePayroll_DuplicatePeriod(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	emp := seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)

	req := payroll.CreatePayrollRequest{EmployeeID: emp.ID, PeriodMonth: 3, PeriodYear: 2024, BaseSalary: dec("5000")}
	_, err := svc.CreatePayroll(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreatePayroll(ctx, req)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyExists)

	// A different month is a different period
	req.PeriodMonth = 4
	_, err = svc.CreatePayroll(ctx, req)
	assert.NoError(t, err)
}

func TestPayrollService_CreatePayroll_UnknownEmployee(t *testing.T) {
	svc, _ := newPayrollFixture(t)

	_, err := svc.CreatePayroll(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:  "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f",
		PeriodMonth: 3,
		PeriodYear:  2024,
		BaseSalary:  dec("5000"),
	})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_CreatePayroll_InvalidPeriod(t *testing.T) {
	svc, _ := newPayrollFixture(t)

	_, err := svc.CreatePayroll(context.Background(), payroll.CreatePayrollRequest{
		EmployeeID:  "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f",
		PeriodMonth: 0,
		PeriodYear:  2024,
		BaseSalary:  dec("5000"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "month", verrs[0].Field)
}

// ===== GENERATE =====

func TestPayrollService_GeneratePayroll(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)
	seedEmployee(t, store, "EMP002", "Dewi", dec("7250.50"), true)
	seedEmployee(t, store, "EMP003", "Eko", nil, true)
	seedEmployee(t, store, "EMP004", "Fajar", dec("9000"), false)

	resp, err := svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{PeriodMonth: 3, PeriodYear: 2024})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Generated)
	assert.Equal(t, 0, resp.Skipped)
	require.Len(t, resp.Payrolls, 3)

	byCode := make(map[string]payroll.PayrollRecordResponse)
	for _, p := range resp.Payrolls {
		byCode[*p.EmployeeCode] = p
	}
	assert.True(t, decimal.RequireFromString("500").Equal(byCode["EMP001"].Tax))
	assert.True(t, decimal.RequireFromString("4500").Equal(byCode["EMP001"].NetSalary))
	assert.True(t, decimal.RequireFromString("725.05").Equal(byCode["EMP002"].Tax))
	assert.True(t, decimal.RequireFromString("6525.45").Equal(byCode["EMP002"].NetSalary))
	assert.True(t, byCode["EMP003"].NetSalary.IsZero())
	assert.NotContains(t, byCode, "EMP004")
}

func TestPayrollService_GeneratePayroll_RoundsTaxToCents(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	seedEmployee(t, store, "EMP001", "Citra", dec("1234.55"), true)

	resp, err := svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{PeriodMonth: 3, PeriodYear: 2024})

	require.NoError(t, err)
	require.Len(t, resp.Payrolls, 1)
	got := resp.Payrolls[0]
	assert.Equal(t, "123.46", got.Tax.String())
	assert.Equal(t, "1111.09", got.NetSalary.String())
	assert.True(t, got.NetSalary.Equal(got.BaseSalary.Sub(got.Tax).Round(payroll.MoneyScale)))
}

func TestPayrollService_CreatePayroll_RejectsSubCentAmounts(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	emp := seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)

	_, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{
		EmployeeID:  emp.ID,
		PeriodMonth: 3,
		PeriodYear:  2024,
		BaseSalary:  dec("1234.55"),
		Tax:         dec("123.455"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "tax")
}

func TestPayrollService_GeneratePayroll_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)
	seedEmployee(t, store, "EMP002", "Dewi", dec("6000"), true)

	req := payroll.GeneratePayrollRequest{PeriodMonth: 3, PeriodYear: 2024}
	first, err := svc.GeneratePayroll(ctx, req)
	require.NoError(t, err)
	require.Equal(t, 2, first.Generated)

	second, err := svc.GeneratePayroll(ctx, req)

	require.NoError(t, err)
	assert.Equal(t, 0, second.Generated)
	assert.Equal(t, 2, second.Skipped)
	assert.Empty(t, second.Payrolls)
}

func TestPayrollService_GeneratePayroll_SkipsManualRecords(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	emp := seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)
	seedEmployee(t, store, "EMP002", "Dewi", dec("6000"), true)

	_, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{EmployeeID: emp.ID, PeriodMonth: 3, PeriodYear: 2024, BaseSalary: dec("5100")})
	require.NoError(t, err)

	resp, err := svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{PeriodMonth: 3, PeriodYear: 2024})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)
	assert.Equal(t, 1, resp.Skipped)
}

func TestPayrollService_GeneratePayroll_CancelledContext(t *testing.T) {
	svc, store := newPayrollFixture(t)
	seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{PeriodMonth: 3, PeriodYear: 2024})

	assert.ErrorIs(t, err, context.Canceled)
}

// ===== UPDATE / READ =====

func TestPayrollService_UpdatePayroll_RecomputesNet(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	emp := seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{EmployeeID: emp.ID, PeriodMonth: 3, PeriodYear: 2024, BaseSalary: dec("5000"), Tax: dec("500")})
	require.NoError(t, err)

	status := "processed"
	updated, err := svc.UpdatePayroll(ctx, created.ID, payroll.UpdatePayrollRequest{Deductions: dec("250"), Status: &status})

	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayrollStatusProcessed), updated.Status)
	assert.True(t, decimal.RequireFromString("4250").Equal(updated.NetSalary), updated.NetSalary.String())
}

func TestPayrollService_UpdatePayroll_NotFound(t *testing.T) {
	svc, _ := newPayrollFixture(t)

	_, err := svc.UpdatePayroll(context.Background(), "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f", payroll.UpdatePayrollRequest{Tax: dec("1")})

	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}

func TestPayrollService_GetPayroll_Access(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	emp := seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)
	other := seedEmployee(t, store, "EMP002", "Dewi", dec("5000"), true)

	created, err := svc.CreatePayroll(ctx, payroll.CreatePayrollRequest{EmployeeID: emp.ID, PeriodMonth: 3, PeriodYear: 2024, BaseSalary: dec("5000")})
	require.NoError(t, err)

	tests := []struct {
		name    string
		caller  user.Principal
		wantErr error
	}{
		{name: "owner", caller: user.Principal{UserID: "u1", EmployeeID: emp.ID, Role: user.RoleEmployee}},
		{name: "hr", caller: user.Principal{UserID: "u2", Role: user.RoleHR}},
		{name: "admin", caller: user.Principal{UserID: "u3", Role: user.RoleAdmin}},
		{name: "another employee", caller: user.Principal{UserID: "u4", EmployeeID: other.ID, Role: user.RoleEmployee}, wantErr: user.ErrAccessDenied},
		{name: "manager of someone else", caller: user.Principal{UserID: "u5", EmployeeID: other.ID, Role: user.RoleManager}, wantErr: user.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetPayroll(ctx, created.ID, tt.caller)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPayrollService_ListAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	emp := seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)
	seedEmployee(t, store, "EMP002", "Dewi", dec("3000"), true)

	_, err := svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{PeriodMonth: 2, PeriodYear: 2024})
	require.NoError(t, err)
	_, err = svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{PeriodMonth: 3, PeriodYear: 2024})
	require.NoError(t, err)

	month := 3
	list, err := svc.ListPayrolls(ctx, payroll.PayrollFilter{PeriodMonth: &month})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalCount)

	mine, err := svc.GetMyPayrolls(ctx, emp.ID, payroll.PayrollFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), mine.TotalCount)
	assert.Equal(t, 12, mine.Limit)
	assert.Equal(t, 3, mine.Payrolls[0].PeriodMonth)

	summary, err := svc.GetPayrollSummary(ctx, 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalRecords)
	assert.True(t, decimal.RequireFromString("8000").Equal(summary.TotalBaseSalary))
	assert.True(t, decimal.RequireFromString("800").Equal(summary.TotalTax))
	assert.True(t, decimal.RequireFromString("7200").Equal(summary.TotalNetSalary))

	current, err := svc.GetPayrollSummary(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, current.PeriodMonth)
	assert.Equal(t, 2024, current.PeriodYear)
	assert.Equal(t, int64(2), current.TotalRecords)

	_, err = svc.GetPayrollSummary(ctx, 13, 2024)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestPayrollService_CurrentPeriod_UsesLocation(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	clk := &clock.Fixed{T: time.Date(2024, 3, 31, 20, 0, 0, 0, time.UTC)}
	store := memory.NewStore(clk)

	month, year := NewPayrollService(store.Payrolls(), store.Employees(), clk, jakarta).CurrentPeriod()
	assert.Equal(t, 4, month)
	assert.Equal(t, 2024, year)

	month, year = NewPayrollService(store.Payrolls(), store.Employees(), clk, nil).CurrentPeriod()
	assert.Equal(t, 3, month)
	assert.Equal(t, 2024, year)
}

// ===== EXPORT =====

func TestPayrollService_ExportPayrolls(t *testing.T) {
	ctx := context.Background()
	svc, store := newPayrollFixture(t)
	seedEmployee(t, store, "EMP001", "Citra", dec("5000"), true)
	seedEmployee(t, store, "EMP002", "Dewi", dec("3000"), true)

	_, err := svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{PeriodMonth: 3, PeriodYear: 2024})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportPayrolls(ctx, 3, 2024, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header, two employees, total

	assert.Equal(t, "Employee Code", rows[0][0])
	assert.Equal(t, "Net Salary", rows[0][9])
	assert.Equal(t, "TOTAL", rows[3][0])
	assert.Equal(t, "7200", rows[3][9])
}

func TestPayrollService_ExportPayrolls_EmptyPeriod(t *testing.T) {
	svc, _ := newPayrollFixture(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportPayrolls(context.Background(), 1, 2020, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Payroll")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0", rows[1][9])
}
