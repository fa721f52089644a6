package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/squadhr-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newEmployeeFixture(t *testing.T) (employee.EmployeeService, *clock.Fixed) {
	t.Helper()
	clk := &clock.Fixed{T: time.Date(2024, 4, 15, 8, 0, 0, 0, time.UTC)}
	store := memory.NewStore(clk)
	return NewEmployeeService(store.Employees(), clk), clk
}

func createEmployee(t *testing.T, svc employee.EmployeeService, code, first, email, dept string) employee.EmployeeResponse {
	t.Helper()
	resp, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeCode: strPtr(code),
		FirstName:    first,
		LastName:     "Wibowo",
		Email:        email,
		Department:   strPtr(dept),
	})
	require.NoError(t, err)
	return resp
}

// ===== CREATE =====

func TestEmployeeService_CreateEmployee_Defaults(t *testing.T) {
	svc, _ := newEmployeeFixture(t)

	salary := decimal.RequireFromString("6500000")
	resp, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FirstName: " Gita ",
		LastName:  "Pratama",
		Email:     "Gita.Pratama@Example.com",
		Salary:    &salary,
	})

	require.NoError(t, err)
	assert.Equal(t, "EMP1713168000000", resp.EmployeeCode)
	assert.Equal(t, "Gita", resp.FirstName)
	assert.Equal(t, "Gita Pratama", resp.FullName)
	assert.Equal(t, "gita.pratama@example.com", resp.Email)
	assert.Equal(t, "2024-04-15", resp.DateOfJoining)
	assert.True(t, resp.IsActive)
}

func TestEmployeeService_CreateEmployee_Conflicts(t *testing.T) {
	svc, _ := newEmployeeFixture(t)
	createEmployee(t, svc, "EMP001", "Gita", "gita@example.com", "Engineering")

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeCode: strPtr("EMP001"),
		FirstName:    "Hadi",
		LastName:     "Wibowo",
		Email:        "hadi@example.com",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)

	_, err = svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeCode: strPtr("EMP002"),
		FirstName:    "Hadi",
		LastName:     "Wibowo",
		Email:        "GITA@example.com",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestEmployeeService_CreateEmployee_Validation(t *testing.T) {
	svc, _ := newEmployeeFixture(t)

	salary := decimal.RequireFromString("-1")
	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FirstName:   "",
		LastName:    "Wibowo",
		Email:       "not-an-email",
		DateOfBirth: strPtr("1990/01/01"),
		Salary:      &salary,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "first_name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "date_of_birth")
	assert.Contains(t, fields, "salary")
}

func TestEmployeeService_CreateEmployee_UnknownManager(t *testing.T) {
	svc, _ := newEmployeeFixture(t)

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		FirstName: "Hadi",
		LastName:  "Wibowo",
		Email:     "hadi@example.com",
		ManagerID: strPtr("7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f"),
	})

	assert.ErrorIs(t, err, employee.ErrManagerNotFound)
}

// ===== UPDATE =====

func TestEmployeeService_UpdateEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeFixture(t)
	manager := createEmployee(t, svc, "EMP001", "Gita", "gita@example.com", "Engineering")
	report := createEmployee(t, svc, "EMP002", "Hadi", "hadi@example.com", "Engineering")

	resp, err := svc.UpdateEmployee(ctx, report.ID, employee.UpdateEmployeeRequest{
		Designation: strPtr("Senior Engineer"),
		ManagerID:   &manager.ID,
	})

	require.NoError(t, err)
	require.NotNil(t, resp.Designation)
	assert.Equal(t, "Senior Engineer", *resp.Designation)
	require.NotNil(t, resp.ManagerName)
	assert.Equal(t, "Gita Wibowo", *resp.ManagerName)
	assert.Equal(t, "Hadi", resp.FirstName)
}

func TestEmployeeService_UpdateEmployee_SelfManager(t *testing.T) {
	svc, _ := newEmployeeFixture(t)
	emp := createEmployee(t, svc, "EMP001", "Gita", "gita@example.com", "Engineering")

	_, err := svc.UpdateEmployee(context.Background(), emp.ID, employee.UpdateEmployeeRequest{ManagerID: &emp.ID})

	assert.ErrorIs(t, err, employee.ErrCannotManageSelf)
}

// ===== DELETE / LIST =====

func TestEmployeeService_DeleteEmployee_SoftDeletes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEmployeeFixture(t)
	emp := createEmployee(t, svc, "EMP001", "Gita", "gita@example.com", "Engineering")

	require.NoError(t, svc.DeleteEmployee(ctx, emp.ID))

	got, err := svc.GetEmployee(ctx, emp.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	list, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), list.TotalCount)

	assert.ErrorIs(t, svc.DeleteEmployee(ctx, emp.ID), employee.ErrEmployeeAlreadyInactive)
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f"), employee.ErrEmployeeNotFound)
}

func TestEmployeeService_ListEmployees_SearchAndDepartment(t *testing.T) {
	ctx := context.Background()
	svc, clk := newEmployeeFixture(t)
	createEmployee(t, svc, "EMP001", "Gita", "gita@example.com", "Engineering")
	clk.Advance(time.Minute)
	createEmployee(t, svc, "EMP002", "Hadi", "hadi@example.com", "Finance")
	clk.Advance(time.Minute)
	createEmployee(t, svc, "EMP003", "Indah", "indah@example.com", "Engineering")

	all, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalCount)
	assert.Equal(t, 10, all.Limit)
	assert.Equal(t, "EMP003", all.Employees[0].EmployeeCode)

	search, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Search: strPtr("HADI")})
	require.NoError(t, err)
	require.Len(t, search.Employees, 1)
	assert.Equal(t, "EMP002", search.Employees[0].EmployeeCode)

	byCode, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Search: strPtr("emp00")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), byCode.TotalCount)

	engineering, err := svc.ListEmployees(ctx, employee.EmployeeFilter{Department: strPtr("Engineering")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), engineering.TotalCount)

	dept, err := svc.ListByDepartment(ctx, "Finance")
	require.NoError(t, err)
	require.Len(t, dept, 1)
	assert.Equal(t, "Hadi", dept[0].FirstName)
}

func TestEmployeeService_GetEmployee_NotFound(t *testing.T) {
	svc, _ := newEmployeeFixture(t)

	_, err := svc.GetEmployee(context.Background(), "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f")

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
