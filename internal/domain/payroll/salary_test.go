package payroll

import (
	"testing"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeNetSalary(t *testing.T) {
	tests := []struct {
		name                              string
		base, allowances, deductions, tax string
		want                              string
	}{
		{name: "regular", base: "5000", allowances: "200", deductions: "100", tax: "300", want: "4800"},
		{name: "no extras", base: "5000", allowances: "0", deductions: "0", tax: "500", want: "4500"},
		{name: "cents", base: "1234.56", allowances: "10.10", deductions: "0.66", tax: "123.456", want: "1120.544"},
		{name: "negative is kept", base: "100", allowances: "0", deductions: "150", tax: "10", want: "-60"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeNetSalary(d(tt.base), d(tt.allowances), d(tt.deductions), d(tt.tax))
			assert.True(t, d(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputeTax(t *testing.T) {
	assert.True(t, d("500").Equal(ComputeTax(d("5000"))))
	assert.True(t, d("0").Equal(ComputeTax(decimal.Zero)))
	assert.True(t, d("123.46").Equal(ComputeTax(d("1234.56"))))
	assert.True(t, d("123.46").Equal(ComputeTax(d("1234.55"))))
}

func TestPayrollRecord_Recompute_StoresExactCents(t *testing.T) {
	for _, base := range []string{"1234.55", "1234.56", "999.99", "0.05", "60000"} {
		t.Run(base, func(t *testing.T) {
			record := PayrollRecord{BaseSalary: d(base), Tax: ComputeTax(d(base))}
			record.Recompute()

			assert.True(t, IsMoney(record.Tax), record.Tax.String())
			assert.True(t, IsMoney(record.NetSalary), record.NetSalary.String())

			// The NUMERIC(14,2) columns must round-trip without breaking net = base - tax.
			stored := record.NetSalary.Round(MoneyScale)
			assert.True(t, stored.Equal(record.BaseSalary.Sub(record.Tax.Round(MoneyScale))),
				"net %s base %s tax %s", stored, record.BaseSalary, record.Tax)
		})
	}

	record := PayrollRecord{BaseSalary: d("1234.55"), Tax: ComputeTax(d("1234.55"))}
	record.Recompute()
	assert.Equal(t, "1111.09", record.NetSalary.StringFixed(MoneyScale))
}

func TestCreatePayrollRequest_Validate_MoneyScale(t *testing.T) {
	valid := func() CreatePayrollRequest {
		base := d("1234.50")
		return CreatePayrollRequest{
			EmployeeID:  "4b3c2a7e-1f0d-4c8b-9a6e-2d5f7e8a9b10",
			PeriodMonth: 3,
			PeriodYear:  2024,
			BaseSalary:  &base,
		}
	}

	req := valid()
	require.NoError(t, req.Validate())

	tests := []struct {
		field string
		set   func(r *CreatePayrollRequest, v decimal.Decimal)
	}{
		{field: "base_salary", set: func(r *CreatePayrollRequest, v decimal.Decimal) { r.BaseSalary = &v }},
		{field: "allowances", set: func(r *CreatePayrollRequest, v decimal.Decimal) { r.Allowances = &v }},
		{field: "deductions", set: func(r *CreatePayrollRequest, v decimal.Decimal) { r.Deductions = &v }},
		{field: "tax", set: func(r *CreatePayrollRequest, v decimal.Decimal) { r.Tax = &v }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			req := valid()
			tt.set(&req, d("123.455"))

			err := req.Validate()

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestUpdatePayrollRequest_Validate_MoneyScale(t *testing.T) {
	tax := d("10.001")
	req := UpdatePayrollRequest{Tax: &tax}

	err := req.Validate()

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "tax")

	trailing := d("10.100")
	req = UpdatePayrollRequest{Tax: &trailing}
	assert.NoError(t, req.Validate())
}

func TestUpdatePayrollRequest_Apply(t *testing.T) {
	record := PayrollRecord{
		BaseSalary: d("5000"),
		Allowances: d("200"),
		Deductions: d("100"),
		Tax:        d("300"),
		Status:     PayrollStatusPending,
	}
	record.Recompute()
	require.True(t, d("4800").Equal(record.NetSalary))

	t.Run("money change recomputes net", func(t *testing.T) {
		allowances := d("700")
		req := UpdatePayrollRequest{Allowances: &allowances}
		require.NoError(t, req.Validate())

		got := req.Apply(record)

		assert.True(t, d("5300").Equal(got.NetSalary), got.NetSalary.String())
	})

	t.Run("status only keeps net", func(t *testing.T) {
		status := "paid"
		req := UpdatePayrollRequest{Status: &status}
		require.NoError(t, req.Validate())

		got := req.Apply(record)

		assert.Equal(t, PayrollStatusPaid, got.Status)
		assert.True(t, d("4800").Equal(got.NetSalary))
	})

	t.Run("unknown status", func(t *testing.T) {
		status := "VOID"
		req := UpdatePayrollRequest{Status: &status}

		assert.Error(t, req.Validate())
	})
}

func TestCreatePayrollRequest_Validate(t *testing.T) {
	base := d("5000")
	valid := CreatePayrollRequest{
		EmployeeID:  "7f1c5a52-6d0e-4c1e-9a53-1d2b3c4d5e6f",
		PeriodMonth: 3,
		PeriodYear:  2024,
		BaseSalary:  &base,
	}
	assert.NoError(t, valid.Validate())

	invalid := CreatePayrollRequest{EmployeeID: "nope", PeriodMonth: 13, PeriodYear: 2024}
	err := invalid.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee_id")
	assert.Contains(t, err.Error(), "month")
	assert.Contains(t, err.Error(), "base_salary")
}
