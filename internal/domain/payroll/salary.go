package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/squadhr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for every stored amount.
const MoneyScale = 2

// DefaultTaxRate is the flat rate applied by bulk generation.
var DefaultTaxRate = decimal.NewFromFloat(0.10)

// ComputeNetSalary returns base + allowances - deductions - tax. The result is not floored.
func ComputeNetSalary(base, allowances, deductions, tax decimal.Decimal) decimal.Decimal {
	return base.Add(allowances).Sub(deductions).Sub(tax)
}

// ComputeTax applies DefaultTaxRate to base, rounded to MoneyScale.
func ComputeTax(base decimal.Decimal) decimal.Decimal {
	return base.Mul(DefaultTaxRate).Round(MoneyScale)
}

// IsMoney reports whether d needs no rounding to be stored.
func IsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

func validateMoney(field string, d *decimal.Decimal) []validator.ValidationError {
	if d == nil || IsMoney(*d) {
		return nil
	}
	return []validator.ValidationError{{
		Field:   field,
		Message: fmt.Sprintf("%s must have at most %d decimal places", field, MoneyScale),
	}}
}
