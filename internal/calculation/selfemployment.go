package calculation

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// SelfEmploymentTax is the simplified SE tax on 1099-NEC income.
type SelfEmploymentTax struct {
	NetEarnings    decimal.Decimal
	Tax            decimal.Decimal
	DeductibleHalf decimal.Decimal
}

// SelfEmploymentTaxCalculator computes SE tax without a wage base cap.
type SelfEmploymentTaxCalculator struct {
	Rules domain.SelfEmploymentRules
}

// NewSelfEmploymentTaxCalculator creates an SE calculator for the given factors
func NewSelfEmploymentTaxCalculator(rules domain.SelfEmploymentRules) *SelfEmploymentTaxCalculator {
	return &SelfEmploymentTaxCalculator{Rules: rules}
}

// Calculate returns the SE tax on nec income. Non-positive income owes nothing.
func (sec *SelfEmploymentTaxCalculator) Calculate(necIncome decimal.Decimal) SelfEmploymentTax {
	if necIncome.LessThanOrEqual(decimal.Zero) {
		return SelfEmploymentTax{NetEarnings: decimal.Zero, Tax: decimal.Zero, DeductibleHalf: decimal.Zero}
	}

	net := necIncome.Mul(sec.Rules.EarningsFactor)
	tax := net.Mul(sec.Rules.TaxRate)
	return SelfEmploymentTax{
		NetEarnings:    net,
		Tax:            tax,
		DeductibleHalf: tax.Mul(sec.Rules.DeductibleShare),
	}
}
