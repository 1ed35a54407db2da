package calculation

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets and standard deductions are the 2024 figures from the
//    jurisdiction table. No inflation indexing.
//
// 2. Head of household is taxed on the single schedule unless the table
//    supplies a head of household schedule. The HOH standard deduction is
//    still used.
//
// 3. State tax is computed on federal AGI, not on federal taxable income.
//
// 4. Self-employment tax ignores the Social Security wage base.
//
// 5. No credits are applied unless the child tax credit policy is enabled.

// FederalTaxCalculator integrates a taxable amount over the federal
// (threshold, rate) schedules.
type FederalTaxCalculator struct {
	Rules domain.FederalRules
}

// NewFederalTaxCalculator creates a federal calculator for the given rules
func NewFederalTaxCalculator(rules domain.FederalRules) *FederalTaxCalculator {
	return &FederalTaxCalculator{Rules: rules}
}

// CalculateFederalTax returns the unrounded tax on taxable income.
// Negative input is treated as zero.
func (ftc *FederalTaxCalculator) CalculateFederalTax(taxableIncome decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	brackets := ftc.Rules.Schedule(status)
	totalTax := decimal.Zero
	for i, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Threshold) {
			break
		}
		incomeInBracket := taxableIncome.Sub(bracket.Threshold)
		if i+1 < len(brackets) {
			incomeInBracket = decimal.Min(incomeInBracket, brackets[i+1].Threshold.Sub(bracket.Threshold))
		}
		totalTax = totalTax.Add(incomeInBracket.Mul(bracket.Rate))
	}

	return totalTax
}

// StandardDeduction returns the federal standard deduction for a status.
func (ftc *FederalTaxCalculator) StandardDeduction(status domain.FilingStatus) decimal.Decimal {
	return ftc.Rules.StandardDeductionFor(status)
}

// ChildTaxCredit returns the credit for dependents, limited to the tax it
// offsets.
func (ftc *FederalTaxCalculator) ChildTaxCredit(tax decimal.Decimal, dependents int) decimal.Decimal {
	if dependents <= 0 || tax.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	credit := ftc.Rules.ChildTaxCreditPerDependent.Mul(decimal.NewFromInt(int64(dependents)))
	return decimal.Min(credit, tax)
}

// StateTaxCalculator applies a state's deductions, exemptions and rates
// from the jurisdiction table.
type StateTaxCalculator struct {
	Table *domain.JurisdictionTable
}

// NewStateTaxCalculator creates a state calculator backed by table
func NewStateTaxCalculator(table *domain.JurisdictionTable) *StateTaxCalculator {
	return &StateTaxCalculator{Table: table}
}

// CalculateStateTax returns the state tax on base. Unknown states and states
// without an income tax owe nothing.
func (stc *StateTaxCalculator) CalculateStateTax(code string, base decimal.Decimal, status domain.FilingStatus, dependents int) decimal.Decimal {
	info, ok := stc.Table.Lookup(code)
	if !ok || !info.HasIncomeTax {
		return decimal.Zero
	}

	taxable := stc.AdjustedIncome(info, base, status, dependents)

	if info.FlatRate != nil {
		return taxable.Mul(*info.FlatRate)
	}
	if len(info.Brackets) > 0 {
		return bracketTax(taxable, info.Brackets)
	}
	return decimal.Zero
}

// AdjustedIncome applies the state standard deduction, then the personal
// and dependent exemptions, flooring at zero after each step.
func (stc *StateTaxCalculator) AdjustedIncome(info domain.JurisdictionTaxInfo, base decimal.Decimal, status domain.FilingStatus, dependents int) decimal.Decimal {
	adjusted := floorZero(base)

	if info.StandardDeduction != nil {
		adjusted = floorZero(adjusted.Sub(info.StandardDeduction.For(status)))
	}

	if info.PersonalExemption != nil {
		if dependents < 0 {
			dependents = 0
		}
		exemption := info.PersonalExemption.For(status).
			Add(info.PersonalExemption.Dependent.Mul(decimal.NewFromInt(int64(dependents))))
		adjusted = floorZero(adjusted.Sub(exemption))
	}

	return adjusted
}

// bracketTax walks ascending bands, taxing the slice of income inside each.
func bracketTax(income decimal.Decimal, brackets []domain.StateBracket) decimal.Decimal {
	tax := decimal.Zero
	for _, bracket := range brackets {
		if income.LessThanOrEqual(bracket.Min) {
			break
		}
		inBracket := income.Sub(bracket.Min)
		if !bracket.Unbounded() {
			inBracket = decimal.Min(inBracket, bracket.Max.Sub(bracket.Min))
		}
		tax = tax.Add(inBracket.Mul(bracket.Rate))
		if !bracket.Unbounded() && income.LessThanOrEqual(*bracket.Max) {
			break
		}
	}
	return tax
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
