package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StateBracket is one progressive band of a state schedule. A nil Max marks
// the top, unbounded band.
type StateBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the band has no upper limit.
func (b StateBracket) Unbounded() bool {
	return b.Max == nil
}

// FilingStatusAmounts holds a per-status amount as states publish them.
type FilingStatusAmounts struct {
	Single          decimal.Decimal `yaml:"single" json:"single"`
	MarriedJoint    decimal.Decimal `yaml:"marriedJoint" json:"marriedJoint"`
	MarriedSeparate decimal.Decimal `yaml:"marriedSeparate" json:"marriedSeparate"`
	HeadOfHousehold decimal.Decimal `yaml:"headOfHousehold" json:"headOfHousehold"`
}

// For maps a draft filing status to the matching amount. Married means
// married filing jointly; an unset status falls back to single.
func (a FilingStatusAmounts) For(status FilingStatus) decimal.Decimal {
	switch status {
	case FilingStatusMarried:
		return a.MarriedJoint
	case FilingStatusHOH:
		return a.HeadOfHousehold
	default:
		return a.Single
	}
}

// PersonalExemption adds a per-dependent amount to the status amounts.
type PersonalExemption struct {
	FilingStatusAmounts `yaml:",inline"`
	Dependent           decimal.Decimal `yaml:"dependent" json:"dependent"`
}

// JurisdictionTaxInfo describes how one state taxes income.
type JurisdictionTaxInfo struct {
	Name              string               `yaml:"name" json:"name"`
	Abbreviation      string               `yaml:"abbreviation" json:"abbreviation"`
	HasIncomeTax      bool                 `yaml:"has_income_tax" json:"hasIncomeTax"`
	FlatRate          *decimal.Decimal     `yaml:"flat_rate,omitempty" json:"flatRate,omitempty"`
	Brackets          []StateBracket       `yaml:"brackets,omitempty" json:"brackets,omitempty"`
	StandardDeduction *FilingStatusAmounts `yaml:"standard_deduction,omitempty" json:"standardDeduction,omitempty"`
	PersonalExemption *PersonalExemption   `yaml:"personal_exemption,omitempty" json:"personalExemption,omitempty"`
}

// FederalBracket is a (threshold, rate) pair; the band runs up to the next
// threshold.
type FederalBracket struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// FederalStandardDeduction holds the federal standard deduction per status.
type FederalStandardDeduction struct {
	Single          decimal.Decimal `yaml:"single" json:"single"`
	Married         decimal.Decimal `yaml:"married" json:"married"`
	HeadOfHousehold decimal.Decimal `yaml:"head_of_household" json:"headOfHousehold"`
}

// SelfEmploymentRules parameterizes the simplified SE tax.
type SelfEmploymentRules struct {
	EarningsFactor  decimal.Decimal `yaml:"earnings_factor" json:"earningsFactor"`
	TaxRate         decimal.Decimal `yaml:"tax_rate" json:"taxRate"`
	DeductibleShare decimal.Decimal `yaml:"deductible_share" json:"deductibleShare"`
}

// FederalRules is the federal portion of the jurisdiction table.
type FederalRules struct {
	Single          []FederalBracket `yaml:"single" json:"single"`
	Married         []FederalBracket `yaml:"married" json:"married"`
	HeadOfHousehold []FederalBracket `yaml:"head_of_household,omitempty" json:"headOfHousehold,omitempty"`

	StandardDeduction          FederalStandardDeduction `yaml:"standard_deduction" json:"standardDeduction"`
	StudentLoanInterestCap     decimal.Decimal          `yaml:"student_loan_interest_cap" json:"studentLoanInterestCap"`
	IRADeductionCap            decimal.Decimal          `yaml:"ira_deduction_cap" json:"iraDeductionCap"`
	ChildTaxCreditPerDependent decimal.Decimal          `yaml:"child_tax_credit_per_dependent" json:"childTaxCreditPerDependent"`
	SelfEmployment             SelfEmploymentRules      `yaml:"self_employment" json:"selfEmployment"`
}

// Schedule returns the bracket schedule for a status. Head of household
// uses the single schedule unless a dedicated one is configured.
func (f FederalRules) Schedule(status FilingStatus) []FederalBracket {
	switch status {
	case FilingStatusMarried:
		return f.Married
	case FilingStatusHOH:
		if len(f.HeadOfHousehold) > 0 {
			return f.HeadOfHousehold
		}
	}
	return f.Single
}

// StandardDeductionFor returns the federal standard deduction; an unset
// status is treated as single.
func (f FederalRules) StandardDeductionFor(status FilingStatus) decimal.Decimal {
	switch status {
	case FilingStatusMarried:
		return f.StandardDeduction.Married
	case FilingStatusHOH:
		return f.StandardDeduction.HeadOfHousehold
	default:
		return f.StandardDeduction.Single
	}
}

// JurisdictionTable is the read-only set of tax rules the engine runs on.
type JurisdictionTable struct {
	Year    int                            `yaml:"year" json:"year"`
	Federal FederalRules                   `yaml:"federal" json:"federal"`
	States  map[string]JurisdictionTaxInfo `yaml:"states" json:"states"`
}

// Lookup finds a state by code, case-insensitively.
func (t *JurisdictionTable) Lookup(code string) (JurisdictionTaxInfo, bool) {
	if t == nil {
		return JurisdictionTaxInfo{}, false
	}
	info, ok := t.States[strings.ToUpper(strings.TrimSpace(code))]
	return info, ok
}
