package domain

import "github.com/shopspring/decimal"

// TaxCalculationResult is the estimate derived from a draft and a
// jurisdiction table. It is never stored.
type TaxCalculationResult struct {
	TotalIncome         decimal.Decimal `json:"totalIncome"`
	AdjustedGrossIncome decimal.Decimal `json:"adjustedGrossIncome"`
	TaxableIncome       decimal.Decimal `json:"taxableIncome"`
	FederalTax          decimal.Decimal `json:"federalTax"`
	StateTax            decimal.Decimal `json:"stateTax"`
	SelfEmploymentTax   decimal.Decimal `json:"selfEmploymentTax"`
	TotalTax            decimal.Decimal `json:"totalTax"`
	FederalWithheld     decimal.Decimal `json:"federalWithheld"`
	StateWithheld       decimal.Decimal `json:"stateWithheld"`
	EstimatedPayments   decimal.Decimal `json:"estimatedPayments"`
	RefundOrOwed        decimal.Decimal `json:"refundOrOwed"`
	IsRefund            bool            `json:"isRefund"`
}

// TotalPayments sums withholding and estimated payments.
func (r TaxCalculationResult) TotalPayments() decimal.Decimal {
	return r.FederalWithheld.Add(r.StateWithheld).Add(r.EstimatedPayments)
}

// Net returns payments minus tax: positive is a refund, negative is owed.
func (r TaxCalculationResult) Net() decimal.Decimal {
	if r.IsRefund {
		return r.RefundOrOwed
	}
	return r.RefundOrOwed.Neg()
}

// Equal compares two results field by field.
func (r TaxCalculationResult) Equal(o TaxCalculationResult) bool {
	return r.TotalIncome.Equal(o.TotalIncome) &&
		r.AdjustedGrossIncome.Equal(o.AdjustedGrossIncome) &&
		r.TaxableIncome.Equal(o.TaxableIncome) &&
		r.FederalTax.Equal(o.FederalTax) &&
		r.StateTax.Equal(o.StateTax) &&
		r.SelfEmploymentTax.Equal(o.SelfEmploymentTax) &&
		r.TotalTax.Equal(o.TotalTax) &&
		r.FederalWithheld.Equal(o.FederalWithheld) &&
		r.StateWithheld.Equal(o.StateWithheld) &&
		r.EstimatedPayments.Equal(o.EstimatedPayments) &&
		r.RefundOrOwed.Equal(o.RefundOrOwed) &&
		r.IsRefund == o.IsRefund
}

// DeductionMethod names which deduction the engine applied.
type DeductionMethod string

const (
	DeductionStandard DeductionMethod = "standard"
	DeductionItemized DeductionMethod = "itemized"
)

// Worksheet carries the intermediate lines behind a result, used by the
// Form 1040 preview.
type Worksheet struct {
	Result TaxCalculationResult `json:"result"`

	W2Wages                 decimal.Decimal `json:"w2Wages"`
	InterestIncome          decimal.Decimal `json:"interestIncome"`
	DividendIncome          decimal.Decimal `json:"dividendIncome"`
	BusinessIncome          decimal.Decimal `json:"businessIncome"`
	OtherIncome             decimal.Decimal `json:"otherIncome"`
	StudentLoanInterest     decimal.Decimal `json:"studentLoanInterest"`
	IRADeduction            decimal.Decimal `json:"iraDeduction"`
	SEDeductibleHalf        decimal.Decimal `json:"seDeductibleHalf"`
	TotalAdjustments        decimal.Decimal `json:"totalAdjustments"`
	StandardDeduction       decimal.Decimal `json:"standardDeduction"`
	ItemizedDeductions      decimal.Decimal `json:"itemizedDeductions"`
	DeductionUsed           decimal.Decimal `json:"deductionUsed"`
	DeductionMethod         DeductionMethod `json:"deductionMethod"`
	FederalTaxBeforeCredits decimal.Decimal `json:"federalTaxBeforeCredits"`
	ChildTaxCredit          decimal.Decimal `json:"childTaxCredit"`
	StateName               string          `json:"stateName"`
	StateCode               string          `json:"stateCode"`
	FilingStatus            FilingStatus    `json:"filingStatus"`
	Dependents              int             `json:"dependents"`
}
