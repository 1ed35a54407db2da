package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// FilingStatus is the filing status chosen on the status step.
type FilingStatus string

const (
	FilingStatusUnset   FilingStatus = ""
	FilingStatusSingle  FilingStatus = "single"
	FilingStatusMarried FilingStatus = "married"
	FilingStatusHOH     FilingStatus = "hoh"
)

// Valid reports whether s is one of the selectable statuses.
func (s FilingStatus) Valid() bool {
	switch s {
	case FilingStatusSingle, FilingStatusMarried, FilingStatusHOH:
		return true
	}
	return false
}

// Label returns the human-readable status name.
func (s FilingStatus) Label() string {
	switch s {
	case FilingStatusSingle:
		return "Single"
	case FilingStatusMarried:
		return "Married filing jointly"
	case FilingStatusHOH:
		return "Head of household"
	default:
		return "Not selected"
	}
}

// ParseFilingStatus accepts the stored value or a few common spellings.
func ParseFilingStatus(s string) (FilingStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "s":
		return FilingStatusSingle, true
	case "married", "mfj", "married_joint", "marriedjoint":
		return FilingStatusMarried, true
	case "hoh", "head_of_household", "headofhousehold":
		return FilingStatusHOH, true
	case "":
		return FilingStatusUnset, true
	}
	return FilingStatusUnset, false
}

// Amount is a monetary value exactly as the user typed it. Parsing happens
// in the money package; an Amount is never rejected.
type Amount string

// UnmarshalJSON accepts strings and bare numbers so older blobs that stored
// numbers still restore. Any other JSON value becomes an empty amount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Amount(n.String())
		return nil
	}
	*a = ""
	return nil
}

// IncomeSources records which income documents the taxpayer has.
type IncomeSources struct {
	W2            bool   `json:"w2" yaml:"w2"`
	NEC1099       bool   `json:"nec1099" yaml:"nec1099"`
	MISC1099      bool   `json:"misc1099" yaml:"misc1099"`
	Interest1099  bool   `json:"interest1099" yaml:"interest1099"`
	Dividends1099 bool   `json:"dividends1099" yaml:"dividends1099"`
	Other         string `json:"other" yaml:"other"`
}

// IncomeDetails holds the amounts entered for each income source.
type IncomeDetails struct {
	W2Wages             Amount `json:"w2Wages" yaml:"w2Wages"`
	W2FederalWithheld   Amount `json:"w2FederalWithheld" yaml:"w2FederalWithheld"`
	W2StateWithheld     Amount `json:"w2StateWithheld" yaml:"w2StateWithheld"`
	NEC1099Amount       Amount `json:"nec1099Amount" yaml:"nec1099Amount"`
	MISC1099Amount      Amount `json:"misc1099Amount" yaml:"misc1099Amount"`
	Interest1099Amount  Amount `json:"interest1099Amount" yaml:"interest1099Amount"`
	Dividends1099Amount Amount `json:"dividends1099Amount" yaml:"dividends1099Amount"`
	OtherIncomeAmount   Amount `json:"otherIncomeAmount" yaml:"otherIncomeAmount"`
}

// DeductionChoices holds the standard/itemize choice and the per-item
// checkboxes shown on the deductions step.
type DeductionChoices struct {
	Standard            bool `json:"standard" yaml:"standard"`
	Itemize             bool `json:"itemize" yaml:"itemize"`
	StudentLoanInterest bool `json:"studentLoanInterest" yaml:"studentLoanInterest"`
	MortgageInterest    bool `json:"mortgageInterest" yaml:"mortgageInterest"`
	Charity             bool `json:"charity" yaml:"charity"`
	EducationExpenses   bool `json:"educationExpenses" yaml:"educationExpenses"`
	Childcare           bool `json:"childcare" yaml:"childcare"`
}

// DeductionDetails holds deduction and adjustment amounts.
type DeductionDetails struct {
	StudentLoanInterestAmount Amount `json:"studentLoanInterestAmount" yaml:"studentLoanInterestAmount"`
	MortgageInterestAmount    Amount `json:"mortgageInterestAmount" yaml:"mortgageInterestAmount"`
	CharityAmount             Amount `json:"charityAmount" yaml:"charityAmount"`
	EducationExpensesAmount   Amount `json:"educationExpensesAmount" yaml:"educationExpensesAmount"`
	ChildcareAmount           Amount `json:"childcareAmount" yaml:"childcareAmount"`
	MedicalExpenses           Amount `json:"medicalExpenses" yaml:"medicalExpenses"`
	StateLocalTaxes           Amount `json:"stateLocalTaxes" yaml:"stateLocalTaxes"`
	PropertyTaxes             Amount `json:"propertyTaxes" yaml:"propertyTaxes"`
}

type HealthCoverage struct {
	HadMarketplaceCoverage bool `json:"hadMarketplaceCoverage" yaml:"hadMarketplaceCoverage"`
	HadHSA                 bool `json:"hadHsa" yaml:"hadHsa"`
}

type EducationInfo struct {
	PaidTuition1098T        bool `json:"paidTuition1098T" yaml:"paidTuition1098T"`
	StudentLoanInterestPaid bool `json:"studentLoanInterestPaid" yaml:"studentLoanInterestPaid"`
}

type RetirementChoices struct {
	IRAContrib   bool `json:"iraContrib" yaml:"iraContrib"`
	RothContrib  bool `json:"rothContrib" yaml:"rothContrib"`
	Employer401k bool `json:"employer401k" yaml:"employer401k"`
}

type RetirementDetails struct {
	IRAContribAmount   Amount `json:"iraContribAmount" yaml:"iraContribAmount"`
	RothContribAmount  Amount `json:"rothContribAmount" yaml:"rothContribAmount"`
	Employer401kAmount Amount `json:"employer401kAmount" yaml:"employer401kAmount"`
}

type EstimatedPayments struct {
	MadeEstimatedPayments bool   `json:"madeEstimatedPayments" yaml:"madeEstimatedPayments"`
	AmountEstimated       Amount `json:"amountEstimated" yaml:"amountEstimated"`
}

// OtherSituations are informational flags that do not affect the estimate.
type OtherSituations struct {
	MovedStates    bool `json:"movedStates" yaml:"movedStates"`
	DisasterRelief bool `json:"disasterRelief" yaml:"disasterRelief"`
	ForeignIncome  bool `json:"foreignIncome" yaml:"foreignIncome"`
}

// TaxpayerDraft is the in-progress return collected by the wizard.
// Its JSON form is the persisted blob.
type TaxpayerDraft struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	DOB       string `json:"dob" yaml:"dob"`
	SSN       string `json:"ssn" yaml:"ssn"`
	Email     string `json:"email" yaml:"email"`

	FilingStatus    FilingStatus `json:"filingStatus" yaml:"filingStatus"`
	HasDependents   *bool        `json:"hasDependents" yaml:"hasDependents"`
	DependentsCount *int         `json:"dependentsCount" yaml:"dependentsCount"`

	Income            IncomeSources     `json:"income" yaml:"income"`
	IncomeDetails     IncomeDetails     `json:"incomeDetails" yaml:"incomeDetails"`
	Deductions        DeductionChoices  `json:"deductions" yaml:"deductions"`
	DeductionDetails  DeductionDetails  `json:"deductionDetails" yaml:"deductionDetails"`
	State             string            `json:"state" yaml:"state"`
	Health            HealthCoverage    `json:"health" yaml:"health"`
	Education         EducationInfo     `json:"education" yaml:"education"`
	Retirement        RetirementChoices `json:"retirement" yaml:"retirement"`
	RetirementDetails RetirementDetails `json:"retirementDetails" yaml:"retirementDetails"`
	Payments          EstimatedPayments `json:"payments" yaml:"payments"`
	Other             OtherSituations   `json:"other" yaml:"other"`
}

// NewDraft returns an empty draft with the standard deduction preselected.
func NewDraft() TaxpayerDraft {
	return TaxpayerDraft{
		Deductions: DeductionChoices{Standard: true},
	}
}

// Dependents returns the dependent count, treating a missing or negative
// count, or a "no" answer, as zero.
func (d TaxpayerDraft) Dependents() int {
	if d.HasDependents != nil && !*d.HasDependents {
		return 0
	}
	if d.DependentsCount == nil || *d.DependentsCount < 0 {
		return 0
	}
	return *d.DependentsCount
}

// ChooseStandard selects the standard deduction.
func (d *TaxpayerDraft) ChooseStandard() {
	d.Deductions.Standard = true
	d.Deductions.Itemize = false
}

// ChooseItemize selects itemized deductions.
func (d *TaxpayerDraft) ChooseItemize() {
	d.Deductions.Standard = false
	d.Deductions.Itemize = true
}

// SetDependents sets both dependent fields consistently.
func (d *TaxpayerDraft) SetDependents(n int) {
	has := n > 0
	if n < 0 {
		n = 0
	}
	d.HasDependents = &has
	d.DependentsCount = &n
}

// Clone returns a deep copy of the draft.
func (d TaxpayerDraft) Clone() TaxpayerDraft {
	out := d
	if d.HasDependents != nil {
		v := *d.HasDependents
		out.HasDependents = &v
	}
	if d.DependentsCount != nil {
		v := *d.DependentsCount
		out.DependentsCount = &v
	}
	return out
}

// FullName joins first and last name.
func (d TaxpayerDraft) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}
