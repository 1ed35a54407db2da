package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/jurisdiction"
	"github.com/rgehrsitz/taxpilot/internal/money"
	"github.com/rgehrsitz/taxpilot/internal/wizard"
	"github.com/shopspring/decimal"
)

// SetState moves the taxpayer to another state.
type SetState struct {
	Code  string
	Label string // display name, optional
}

func (t *SetState) Name() string { return "set_state" }

func (t *SetState) Description() string {
	if t.Label != "" {
		return fmt.Sprintf("Move to %s", t.Label)
	}
	return fmt.Sprintf("Move to %s", t.Code)
}

func (t *SetState) Validate(domain.TaxpayerDraft) error {
	if len(t.Code) != 2 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("state code must be two letters, got %q", t.Code), nil)
	}
	return nil
}

func (t *SetState) Apply(base domain.TaxpayerDraft) (domain.TaxpayerDraft, error) {
	d := base.Clone()
	d.State = t.Code
	return d, nil
}

// SetFilingStatus changes the filing status.
type SetFilingStatus struct {
	Status domain.FilingStatus
}

func (t *SetFilingStatus) Name() string { return "set_filing_status" }

func (t *SetFilingStatus) Description() string {
	return fmt.Sprintf("File as %s", t.Status.Label())
}

func (t *SetFilingStatus) Validate(domain.TaxpayerDraft) error {
	if !t.Status.Valid() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown filing status %q", t.Status), nil)
	}
	return nil
}

func (t *SetFilingStatus) Apply(base domain.TaxpayerDraft) (domain.TaxpayerDraft, error) {
	d := base.Clone()
	d.FilingStatus = t.Status
	return d, nil
}

// Itemize switches to itemized deductions.
type Itemize struct{}

func (t *Itemize) Name() string                        { return "itemize" }
func (t *Itemize) Description() string                 { return "Itemize deductions" }
func (t *Itemize) Validate(domain.TaxpayerDraft) error { return nil }

func (t *Itemize) Apply(base domain.TaxpayerDraft) (domain.TaxpayerDraft, error) {
	d := base.Clone()
	d.ChooseItemize()
	return d, nil
}

// Standard switches to the standard deduction.
type Standard struct{}

func (t *Standard) Name() string                        { return "standard" }
func (t *Standard) Description() string                 { return "Take the standard deduction" }
func (t *Standard) Validate(domain.TaxpayerDraft) error { return nil }

func (t *Standard) Apply(base domain.TaxpayerDraft) (domain.TaxpayerDraft, error) {
	d := base.Clone()
	d.ChooseStandard()
	return d, nil
}

// SetIRA sets the traditional IRA contribution.
type SetIRA struct {
	Amount decimal.Decimal
}

func (t *SetIRA) Name() string { return "set_ira" }

func (t *SetIRA) Description() string {
	return fmt.Sprintf("Contribute %s to a traditional IRA", money.FormatCurrency(t.Amount))
}

func (t *SetIRA) Validate(domain.TaxpayerDraft) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetIRA) Apply(base domain.TaxpayerDraft) (domain.TaxpayerDraft, error) {
	d := base.Clone()
	d.Retirement.IRAContrib = t.Amount.IsPositive()
	d.RetirementDetails.IRAContribAmount = domain.Amount(t.Amount.String())
	return d, nil
}

// SetDependents sets the number of dependents.
type SetDependents struct {
	Count int
}

func (t *SetDependents) Name() string { return "set_dependents" }

func (t *SetDependents) Description() string {
	if t.Count == 1 {
		return "Claim 1 dependent"
	}
	return fmt.Sprintf("Claim %d dependents", t.Count)
}

func (t *SetDependents) Validate(domain.TaxpayerDraft) error {
	if t.Count < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("count must be non-negative, got %d", t.Count), nil)
	}
	return nil
}

func (t *SetDependents) Apply(base domain.TaxpayerDraft) (domain.TaxpayerDraft, error) {
	d := base.Clone()
	d.SetDependents(t.Count)
	return d, nil
}

// SetEstimatedPayments sets the total of estimated tax payments made.
type SetEstimatedPayments struct {
	Amount decimal.Decimal
}

func (t *SetEstimatedPayments) Name() string { return "set_estimated_payments" }

func (t *SetEstimatedPayments) Description() string {
	return fmt.Sprintf("Make %s in estimated payments", money.FormatCurrency(t.Amount))
}

func (t *SetEstimatedPayments) Validate(domain.TaxpayerDraft) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", "amount cannot be negative", nil)
	}
	return nil
}

func (t *SetEstimatedPayments) Apply(base domain.TaxpayerDraft) (domain.TaxpayerDraft, error) {
	d := base.Clone()
	d.Payments.MadeEstimatedPayments = t.Amount.IsPositive()
	d.Payments.AmountEstimated = domain.Amount(t.Amount.String())
	return d, nil
}

// SetField assigns any wizard field by key, e.g. incomeDetails.w2Wages.
type SetField struct {
	Key   string
	Value string
}

func (t *SetField) Name() string { return "set_field" }

func (t *SetField) Description() string {
	return fmt.Sprintf("Set %s to %q", t.Key, t.Value)
}

func (t *SetField) Validate(base domain.TaxpayerDraft) error {
	if _, ok := wizard.Lookup(t.Key); !ok {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("unknown field %q", t.Key), wizard.ErrUnknownField)
	}
	return nil
}

func (t *SetField) Apply(base domain.TaxpayerDraft) (domain.TaxpayerDraft, error) {
	d := base.Clone()
	if err := wizard.Set(&d, t.Key, t.Value); err != nil {
		return base, NewTransformError(t.Name(), "apply", "could not set field", err)
	}
	return d, nil
}

// resolveState turns user input into a SetState using the table's names.
func resolveState(table *domain.JurisdictionTable, input string) (*SetState, error) {
	code, err := jurisdiction.Resolve(table, input)
	if err != nil {
		return nil, err
	}
	return &SetState{Code: code, Label: jurisdiction.Name(table, code)}, nil
}
