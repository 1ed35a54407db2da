package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/wizard"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a basic test draft
func createTestDraft() domain.TaxpayerDraft {
	d := domain.NewDraft()
	d.FirstName, d.LastName = "Alice", "Nguyen"
	d.FilingStatus = domain.FilingStatusSingle
	d.IncomeDetails.W2Wages = "85000"
	d.State = "CA"
	d.SetDependents(1)
	return d
}

func TestApplyTransforms_Empty(t *testing.T) {
	base := createTestDraft()

	result, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.Equal(t, base, result)

	*result.DependentsCount = 4
	assert.Equal(t, 1, base.Dependents(), "result is a copy")
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := createTestDraft()

	result, err := ApplyTransforms(base, []DraftTransform{
		&SetState{Code: "TX"},
		&SetFilingStatus{Status: domain.FilingStatusHOH},
		&SetIRA{Amount: decimal.NewFromInt(6500)},
		&Itemize{},
		&SetDependents{Count: 3},
		&SetEstimatedPayments{Amount: decimal.NewFromInt(1200)},
	})
	require.NoError(t, err)

	assert.Equal(t, "TX", result.State)
	assert.Equal(t, domain.FilingStatusHOH, result.FilingStatus)
	assert.True(t, result.Retirement.IRAContrib)
	assert.Equal(t, domain.Amount("6500"), result.RetirementDetails.IRAContribAmount)
	assert.True(t, result.Deductions.Itemize)
	assert.False(t, result.Deductions.Standard)
	assert.Equal(t, 3, result.Dependents())
	assert.True(t, result.Payments.MadeEstimatedPayments)
	assert.Equal(t, domain.Amount("1200"), result.Payments.AmountEstimated)

	assert.Equal(t, createTestDraft(), base, "base draft is unchanged")
}

func TestApplyTransforms_Errors(t *testing.T) {
	base := createTestDraft()

	tests := []struct {
		name       string
		transforms []DraftTransform
		contains   string
	}{
		{"nil transform", []DraftTransform{&Itemize{}, nil}, "index 1 is nil"},
		{"bad state code", []DraftTransform{&SetState{Code: "Texas"}}, "set_state validation failed"},
		{"bad filing status", []DraftTransform{&SetFilingStatus{Status: "widow"}}, "unknown filing status"},
		{"negative ira", []DraftTransform{&SetIRA{Amount: decimal.NewFromInt(-1)}}, "cannot be negative"},
		{"negative dependents", []DraftTransform{&SetDependents{Count: -2}}, "non-negative"},
		{"negative payments", []DraftTransform{&SetEstimatedPayments{Amount: decimal.NewFromInt(-5)}}, "cannot be negative"},
		{"unknown field", []DraftTransform{&SetField{Key: "salary", Value: "1"}}, "unknown field"},
		{"bad field value", []DraftTransform{&SetField{Key: "dependentsCount", Value: "many"}}, "set_field failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ApplyTransforms(base, tt.transforms)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Equal(t, base, result, "base returned on error")
		})
	}
}

func TestTransformError(t *testing.T) {
	inner := errors.New("boom")
	err := NewTransformError("set_field", "apply", "could not set field", inner)

	assert.Equal(t, "transform set_field (apply): could not set field: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	var te *TransformError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "set_field", te.TransformName)

	plain := NewTransformError("set_ira", "validate", "amount cannot be negative", nil)
	assert.Equal(t, "transform set_ira (validate): amount cannot be negative", plain.Error())
}

func TestSetField_UnknownWrapsSentinel(t *testing.T) {
	err := (&SetField{Key: "nope"}).Validate(createTestDraft())
	assert.ErrorIs(t, err, wizard.ErrUnknownField)
}

func TestDescriptions(t *testing.T) {
	tests := []struct {
		transform DraftTransform
		want      string
	}{
		{&SetState{Code: "TX"}, "Move to TX"},
		{&SetState{Code: "TX", Label: "Texas"}, "Move to Texas"},
		{&SetFilingStatus{Status: domain.FilingStatusMarried}, "File as Married filing jointly"},
		{&Itemize{}, "Itemize deductions"},
		{&Standard{}, "Take the standard deduction"},
		{&SetIRA{Amount: decimal.NewFromInt(7000)}, "Contribute $7,000.00 to a traditional IRA"},
		{&SetDependents{Count: 1}, "Claim 1 dependent"},
		{&SetDependents{Count: 2}, "Claim 2 dependents"},
		{&SetEstimatedPayments{Amount: decimal.NewFromInt(900)}, "Make $900.00 in estimated payments"},
		{&SetField{Key: "state", Value: "OR"}, `Set state to "OR"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.transform.Description())
	}

	assert.Equal(t, "Itemize deductions; Move to TX", Describe([]DraftTransform{&Itemize{}, &SetState{Code: "TX"}}))
}

func TestSetIRA_ZeroClearsFlag(t *testing.T) {
	base := createTestDraft()
	base.Retirement.IRAContrib = true

	result, err := (&SetIRA{Amount: decimal.Zero}).Apply(base)
	require.NoError(t, err)
	assert.False(t, result.Retirement.IRAContrib)
	assert.Equal(t, domain.Amount("0"), result.RetirementDetails.IRAContribAmount)
}
