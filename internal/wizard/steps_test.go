package wizard

import (
	"testing"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps_Order(t *testing.T) {
	want := []Step{
		StepPersonal, StepStatus, StepDependents, StepIncome, StepIncomeDetails,
		StepDeductions, StepDeductionDetails, StepState, StepHealth, StepEducation,
		StepRetirement, StepRetirementDetails, StepPayments, StepOther, StepReview,
	}

	steps := Steps()
	require.Len(t, steps, 15)
	assert.Equal(t, 15, Count())
	for i, s := range steps {
		assert.Equal(t, want[i], s.Key)
		assert.NotEmpty(t, s.Title)
	}

	steps[0].Title = "mutated"
	assert.NotEqual(t, "mutated", Steps()[0].Title, "Steps returns a copy")
}

func TestClampIndexAndAt(t *testing.T) {
	assert.Equal(t, 0, ClampIndex(-3))
	assert.Equal(t, 14, ClampIndex(99))
	assert.Equal(t, 7, ClampIndex(7))
	assert.Equal(t, StepReview, At(100).Key)
	assert.Equal(t, StepPersonal, At(-1).Key)

	i, ok := Index(StepState)
	assert.True(t, ok)
	assert.Equal(t, 7, i)
	_, ok = Index("nope")
	assert.False(t, ok)
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		in      string
		want    Step
		wantErr bool
	}{
		{"personal", StepPersonal, false},
		{"INCOMEDETAILS", StepIncomeDetails, false},
		{"1", StepPersonal, false},
		{"15", StepReview, false},
		{"0", "", true},
		{"16", "", true},
		{"taxes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStep(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStep)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidDOB(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"01/15/1985", true},
		{"12/31/2100", true},
		{"02/31/1990", true},
		{"00/10/1990", false},
		{"13/10/1990", false},
		{"01/00/1990", false},
		{"01/32/1990", false},
		{"01/10/1899", false},
		{"01/10/2101", false},
		{"1/10/1990", false},
		{"1990-01-10", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDOB(tt.in))
		})
	}
}

func issueFields(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Field)
	}
	return out
}

func TestCheck(t *testing.T) {
	yes, no := true, false
	negative, two := -1, 2

	tests := []struct {
		name   string
		step   Step
		draft  func(*domain.TaxpayerDraft)
		fields []string
	}{
		{"personal empty", StepPersonal, func(*domain.TaxpayerDraft) {}, []string{"firstName", "lastName", "email", "dob"}},
		{
			"personal complete", StepPersonal,
			func(d *domain.TaxpayerDraft) {
				d.FirstName, d.LastName, d.Email, d.DOB = "Ann", "Lee", "ann@example.com", "04/05/1980"
			},
			nil,
		},
		{"personal email without at", StepPersonal, func(d *domain.TaxpayerDraft) {
			d.FirstName, d.LastName, d.Email, d.DOB = "Ann", "Lee", "ann.example.com", "04/05/1980"
		}, []string{"email"}},
		{"status unset", StepStatus, func(*domain.TaxpayerDraft) {}, []string{"filingStatus"}},
		{"status set", StepStatus, func(d *domain.TaxpayerDraft) { d.FilingStatus = domain.FilingStatusHOH }, nil},
		{"dependents unanswered", StepDependents, func(*domain.TaxpayerDraft) {}, []string{"hasDependents"}},
		{"dependents no", StepDependents, func(d *domain.TaxpayerDraft) { d.HasDependents = &no }, nil},
		{"dependents no with negative count", StepDependents, func(d *domain.TaxpayerDraft) {
			d.HasDependents, d.DependentsCount = &no, &negative
		}, nil},
		{"dependents yes without count", StepDependents, func(d *domain.TaxpayerDraft) { d.HasDependents = &yes }, nil},
		{"dependents yes negative", StepDependents, func(d *domain.TaxpayerDraft) {
			d.HasDependents, d.DependentsCount = &yes, &negative
		}, []string{"dependentsCount"}},
		{"dependents yes two", StepDependents, func(d *domain.TaxpayerDraft) {
			d.HasDependents, d.DependentsCount = &yes, &two
		}, nil},
		{"income details missing both", StepIncomeDetails, func(d *domain.TaxpayerDraft) {
			d.Income.W2, d.Income.NEC1099 = true, true
		}, []string{"incomeDetails.w2Wages", "incomeDetails.nec1099Amount"}},
		{"income details unchecked sources", StepIncomeDetails, func(*domain.TaxpayerDraft) {}, nil},
		{"state too short", StepState, func(d *domain.TaxpayerDraft) { d.State = " C " }, []string{"state"}},
		{"state ok", StepState, func(d *domain.TaxpayerDraft) { d.State = "CA" }, nil},
		{"health never blocks", StepHealth, func(*domain.TaxpayerDraft) {}, nil},
		{"review never blocks", StepReview, func(*domain.TaxpayerDraft) {}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domain.NewDraft()
			tt.draft(&d)
			issues := Check(tt.step, d)
			assert.Equal(t, tt.fields, nilIfEmpty(issueFields(issues)))
			assert.Equal(t, len(tt.fields) == 0, CanContinue(tt.step, d))
		})
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestFirstIncomplete(t *testing.T) {
	d := domain.NewDraft()
	assert.Equal(t, 0, FirstIncomplete(d))

	d.FirstName, d.LastName, d.Email, d.DOB = "Ann", "Lee", "ann@example.com", "04/05/1980"
	d.FilingStatus = domain.FilingStatusSingle
	assert.Equal(t, 2, FirstIncomplete(d))

	d.SetDependents(0)
	idx, _ := Index(StepState)
	assert.Equal(t, idx, FirstIncomplete(d))

	d.State = "OR"
	assert.Equal(t, Count()-1, FirstIncomplete(d))
}
