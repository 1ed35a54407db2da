package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDraft(t *testing.T) {
	d := NewDraft()

	assert.True(t, d.Deductions.Standard, "standard deduction is preselected")
	assert.False(t, d.Deductions.Itemize)
	assert.Equal(t, FilingStatusUnset, d.FilingStatus)
	assert.Nil(t, d.HasDependents, "dependents question starts unanswered")
	assert.Nil(t, d.DependentsCount)
	assert.Equal(t, 0, d.Dependents())
}

func TestTaxpayerDraft_Dependents(t *testing.T) {
	yes, no := true, false
	three, negative := 3, -2

	tests := []struct {
		name  string
		has   *bool
		count *int
		want  int
	}{
		{"unanswered", nil, nil, 0},
		{"answered no with stale count", &no, &three, 0},
		{"answered yes", &yes, &three, 3},
		{"negative count", &yes, &negative, 0},
		{"count without answer", nil, &three, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := TaxpayerDraft{HasDependents: tt.has, DependentsCount: tt.count}
			assert.Equal(t, tt.want, d.Dependents())
		})
	}
}

func TestTaxpayerDraft_DeductionChoiceIsExclusive(t *testing.T) {
	d := NewDraft()

	d.ChooseItemize()
	assert.True(t, d.Deductions.Itemize)
	assert.False(t, d.Deductions.Standard)

	d.ChooseStandard()
	assert.True(t, d.Deductions.Standard)
	assert.False(t, d.Deductions.Itemize)
}

func TestTaxpayerDraft_CloneIsDeep(t *testing.T) {
	d := NewDraft()
	d.SetDependents(2)

	c := d.Clone()
	*c.DependentsCount = 5

	assert.Equal(t, 2, *d.DependentsCount)
	assert.Equal(t, 5, *c.DependentsCount)
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Amount
	}{
		{"string", `"1,234.56"`, "1,234.56"},
		{"number", `1234.5`, "1234.5"},
		{"null", `null`, ""},
		{"empty", `""`, ""},
		{"object", `{"x":1}`, ""},
		{"bool", `true`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.in), &a))
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestTaxpayerDraft_JSONShape(t *testing.T) {
	d := NewDraft()
	d.FirstName = "Ada"
	d.FilingStatus = FilingStatusHOH
	d.IncomeDetails.W2Wages = "52,000"

	data, err := json.Marshal(d)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Ada", raw["firstName"])
	assert.Equal(t, "hoh", raw["filingStatus"])
	assert.Nil(t, raw["hasDependents"])
	details := raw["incomeDetails"].(map[string]any)
	assert.Equal(t, "52,000", details["w2Wages"])
}

func TestParseFilingStatus(t *testing.T) {
	tests := []struct {
		in   string
		want FilingStatus
		ok   bool
	}{
		{"single", FilingStatusSingle, true},
		{"MFJ", FilingStatusMarried, true},
		{" head_of_household ", FilingStatusHOH, true},
		{"", FilingStatusUnset, true},
		{"widow", FilingStatusUnset, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFilingStatus(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestFederalRules_Schedule(t *testing.T) {
	single := []FederalBracket{{Threshold: decimal.Zero, Rate: decimal.RequireFromString("0.10")}}
	married := []FederalBracket{{Threshold: decimal.Zero, Rate: decimal.RequireFromString("0.11")}}
	rules := FederalRules{Single: single, Married: married}

	assert.Equal(t, married, rules.Schedule(FilingStatusMarried))
	assert.Equal(t, single, rules.Schedule(FilingStatusSingle))
	assert.Equal(t, single, rules.Schedule(FilingStatusHOH), "head of household falls back to single")
	assert.Equal(t, single, rules.Schedule(FilingStatusUnset))

	hoh := []FederalBracket{{Threshold: decimal.Zero, Rate: decimal.RequireFromString("0.09")}}
	rules.HeadOfHousehold = hoh
	assert.Equal(t, hoh, rules.Schedule(FilingStatusHOH))
}

func TestFilingStatusAmounts_For(t *testing.T) {
	a := FilingStatusAmounts{
		Single:          decimal.NewFromInt(1),
		MarriedJoint:    decimal.NewFromInt(2),
		MarriedSeparate: decimal.NewFromInt(3),
		HeadOfHousehold: decimal.NewFromInt(4),
	}

	assert.True(t, a.For(FilingStatusSingle).Equal(decimal.NewFromInt(1)))
	assert.True(t, a.For(FilingStatusMarried).Equal(decimal.NewFromInt(2)))
	assert.True(t, a.For(FilingStatusHOH).Equal(decimal.NewFromInt(4)))
	assert.True(t, a.For(FilingStatusUnset).Equal(decimal.NewFromInt(1)))
}

func TestTaxCalculationResult_Net(t *testing.T) {
	refund := TaxCalculationResult{RefundOrOwed: decimal.NewFromInt(100), IsRefund: true}
	owed := TaxCalculationResult{RefundOrOwed: decimal.NewFromInt(100)}

	assert.True(t, refund.Net().Equal(decimal.NewFromInt(100)))
	assert.True(t, owed.Net().Equal(decimal.NewFromInt(-100)))
}
