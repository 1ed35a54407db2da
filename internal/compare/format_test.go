package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "current",
		DraftSource:      "draft.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName: "current",
			FederalTax:   decimal.NewFromInt(5216),
			StateTax:     decimal.NewFromInt(1999),
			TotalTax:     decimal.NewFromInt(7215),
			Net:          decimal.NewFromInt(2785),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:    "move_tx",
				Description:     "Live in Texas, which has no state income tax",
				FederalTax:      decimal.NewFromInt(5216),
				TotalTax:        decimal.NewFromInt(5216),
				Net:             decimal.NewFromInt(4784),
				TaxDiffFromBase: decimal.NewFromInt(-1999),
				TaxPctFromBase:  decimal.RequireFromString("-27.7"),
				NetDiffFromBase: decimal.NewFromInt(1999),
			},
		},
		Recommendations: []string{"Lowest Taxes: move_tx saves $1,999 in total tax"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(sampleSet())

	for _, want := range []string{
		"WHAT-IF COMPARISON",
		"Base: current",
		"Draft: draft.yaml",
		"current (base)",
		"$7,215",
		"move_tx:",
		"Total Tax:        -$1,999.00 (-27.7%)",
		"Refund Impact:    +$1,999.00",
		"RECOMMENDATIONS",
		"• Lowest Taxes",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}
	set := sampleSet()
	set.AlternativeResults = nil
	set.Recommendations = nil

	result := formatter.Format(set)
	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("did not expect comparison section without alternatives")
	}
	if strings.Contains(result, "RECOMMENDATIONS") {
		t.Error("did not expect recommendations section")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.FormatCompact(sampleSet())

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), result)
	}
	if lines[0] != "current (base): tax $7,215, refund $2,785" {
		t.Errorf("unexpected base line %q", lines[0])
	}
	if lines[1] != "move_tx: tax $5,216 (-$1,999), refund $4,784" {
		t.Errorf("unexpected alternative line %q", lines[1])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a much longer scenario name", 10, "a much ..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}
	out, err := formatter.Format(sampleSet())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[1][0] != "current" || records[1][1] != "base" {
		t.Errorf("unexpected base row %v", records[1])
	}
	if records[2][1] != "alternative" || records[2][9] != "-1999.00" {
		t.Errorf("unexpected alternative row %v", records[2])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{true, false} {
		formatter := &JSONFormatter{Pretty: pretty}
		out, err := formatter.Format(sampleSet())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pretty != strings.Contains(out, "\n  ") {
			t.Errorf("pretty=%v produced %q", pretty, out)
		}

		var decoded ComparisonSet
		if err := json.Unmarshal([]byte(out), &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.BaseScenarioName != "current" || len(decoded.AlternativeResults) != 1 {
			t.Errorf("unexpected decoded set %+v", decoded)
		}
	}
}
