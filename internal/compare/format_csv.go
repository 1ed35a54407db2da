package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Taxable Income",
		"Federal Tax",
		"State Tax",
		"Self-Employment Tax",
		"Total Tax",
		"Refund Or Owed",
		"Effective Rate",
		"Tax Diff from Base",
		"Tax % Change",
		"Refund Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.Result.TaxableIncome.StringFixed(2),
		result.FederalTax.StringFixed(2),
		result.StateTax.StringFixed(2),
		result.Result.SelfEmploymentTax.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.Net.StringFixed(2),
		result.EffectiveRate.StringFixed(4),
		result.TaxDiffFromBase.StringFixed(2),
		result.TaxPctFromBase.StringFixed(2),
		result.NetDiffFromBase.StringFixed(2),
	}
}
