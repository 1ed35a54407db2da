package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/money"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single what-if with calculated metrics
type ComparisonResult struct {
	ScenarioName string                      `json:"scenarioName"`
	Description  string                      `json:"description"`
	Result       domain.TaxCalculationResult `json:"result"`

	// Key Metrics
	TotalTax      decimal.Decimal `json:"totalTax"`
	FederalTax    decimal.Decimal `json:"federalTax"`
	StateTax      decimal.Decimal `json:"stateTax"`
	Net           decimal.Decimal `json:"net"` // refund positive, owed negative
	EffectiveRate decimal.Decimal `json:"effectiveRate"`

	// Comparison to Base
	TaxDiffFromBase decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase  decimal.Decimal `json:"taxPctFromBase"`
	NetDiffFromBase decimal.Decimal `json:"netDiffFromBase"`
}

// ComparisonSet represents a collection of what-if comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	DraftSource        string             `json:"draftSource,omitempty"`
}

// MetricsCalculator extracts key metrics from calculation results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one result
func (mc *MetricsCalculator) CalculateMetrics(name string, result domain.TaxCalculationResult) ComparisonResult {
	metrics := ComparisonResult{
		ScenarioName: name,
		Result:       result,
		TotalTax:     result.TotalTax,
		FederalTax:   result.FederalTax,
		StateTax:     result.StateTax,
		Net:          result.Net(),
	}
	if result.TotalIncome.IsPositive() {
		metrics.EffectiveRate = result.TotalTax.Div(result.TotalIncome)
	}
	return metrics
}

// CalculateComparison computes deltas between a what-if and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.TotalTax.Sub(base.TotalTax)
	if !base.TotalTax.IsZero() {
		scenario.TaxPctFromBase = scenario.TaxDiffFromBase.
			Div(base.TotalTax).
			Mul(decimal.NewFromInt(100))
	}
	scenario.NetDiffFromBase = scenario.Net.Sub(base.Net)
	return scenario
}

// GenerateRecommendations names the alternative with the best refund and
// the one with the lowest total tax, when they beat the base.
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	bestNet := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Net.GreaterThan(bestNet.Net) {
			bestNet = alt
		}
	}
	if bestNet != compSet.BaseResult {
		gain := bestNet.Net.Sub(compSet.BaseResult.Net)
		recommendations = append(recommendations,
			fmt.Sprintf("Best Outcome: %s improves your refund or balance due by %s", bestNet.ScenarioName, money.FormatWhole(gain)))
	}

	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalTax.LessThan(lowestTax.TotalTax) {
			lowestTax = alt
		}
	}
	if lowestTax != compSet.BaseResult {
		savings := compSet.BaseResult.TotalTax.Sub(lowestTax.TotalTax)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Taxes: %s saves %s in total tax", lowestTax.ScenarioName, money.FormatWhole(savings)))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "No alternative beats your current return")
	}
	return recommendations
}
