package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing what-ifs
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("WHAT-IF COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base: %s\n", compSet.BaseScenarioName))
	if compSet.DraftSource != "" {
		sb.WriteString(fmt.Sprintf("Draft: %s\n", compSet.DraftSource))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Federal",
		numWidth, "State",
		numWidth, "Total Tax",
		numWidth, "Refund/Owed"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}
			sb.WriteString(fmt.Sprintf("  Total Tax:        %s%s (%s%%)\n",
				deltaSymbol(alt.TaxDiffFromBase),
				money.FormatCurrency(alt.TaxDiffFromBase.Abs()),
				alt.TaxPctFromBase.StringFixed(1)))
			if !alt.NetDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Refund Impact:    %s%s\n",
					deltaSymbol(alt.NetDiffFromBase),
					money.FormatCurrency(alt.NetDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatCompact prints one line per scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder
	if compSet.BaseResult != nil {
		sb.WriteString(fmt.Sprintf("%s (base): tax %s, %s\n",
			compSet.BaseResult.ScenarioName,
			money.FormatWhole(compSet.BaseResult.TotalTax),
			netLabel(compSet.BaseResult.Net)))
	}
	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(fmt.Sprintf("%s: tax %s (%s%s), %s\n",
			alt.ScenarioName,
			money.FormatWhole(alt.TotalTax),
			deltaSymbol(alt.TaxDiffFromBase),
			money.FormatWhole(alt.TaxDiffFromBase.Abs()),
			netLabel(alt.Net)))
	}
	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, truncate(name, nameWidth),
		numWidth, money.FormatWhole(result.FederalTax),
		numWidth, money.FormatWhole(result.StateTax),
		numWidth, money.FormatWhole(result.TotalTax),
		numWidth, money.FormatWhole(result.Net))
}

func netLabel(net decimal.Decimal) string {
	if net.IsNegative() {
		return "owe " + money.FormatWhole(net.Abs())
	}
	return "refund " + money.FormatWhole(net)
}

func deltaSymbol(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-"
	}
	return "+"
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
