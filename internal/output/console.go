package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/money"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter prints the review summary shown before filing.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	d := r.Draft
	ws := r.Worksheet
	res := ws.Result

	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "%d TAX RETURN ESTIMATE\n", r.TaxYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	if name := d.FullName(); name != "" {
		fmt.Fprintf(&buf, "Taxpayer:        %s\n", name)
	}
	fmt.Fprintf(&buf, "Filing status:   %s\n", d.FilingStatus.Label())
	if ws.StateName != "" {
		fmt.Fprintf(&buf, "State:           %s\n", ws.StateName)
	}
	if ws.Dependents > 0 {
		fmt.Fprintf(&buf, "Dependents:      %d\n", ws.Dependents)
	}
	if r.Status != nil {
		fmt.Fprintf(&buf, "Return status:   %s\n", r.Status.Step)
	}
	fmt.Fprintln(&buf)

	writeRow := func(label string, amount decimal.Decimal) {
		fmt.Fprintf(&buf, "  %-28s %16s\n", label, money.FormatCurrency(amount))
	}

	fmt.Fprintln(&buf, "INCOME")
	writeRow("Total income", res.TotalIncome)
	writeRow("Adjustments", ws.TotalAdjustments)
	writeRow("Adjusted gross income", res.AdjustedGrossIncome)
	writeRow(deductionLabel(ws.DeductionMethod), ws.DeductionUsed)
	writeRow("Taxable income", res.TaxableIncome)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "TAX")
	writeRow("Federal tax", res.FederalTax)
	if ws.ChildTaxCredit.IsPositive() {
		writeRow("  after child tax credit of", ws.ChildTaxCredit)
	}
	writeRow("State tax", res.StateTax)
	writeRow("Self-employment tax", res.SelfEmploymentTax)
	writeRow("Total tax", res.TotalTax)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "PAYMENTS")
	writeRow("Federal withheld", res.FederalWithheld)
	writeRow("State withheld", res.StateWithheld)
	writeRow("Estimated payments", res.EstimatedPayments)
	writeRow("Total payments", res.TotalPayments())
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	fmt.Fprintf(&buf, "%-30s %16s\n", strings.ToUpper(BalanceLabel(res)), money.FormatCurrency(res.RefundOrOwed))
	if res.TotalIncome.IsPositive() {
		rate := res.TotalTax.Div(res.TotalIncome)
		fmt.Fprintf(&buf, "Effective tax rate: %s\n", money.FormatPercentage(rate))
	}
	return buf.Bytes(), nil
}
