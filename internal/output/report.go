// Package output renders a calculated return for people and programs.
package output

import (
	"time"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// Report is everything a formatter needs: the answers, the worksheet behind
// the estimate and, when known, where the return is in the filing process.
type Report struct {
	GeneratedAt time.Time
	TaxYear     int
	Draft       domain.TaxpayerDraft
	Worksheet   domain.Worksheet
	Status      *domain.ReturnStatus
}

// NewReport stamps a report with the current time.
func NewReport(taxYear int, draft domain.TaxpayerDraft, ws domain.Worksheet, status *domain.ReturnStatus) *Report {
	return &Report{
		GeneratedAt: time.Now(),
		TaxYear:     taxYear,
		Draft:       draft,
		Worksheet:   ws,
		Status:      status,
	}
}

// Result is shorthand for the calculated totals.
func (r *Report) Result() domain.TaxCalculationResult { return r.Worksheet.Result }

// Line is one row of the Form 1040 preview.
type Line struct {
	Number string          `json:"line"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
	Total  bool            `json:"total,omitempty"`
}

// Section groups preview lines under a heading.
type Section struct {
	Title string `json:"title"`
	Lines []Line `json:"lines"`
}

// PreviewSections lays the worksheet out the way Form 1040 does. Lines that
// only apply in some situations (state tax, credits, self-employment tax,
// estimated payments) are left out when they do not.
func PreviewSections(r *Report) []Section {
	ws := r.Worksheet
	res := ws.Result
	hasState := ws.StateName != ""
	stateLabel := ws.StateName

	income := Section{Title: "Income", Lines: []Line{
		{Number: "1", Label: "Wages, salaries, tips", Amount: ws.W2Wages},
		{Number: "2b", Label: "Taxable interest", Amount: ws.InterestIncome},
		{Number: "3b", Label: "Ordinary dividends", Amount: ws.DividendIncome},
		{Number: "8", Label: "Business income (1099-NEC)", Amount: ws.BusinessIncome},
		{Number: "8z", Label: "Other income", Amount: ws.OtherIncome},
		{Number: "9", Label: "Total income", Amount: res.TotalIncome, Total: true},
	}}

	adjustments := Section{Title: "Adjustments", Lines: []Line{
		{Number: "10", Label: "IRA deduction", Amount: ws.IRADeduction},
		{Number: "10", Label: "Student loan interest deduction", Amount: ws.StudentLoanInterest},
		{Number: "10", Label: "Deductible part of self-employment tax", Amount: ws.SEDeductibleHalf},
		{Number: "10", Label: "Total adjustments to income", Amount: ws.TotalAdjustments},
		{Number: "11", Label: "Adjusted gross income", Amount: res.AdjustedGrossIncome, Total: true},
		{Number: "12", Label: deductionLabel(ws.DeductionMethod), Amount: ws.DeductionUsed},
		{Number: "15", Label: "Taxable income", Amount: res.TaxableIncome, Total: true},
	}}

	tax := Section{Title: "Tax and credits"}
	if ws.ChildTaxCredit.IsPositive() {
		tax.Lines = append(tax.Lines,
			Line{Number: "16", Label: "Tax", Amount: ws.FederalTaxBeforeCredits},
			Line{Number: "19", Label: "Child tax credit", Amount: ws.ChildTaxCredit},
			Line{Number: "22", Label: "Federal tax after credits", Amount: res.FederalTax},
		)
	} else {
		tax.Lines = append(tax.Lines, Line{Number: "16", Label: "Federal tax", Amount: res.FederalTax})
	}
	if res.SelfEmploymentTax.IsPositive() {
		tax.Lines = append(tax.Lines, Line{Number: "23", Label: "Self-employment tax", Amount: res.SelfEmploymentTax})
	}
	if hasState {
		tax.Lines = append(tax.Lines, Line{Label: stateLabel + " state tax", Amount: res.StateTax})
	}
	tax.Lines = append(tax.Lines, Line{Number: "24", Label: "Total tax", Amount: res.TotalTax, Total: true})

	payments := Section{Title: "Payments", Lines: []Line{
		{Number: "25a", Label: "Federal income tax withheld", Amount: res.FederalWithheld},
	}}
	if hasState {
		payments.Lines = append(payments.Lines, Line{Label: stateLabel + " state tax withheld", Amount: res.StateWithheld})
	}
	if res.EstimatedPayments.IsPositive() {
		payments.Lines = append(payments.Lines, Line{Number: "26", Label: "Estimated tax payments", Amount: res.EstimatedPayments})
	}
	payments.Lines = append(payments.Lines, Line{Number: "33", Label: "Total payments", Amount: res.TotalPayments(), Total: true})

	refund, owed := decimal.Zero, decimal.Zero
	if res.IsRefund {
		refund = res.RefundOrOwed
	} else {
		owed = res.RefundOrOwed
	}
	balance := Section{Title: "Refund or amount you owe", Lines: []Line{
		{Number: "34", Label: "Refund", Amount: refund, Total: true},
		{Number: "37", Label: "Amount you owe", Amount: owed, Total: true},
	}}

	return []Section{income, adjustments, tax, payments, balance}
}

func deductionLabel(m domain.DeductionMethod) string {
	if m == domain.DeductionItemized {
		return "Itemized deductions"
	}
	return "Standard deduction"
}

// BalanceLabel is "Estimated refund" or "Amount you owe".
func BalanceLabel(res domain.TaxCalculationResult) string {
	if res.IsRefund {
		return "Estimated refund"
	}
	return "Amount you owe"
}
