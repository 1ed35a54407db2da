package calculation

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/jurisdiction"
	"github.com/rgehrsitz/taxpilot/internal/money"
	"github.com/shopspring/decimal"
)

// Options are calculation policies that are not part of the tax table.
type Options struct {
	// ApplyChildTaxCredit subtracts the child tax credit from federal tax.
	ApplyChildTaxCredit bool
}

// Engine turns a taxpayer draft into a tax estimate. It holds no per-draft
// state, so one engine can serve any number of callers.
type Engine struct {
	Table       *domain.JurisdictionTable
	FederalCalc *FederalTaxCalculator
	StateCalc   *StateTaxCalculator
	SECalc      *SelfEmploymentTaxCalculator
	Options     Options
	Logger      Logger
}

// NewEngine creates an engine for table. A nil table selects the built-in one.
func NewEngine(table *domain.JurisdictionTable) *Engine {
	return NewEngineWithOptions(table, Options{})
}

// NewEngineWithOptions creates an engine with explicit calculation policies
func NewEngineWithOptions(table *domain.JurisdictionTable, opts Options) *Engine {
	if table == nil {
		table = jurisdiction.Default()
	}
	return &Engine{
		Table:       table,
		FederalCalc: NewFederalTaxCalculator(table.Federal),
		StateCalc:   NewStateTaxCalculator(table),
		SECalc:      NewSelfEmploymentTaxCalculator(table.Federal.SelfEmployment),
		Options:     opts,
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the engine. Nil restores the no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Calculate returns the estimate for a draft. It never fails: unparseable or
// negative amounts count as zero.
func (e *Engine) Calculate(draft domain.TaxpayerDraft) domain.TaxCalculationResult {
	return e.Worksheet(draft).Result
}

// Worksheet returns the estimate together with the intermediate lines.
func (e *Engine) Worksheet(draft domain.TaxpayerDraft) domain.Worksheet {
	rules := e.Table.Federal
	inc := draft.IncomeDetails
	ded := draft.DeductionDetails
	status := draft.FilingStatus
	dependents := draft.Dependents()

	ws := domain.Worksheet{
		W2Wages:        money.NonNegative(inc.W2Wages),
		BusinessIncome: money.NonNegative(inc.NEC1099Amount),
		InterestIncome: money.NonNegative(inc.Interest1099Amount),
		DividendIncome: money.NonNegative(inc.Dividends1099Amount),
		OtherIncome:    money.NonNegative(inc.MISC1099Amount).Add(money.NonNegative(inc.OtherIncomeAmount)),
		StateCode:      draft.State,
		StateName:      jurisdiction.Name(e.Table, draft.State),
		FilingStatus:   status,
		Dependents:     dependents,
	}

	// Income
	totalIncome := ws.W2Wages.Add(ws.BusinessIncome).Add(ws.InterestIncome).Add(ws.DividendIncome).Add(ws.OtherIncome)

	// Self-employment tax; half of it is an adjustment to income
	se := e.SECalc.Calculate(ws.BusinessIncome)
	ws.SEDeductibleHalf = se.DeductibleHalf

	// Adjustments. Only the traditional IRA is deductible.
	ws.StudentLoanInterest = decimal.Min(money.NonNegative(ded.StudentLoanInterestAmount), rules.StudentLoanInterestCap)
	ws.IRADeduction = decimal.Min(money.NonNegative(draft.RetirementDetails.IRAContribAmount), rules.IRADeductionCap)
	ws.TotalAdjustments = ws.SEDeductibleHalf.Add(ws.StudentLoanInterest).Add(ws.IRADeduction)

	agi := floorZero(totalIncome.Sub(ws.TotalAdjustments))

	// Deductions
	ws.StandardDeduction = e.FederalCalc.StandardDeduction(status)
	ws.ItemizedDeductions = itemizedTotal(ded)
	ws.DeductionUsed, ws.DeductionMethod = ws.StandardDeduction, domain.DeductionStandard
	if draft.Deductions.Itemize && ws.ItemizedDeductions.GreaterThan(ws.StandardDeduction) {
		ws.DeductionUsed, ws.DeductionMethod = ws.ItemizedDeductions, domain.DeductionItemized
	}

	taxable := floorZero(agi.Sub(ws.DeductionUsed))

	// Federal tax
	ws.FederalTaxBeforeCredits = e.FederalCalc.CalculateFederalTax(taxable, status)
	ws.ChildTaxCredit = decimal.Zero
	if e.Options.ApplyChildTaxCredit {
		ws.ChildTaxCredit = e.FederalCalc.ChildTaxCredit(ws.FederalTaxBeforeCredits, dependents)
	}
	federalTax := ws.FederalTaxBeforeCredits.Sub(ws.ChildTaxCredit)

	// State tax on AGI
	stateTax := e.StateCalc.CalculateStateTax(draft.State, agi, status, dependents)

	totalTax := federalTax.Add(stateTax).Add(se.Tax)

	result := domain.TaxCalculationResult{
		TotalIncome:         totalIncome,
		AdjustedGrossIncome: agi,
		TaxableIncome:       taxable,
		FederalTax:          federalTax,
		StateTax:            stateTax,
		SelfEmploymentTax:   se.Tax,
		TotalTax:            totalTax,
		FederalWithheld:     money.NonNegative(inc.W2FederalWithheld),
		StateWithheld:       money.NonNegative(inc.W2StateWithheld),
		EstimatedPayments:   money.NonNegative(draft.Payments.AmountEstimated),
	}

	net := result.TotalPayments().Sub(totalTax)
	result.IsRefund = net.GreaterThan(decimal.Zero)
	result.RefundOrOwed = net.Abs()
	ws.Result = result

	e.Logger.Debugf("calculated draft: status=%q state=%q agi=%s taxable=%s federal=%s state=%s se=%s net=%s",
		status, draft.State, agi.StringFixed(2), taxable.StringFixed(2), federalTax.StringFixed(2),
		stateTax.StringFixed(2), se.Tax.StringFixed(2), net.StringFixed(2))

	return ws
}

// itemizedTotal sums the itemizable expenses. Student loan interest is an
// adjustment, not an itemized deduction.
func itemizedTotal(d domain.DeductionDetails) decimal.Decimal {
	total := decimal.Zero
	for _, a := range []domain.Amount{
		d.MortgageInterestAmount,
		d.CharityAmount,
		d.EducationExpensesAmount,
		d.ChildcareAmount,
		d.MedicalExpenses,
		d.StateLocalTaxes,
		d.PropertyTaxes,
	} {
		total = total.Add(money.NonNegative(a))
	}
	return total
}
