// Package wizard describes the guided interview: the ordered steps, the
// fields each step edits and the checks that gate moving forward.
package wizard

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// ErrUnknownStep is returned when a step name or number does not exist.
var ErrUnknownStep = errors.New("unknown wizard step")

// Step identifies one screen of the interview.
type Step string

const (
	StepPersonal          Step = "personal"
	StepStatus            Step = "status"
	StepDependents        Step = "dependents"
	StepIncome            Step = "income"
	StepIncomeDetails     Step = "incomeDetails"
	StepDeductions        Step = "deductions"
	StepDeductionDetails  Step = "deductionDetails"
	StepState             Step = "state"
	StepHealth            Step = "health"
	StepEducation         Step = "education"
	StepRetirement        Step = "retirement"
	StepRetirementDetails Step = "retirementDetails"
	StepPayments          Step = "payments"
	StepOther             Step = "other"
	StepReview            Step = "review"
)

// StepInfo is the display metadata for a step.
type StepInfo struct {
	Key   Step   `json:"key"`
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

var order = []StepInfo{
	{StepPersonal, "About you", "Your legal name, date of birth and contact email."},
	{StepStatus, "Filing status", "Pick the status you will file under."},
	{StepDependents, "Dependents", "Children or relatives you support."},
	{StepIncome, "Income sources", "Which tax forms you received."},
	{StepIncomeDetails, "Income amounts", "Amounts from your W-2 and 1099 forms."},
	{StepDeductions, "Deductions", "Standard deduction or itemize."},
	{StepDeductionDetails, "Deduction amounts", "Amounts for the deductions you claimed."},
	{StepState, "State", "Your state of residence."},
	{StepHealth, "Health coverage", "Marketplace coverage and HSAs."},
	{StepEducation, "Education", "Tuition and student loans."},
	{StepRetirement, "Retirement", "Retirement accounts you contributed to."},
	{StepRetirementDetails, "Retirement amounts", "Contribution amounts."},
	{StepPayments, "Estimated payments", "Quarterly payments already sent."},
	{StepOther, "Other situations", "Anything else that applies."},
	{StepReview, "Review", "Check your estimate before filing."},
}

// Steps returns the interview steps in order.
func Steps() []StepInfo {
	return append([]StepInfo(nil), order...)
}

// Count is the number of steps.
func Count() int { return len(order) }

// At returns the step at index i, clamped to the valid range.
func At(i int) StepInfo {
	return order[ClampIndex(i)]
}

// ClampIndex pins i into [0, Count()-1].
func ClampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(order) {
		return len(order) - 1
	}
	return i
}

// Index returns the position of a step.
func Index(step Step) (int, bool) {
	for i, info := range order {
		if info.Key == step {
			return i, true
		}
	}
	return 0, false
}

// ParseStep accepts a step key (case-insensitive) or a 1-based step number.
func ParseStep(s string) (Step, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(order) {
			return "", fmt.Errorf("%w: %d", ErrUnknownStep, n)
		}
		return order[n-1].Key, nil
	}
	for _, info := range order {
		if strings.EqualFold(string(info.Key), s) {
			return info.Key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStep, s)
}

// Issue is one reason a step cannot be completed yet.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var dobPattern = regexp.MustCompile(`^([0-1]\d)/(\d{2})/(\d{4})$`)

// ValidDOB reports whether s is an MM/DD/YYYY date with month 1-12, day 1-31
// and year 1900-2100. Day-of-month is not checked against the month.
func ValidDOB(s string) bool {
	m := dobPattern.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return month >= 1 && month <= 12 &&
		day >= 1 && day <= 31 &&
		year >= 1900 && year <= 2100
}

// Check lists what still blocks leaving step. Steps without required
// answers always pass.
func Check(step Step, d domain.TaxpayerDraft) []Issue {
	var issues []Issue
	add := func(field, msg string) { issues = append(issues, Issue{Field: field, Message: msg}) }

	switch step {
	case StepPersonal:
		if d.FirstName == "" {
			add("firstName", "first name is required")
		}
		if d.LastName == "" {
			add("lastName", "last name is required")
		}
		if !strings.Contains(d.Email, "@") {
			add("email", "enter a valid email address")
		}
		if !ValidDOB(d.DOB) {
			add("dob", "date of birth must be MM/DD/YYYY")
		}
	case StepStatus:
		if d.FilingStatus == domain.FilingStatusUnset {
			add("filingStatus", "choose a filing status")
		}
	case StepDependents:
		switch {
		case d.HasDependents == nil:
			add("hasDependents", "tell us whether you have dependents")
		case *d.HasDependents && d.DependentsCount != nil && *d.DependentsCount < 0:
			add("dependentsCount", "number of dependents cannot be negative")
		}
	case StepIncomeDetails:
		if d.Income.W2 && d.IncomeDetails.W2Wages == "" {
			add("incomeDetails.w2Wages", "enter your W-2 wages")
		}
		if d.Income.NEC1099 && d.IncomeDetails.NEC1099Amount == "" {
			add("incomeDetails.nec1099Amount", "enter your 1099-NEC income")
		}
	case StepState:
		if len(strings.TrimSpace(d.State)) < 2 {
			add("state", "enter your state")
		}
	}
	return issues
}

// CanContinue reports whether step has no outstanding issues.
func CanContinue(step Step, d domain.TaxpayerDraft) bool {
	return len(Check(step, d)) == 0
}

// FirstIncomplete returns the index of the first step with issues, or the
// review step when every step passes.
func FirstIncomplete(d domain.TaxpayerDraft) int {
	for i, info := range order {
		if !CanContinue(info.Key, d) {
			return i
		}
	}
	return len(order) - 1
}
