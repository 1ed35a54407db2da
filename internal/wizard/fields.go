package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// ErrUnknownField is returned by Set for a key no step defines.
var ErrUnknownField = errors.New("unknown draft field")

// Kind tells an editor how to present and parse a field.
type Kind int

const (
	KindText Kind = iota
	KindAmount
	KindBool
	KindChoice
	KindCount
)

func (k Kind) String() string {
	switch k {
	case KindAmount:
		return "amount"
	case KindBool:
		return "yes/no"
	case KindChoice:
		return "choice"
	case KindCount:
		return "count"
	default:
		return "text"
	}
}

// Field is one editable answer, addressed by its JSON path in the draft.
type Field struct {
	Key     string
	Label   string
	Kind    Kind
	Choices []string

	get func(*domain.TaxpayerDraft) string
	set func(*domain.TaxpayerDraft, string) error
}

// Get returns the field's current value as text.
func (f Field) Get(d domain.TaxpayerDraft) string { return f.get(&d) }

// Set parses value and stores it in d.
func (f Field) Set(d *domain.TaxpayerDraft, value string) error {
	if err := f.set(d, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: %w", f.Key, err)
	}
	return nil
}

func text(key, label string, ptr func(*domain.TaxpayerDraft) *string) Field {
	return Field{
		Key: key, Label: label, Kind: KindText,
		get: func(d *domain.TaxpayerDraft) string { return *ptr(d) },
		set: func(d *domain.TaxpayerDraft, v string) error { *ptr(d) = v; return nil },
	}
}

func amount(key, label string, ptr func(*domain.TaxpayerDraft) *domain.Amount) Field {
	return Field{
		Key: key, Label: label, Kind: KindAmount,
		get: func(d *domain.TaxpayerDraft) string { return string(*ptr(d)) },
		set: func(d *domain.TaxpayerDraft, v string) error { *ptr(d) = domain.Amount(v); return nil },
	}
}

func flag(key, label string, ptr func(*domain.TaxpayerDraft) *bool) Field {
	return Field{
		Key: key, Label: label, Kind: KindBool,
		get: func(d *domain.TaxpayerDraft) string { return yesNo(*ptr(d)) },
		set: func(d *domain.TaxpayerDraft, v string) error {
			b, err := ParseBool(v)
			if err != nil {
				return err
			}
			*ptr(d) = b
			return nil
		},
	}
}

// ParseBool accepts yes/no, y/n, on/off and anything strconv.ParseBool does.
func ParseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off", "":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("expected yes or no, got %q", v)
	}
	return b, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

var stepFields = map[Step][]Field{
	StepPersonal: {
		text("firstName", "First name", func(d *domain.TaxpayerDraft) *string { return &d.FirstName }),
		text("lastName", "Last name", func(d *domain.TaxpayerDraft) *string { return &d.LastName }),
		text("dob", "Date of birth (MM/DD/YYYY)", func(d *domain.TaxpayerDraft) *string { return &d.DOB }),
		text("ssn", "SSN", func(d *domain.TaxpayerDraft) *string { return &d.SSN }),
		text("email", "Email", func(d *domain.TaxpayerDraft) *string { return &d.Email }),
	},
	StepStatus: {{
		Key: "filingStatus", Label: "Filing status", Kind: KindChoice,
		Choices: []string{string(domain.FilingStatusSingle), string(domain.FilingStatusMarried), string(domain.FilingStatusHOH)},
		get:     func(d *domain.TaxpayerDraft) string { return string(d.FilingStatus) },
		set: func(d *domain.TaxpayerDraft, v string) error {
			fs, ok := domain.ParseFilingStatus(v)
			if !ok {
				return fmt.Errorf("unknown filing status %q", v)
			}
			d.FilingStatus = fs
			return nil
		},
	}},
	StepDependents: {
		{
			Key: "hasDependents", Label: "Do you have dependents?", Kind: KindBool,
			get: func(d *domain.TaxpayerDraft) string {
				if d.HasDependents == nil {
					return ""
				}
				return yesNo(*d.HasDependents)
			},
			set: func(d *domain.TaxpayerDraft, v string) error {
				if v == "" {
					d.HasDependents = nil
					return nil
				}
				b, err := ParseBool(v)
				if err != nil {
					return err
				}
				d.HasDependents = &b
				return nil
			},
		},
		{
			Key: "dependentsCount", Label: "How many?", Kind: KindCount,
			get: func(d *domain.TaxpayerDraft) string {
				if d.DependentsCount == nil {
					return ""
				}
				return strconv.Itoa(*d.DependentsCount)
			},
			set: func(d *domain.TaxpayerDraft, v string) error {
				if v == "" {
					d.DependentsCount = nil
					return nil
				}
				n, err := strconv.Atoi(v)
				if err != nil {
					return fmt.Errorf("expected a whole number, got %q", v)
				}
				d.DependentsCount = &n
				return nil
			},
		},
	},
	StepIncome: {
		flag("income.w2", "W-2 (job)", func(d *domain.TaxpayerDraft) *bool { return &d.Income.W2 }),
		flag("income.nec1099", "1099-NEC (contract)", func(d *domain.TaxpayerDraft) *bool { return &d.Income.NEC1099 }),
		flag("income.misc1099", "1099-MISC", func(d *domain.TaxpayerDraft) *bool { return &d.Income.MISC1099 }),
		flag("income.interest1099", "1099-INT (interest)", func(d *domain.TaxpayerDraft) *bool { return &d.Income.Interest1099 }),
		flag("income.dividends1099", "1099-DIV (dividends)", func(d *domain.TaxpayerDraft) *bool { return &d.Income.Dividends1099 }),
		text("income.other", "Other income (describe)", func(d *domain.TaxpayerDraft) *string { return &d.Income.Other }),
	},
	StepIncomeDetails: {
		amount("incomeDetails.w2Wages", "W-2 wages", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.IncomeDetails.W2Wages }),
		amount("incomeDetails.w2FederalWithheld", "Federal income tax withheld", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.IncomeDetails.W2FederalWithheld }),
		amount("incomeDetails.w2StateWithheld", "State income tax withheld", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.IncomeDetails.W2StateWithheld }),
		amount("incomeDetails.nec1099Amount", "1099-NEC income", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.IncomeDetails.NEC1099Amount }),
		amount("incomeDetails.misc1099Amount", "1099-MISC income", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.IncomeDetails.MISC1099Amount }),
		amount("incomeDetails.interest1099Amount", "Interest income", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.IncomeDetails.Interest1099Amount }),
		amount("incomeDetails.dividends1099Amount", "Dividend income", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.IncomeDetails.Dividends1099Amount }),
		amount("incomeDetails.otherIncomeAmount", "Other income", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.IncomeDetails.OtherIncomeAmount }),
	},
	StepDeductions: {
		{
			Key: "deductions.method", Label: "Deduction method", Kind: KindChoice,
			Choices: []string{"standard", "itemize"},
			get: func(d *domain.TaxpayerDraft) string {
				if d.Deductions.Itemize {
					return "itemize"
				}
				return "standard"
			},
			set: func(d *domain.TaxpayerDraft, v string) error {
				switch strings.ToLower(v) {
				case "standard", "std":
					d.ChooseStandard()
				case "itemize", "itemized":
					d.ChooseItemize()
				default:
					return fmt.Errorf("expected standard or itemize, got %q", v)
				}
				return nil
			},
		},
		flag("deductions.studentLoanInterest", "Student loan interest", func(d *domain.TaxpayerDraft) *bool { return &d.Deductions.StudentLoanInterest }),
		flag("deductions.mortgageInterest", "Mortgage interest", func(d *domain.TaxpayerDraft) *bool { return &d.Deductions.MortgageInterest }),
		flag("deductions.charity", "Charitable donations", func(d *domain.TaxpayerDraft) *bool { return &d.Deductions.Charity }),
		flag("deductions.educationExpenses", "Education expenses", func(d *domain.TaxpayerDraft) *bool { return &d.Deductions.EducationExpenses }),
		flag("deductions.childcare", "Childcare", func(d *domain.TaxpayerDraft) *bool { return &d.Deductions.Childcare }),
	},
	StepDeductionDetails: {
		amount("deductionDetails.studentLoanInterestAmount", "Student loan interest", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.DeductionDetails.StudentLoanInterestAmount }),
		amount("deductionDetails.mortgageInterestAmount", "Mortgage interest", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.DeductionDetails.MortgageInterestAmount }),
		amount("deductionDetails.charityAmount", "Charitable donations", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.DeductionDetails.CharityAmount }),
		amount("deductionDetails.educationExpensesAmount", "Education expenses", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.DeductionDetails.EducationExpensesAmount }),
		amount("deductionDetails.childcareAmount", "Childcare", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.DeductionDetails.ChildcareAmount }),
		amount("deductionDetails.medicalExpenses", "Medical expenses", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.DeductionDetails.MedicalExpenses }),
		amount("deductionDetails.stateLocalTaxes", "State and local taxes", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.DeductionDetails.StateLocalTaxes }),
		amount("deductionDetails.propertyTaxes", "Property taxes", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.DeductionDetails.PropertyTaxes }),
	},
	StepState: {
		{
			Key: "state", Label: "State (code or name)", Kind: KindText,
			get: func(d *domain.TaxpayerDraft) string { return d.State },
			set: func(d *domain.TaxpayerDraft, v string) error { d.State = strings.ToUpper(v); return nil },
		},
	},
	StepHealth: {
		flag("health.hadMarketplaceCoverage", "Had Marketplace (ACA) coverage", func(d *domain.TaxpayerDraft) *bool { return &d.Health.HadMarketplaceCoverage }),
		flag("health.hadHsa", "Had a Health Savings Account", func(d *domain.TaxpayerDraft) *bool { return &d.Health.HadHSA }),
	},
	StepEducation: {
		flag("education.paidTuition1098T", "Paid tuition (Form 1098-T)", func(d *domain.TaxpayerDraft) *bool { return &d.Education.PaidTuition1098T }),
		flag("education.studentLoanInterestPaid", "Paid student loan interest", func(d *domain.TaxpayerDraft) *bool { return &d.Education.StudentLoanInterestPaid }),
	},
	StepRetirement: {
		flag("retirement.iraContrib", "Traditional IRA", func(d *domain.TaxpayerDraft) *bool { return &d.Retirement.IRAContrib }),
		flag("retirement.rothContrib", "Roth IRA", func(d *domain.TaxpayerDraft) *bool { return &d.Retirement.RothContrib }),
		flag("retirement.employer401k", "Employer 401(k)", func(d *domain.TaxpayerDraft) *bool { return &d.Retirement.Employer401k }),
	},
	StepRetirementDetails: {
		amount("retirementDetails.iraContribAmount", "Traditional IRA contributions", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.RetirementDetails.IRAContribAmount }),
		amount("retirementDetails.rothContribAmount", "Roth IRA contributions", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.RetirementDetails.RothContribAmount }),
		amount("retirementDetails.employer401kAmount", "401(k) contributions", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.RetirementDetails.Employer401kAmount }),
	},
	StepPayments: {
		flag("payments.madeEstimatedPayments", "Made estimated payments", func(d *domain.TaxpayerDraft) *bool { return &d.Payments.MadeEstimatedPayments }),
		amount("payments.amountEstimated", "Total estimated payments", func(d *domain.TaxpayerDraft) *domain.Amount { return &d.Payments.AmountEstimated }),
	},
	StepOther: {
		flag("other.movedStates", "I moved states", func(d *domain.TaxpayerDraft) *bool { return &d.Other.MovedStates }),
		flag("other.disasterRelief", "Qualified disaster relief", func(d *domain.TaxpayerDraft) *bool { return &d.Other.DisasterRelief }),
		flag("other.foreignIncome", "Foreign income", func(d *domain.TaxpayerDraft) *bool { return &d.Other.ForeignIncome }),
	},
}

// Fields returns the fields edited on step. The review step has none.
func Fields(step Step) []Field {
	return append([]Field(nil), stepFields[step]...)
}

// AllFields returns every field in interview order.
func AllFields() []Field {
	var out []Field
	for _, info := range order {
		out = append(out, stepFields[info.Key]...)
	}
	return out
}

// Lookup finds a field by key, ignoring case.
func Lookup(key string) (Field, bool) {
	for _, info := range order {
		for _, f := range stepFields[info.Key] {
			if strings.EqualFold(f.Key, key) {
				return f, true
			}
		}
	}
	return Field{}, false
}

// Set assigns a value to the field named key.
func Set(d *domain.TaxpayerDraft, key, value string) error {
	f, ok := Lookup(strings.TrimSpace(key))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	return f.Set(d, value)
}

// Assign applies "key=value" pairs in order.
func Assign(d *domain.TaxpayerDraft, pairs []string) error {
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("expected key=value, got %q", pair)
		}
		if err := Set(d, key, value); err != nil {
			return err
		}
	}
	return nil
}
