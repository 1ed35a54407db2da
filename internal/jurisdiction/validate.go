package jurisdiction

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidJurisdictionTable is returned, wrapped in a *TableError, when a
// table cannot be used for calculation.
var ErrInvalidJurisdictionTable = errors.New("invalid jurisdiction table")

// TableError names the jurisdiction that failed validation.
type TableError struct {
	Jurisdiction string
	Reason       string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("%s: jurisdiction %s: %s", ErrInvalidJurisdictionTable, e.Jurisdiction, e.Reason)
}

func (e *TableError) Unwrap() error {
	return ErrInvalidJurisdictionTable
}

func invalid(jurisdiction, format string, args ...any) error {
	return &TableError{Jurisdiction: jurisdiction, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks a table before it is handed to the engine. States are
// checked in code order so the reported error is stable.
func Validate(table *domain.JurisdictionTable) error {
	if table == nil {
		return invalid("table", "table is nil")
	}
	if err := validateFederal(table.Federal); err != nil {
		return err
	}
	if len(table.States) == 0 {
		return invalid("table", "no states defined")
	}

	codes := make([]string, 0, len(table.States))
	for code := range table.States {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if err := validateState(code, table.States[code]); err != nil {
			return err
		}
	}
	return nil
}

func validateFederal(f domain.FederalRules) error {
	schedules := []struct {
		name     string
		brackets []domain.FederalBracket
		required bool
	}{
		{"federal single", f.Single, true},
		{"federal married", f.Married, true},
		{"federal head of household", f.HeadOfHousehold, false},
	}
	for _, s := range schedules {
		if len(s.brackets) == 0 {
			if s.required {
				return invalid(s.name, "schedule is empty")
			}
			continue
		}
		if !s.brackets[0].Threshold.IsZero() {
			return invalid(s.name, "first threshold must be 0, got %s", s.brackets[0].Threshold)
		}
		for i, b := range s.brackets {
			if !validRate(b.Rate) {
				return invalid(s.name, "bracket %d rate %s outside [0, 1]", i, b.Rate)
			}
			if i > 0 && !b.Threshold.GreaterThan(s.brackets[i-1].Threshold) {
				return invalid(s.name, "bracket %d threshold %s does not increase", i, b.Threshold)
			}
		}
	}

	sd := f.StandardDeduction
	for _, v := range []decimal.Decimal{sd.Single, sd.Married, sd.HeadOfHousehold, f.StudentLoanInterestCap, f.IRADeductionCap, f.ChildTaxCreditPerDependent} {
		if v.IsNegative() {
			return invalid("federal", "deduction and cap amounts cannot be negative")
		}
	}
	se := f.SelfEmployment
	for _, v := range []decimal.Decimal{se.EarningsFactor, se.TaxRate, se.DeductibleShare} {
		if !validRate(v) {
			return invalid("federal", "self-employment factor %s outside [0, 1]", v)
		}
	}
	return nil
}

func validateState(code string, info domain.JurisdictionTaxInfo) error {
	if !strings.EqualFold(code, info.Abbreviation) || code != strings.ToUpper(code) {
		return invalid(code, "key does not match abbreviation %q", info.Abbreviation)
	}
	if info.Name == "" {
		return invalid(code, "name is required")
	}
	if !info.HasIncomeTax {
		return nil
	}
	if info.FlatRate != nil && len(info.Brackets) > 0 {
		return invalid(code, "cannot define both a flat rate and brackets")
	}
	if info.FlatRate != nil && !validRate(*info.FlatRate) {
		return invalid(code, "flat rate %s outside [0, 1]", info.FlatRate)
	}
	if err := validateBrackets(code, info.Brackets); err != nil {
		return err
	}
	if sd := info.StandardDeduction; sd != nil && anyNegative(*sd) {
		return invalid(code, "standard deduction cannot be negative")
	}
	if pe := info.PersonalExemption; pe != nil && (anyNegative(pe.FilingStatusAmounts) || pe.Dependent.IsNegative()) {
		return invalid(code, "personal exemption cannot be negative")
	}
	return nil
}

// validateBrackets requires bands that start at 0, are contiguous and
// increasing, and end with a single unbounded band.
func validateBrackets(code string, brackets []domain.StateBracket) error {
	if len(brackets) == 0 {
		return nil
	}
	if !brackets[0].Min.IsZero() {
		return invalid(code, "first bracket must start at 0, got %s", brackets[0].Min)
	}
	last := len(brackets) - 1
	for i, b := range brackets {
		if !validRate(b.Rate) {
			return invalid(code, "bracket %d rate %s outside [0, 1]", i, b.Rate)
		}
		if b.Unbounded() {
			if i != last {
				return invalid(code, "bracket %d is unbounded but is not the last bracket", i)
			}
			continue
		}
		if i == last {
			return invalid(code, "last bracket must be unbounded, got max %s", b.Max)
		}
		if !b.Max.GreaterThan(b.Min) {
			return invalid(code, "bracket %d max %s must exceed min %s", i, b.Max, b.Min)
		}
		if !brackets[i+1].Min.Equal(*b.Max) {
			return invalid(code, "bracket %d ends at %s but bracket %d starts at %s", i, b.Max, i+1, brackets[i+1].Min)
		}
	}
	return nil
}

func validRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}

func anyNegative(a domain.FilingStatusAmounts) bool {
	return a.Single.IsNegative() || a.MarriedJoint.IsNegative() || a.MarriedSeparate.IsNegative() || a.HeadOfHousehold.IsNegative()
}
