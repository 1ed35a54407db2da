// Package money turns the free-form amounts typed into the wizard into
// decimals, and decimals back into display strings.
package money

import (
	"regexp"
	"strings"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	nonNumeric    = regexp.MustCompile(`[^0-9.\-]`)
	leadingNumber = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
)

// ParseAmount converts user input such as "$1,234.56" to a decimal.
// Everything except digits, '.' and '-' is dropped, then the longest leading
// number is taken, so "1.2.3" reads as 1.2. Input with no leading number is
// zero. It never fails.
func ParseAmount(s string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(s, "")
	match := leadingNumber.FindString(cleaned)
	if match == "" {
		return decimal.Zero
	}
	match = strings.TrimSuffix(match, ".")
	if strings.HasPrefix(match, "-.") {
		match = "-0" + match[1:]
	} else if strings.HasPrefix(match, ".") {
		match = "0" + match
	}
	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Parse is ParseAmount for a draft field.
func Parse(a domain.Amount) decimal.Decimal {
	return ParseAmount(string(a))
}

// NonNegative parses a draft field and clamps it at zero.
func NonNegative(a domain.Amount) decimal.Decimal {
	return Clamp(Parse(a))
}

// Clamp floors d at zero.
func Clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatCurrency renders d as dollars with thousands separators, e.g. "$1,234.56".
func FormatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		whole, frac = fixed[:i], fixed[i:]
	}
	return sign + "$" + groupThousands(whole) + frac
}

// FormatWhole renders d rounded to whole dollars, e.g. "$1,235".
func FormatWhole(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + "$" + groupThousands(d.StringFixed(0))
}

// FormatPercentage renders a rate such as 0.0307 as "3.07%".
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var sb strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		sb.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
