package workflow

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var expiryPattern = regexp.MustCompile(`^(\d{2})/\d{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// registration only fails on an empty tag or nil func
	_ = v.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		digits := strings.Join(strings.Fields(fl.Field().String()), "")
		if len(digits) < 12 {
			return false
		}
		for _, r := range digits {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	_ = v.RegisterValidation("expiry", func(fl validator.FieldLevel) bool {
		m := expiryPattern.FindStringSubmatch(fl.Field().String())
		if m == nil {
			return false
		}
		month, _ := strconv.Atoi(m[1])
		return month >= 1 && month <= 12
	})
	return v
}

// FieldError names one failed field and the rule it broke.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError lists every problem found in a submitted form.
type ValidationError struct {
	Form   string       `json:"form"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return fmt.Sprintf("invalid %s: %s", e.Form, strings.Join(parts, ", "))
}

// PaymentMethod selects how a balance due is paid.
type PaymentMethod string

const (
	MethodCard PaymentMethod = "card"
	MethodBank PaymentMethod = "bank"
)

// CardPayment is a debit or credit card payment.
type CardPayment struct {
	NameOnCard string `json:"nameOnCard" validate:"min=2"`
	CardNumber string `json:"cardNumber" validate:"cardnumber"`
	Expiry     string `json:"exp" validate:"expiry"`
	CVC        string `json:"cvc" validate:"min=3,number"`
	ZIP        string `json:"zip" validate:"min=3"`
}

// BankPayment is a direct debit from a checking or savings account.
type BankPayment struct {
	AccountHolder string `json:"accountHolder" validate:"min=2"`
	RoutingNumber string `json:"routingNumber" validate:"len=9,number"`
	AccountNumber string `json:"accountNumber" validate:"min=4,number"`
	AccountType   string `json:"accountType" validate:"oneof=checking savings"`
}

// Payment carries exactly the details for its method.
type Payment struct {
	Method PaymentMethod `json:"method"`
	Card   *CardPayment  `json:"card,omitempty"`
	Bank   *BankPayment  `json:"bank,omitempty"`
}

// Validate checks the details for the chosen method.
func (p Payment) Validate() error {
	switch p.Method {
	case MethodCard:
		if p.Card == nil {
			return &ValidationError{Form: "payment", Fields: []FieldError{{Field: "card", Rule: "required"}}}
		}
		return check("card payment", p.Card)
	case MethodBank:
		if p.Bank == nil {
			return &ValidationError{Form: "payment", Fields: []FieldError{{Field: "bank", Rule: "required"}}}
		}
		return check("bank payment", p.Bank)
	default:
		return &ValidationError{Form: "payment", Fields: []FieldError{{Field: "method", Rule: "oneof"}}}
	}
}

// Signature is the taxpayer's e-signature: legal name and a self-selected PIN.
type Signature struct {
	FirstName string `json:"firstName" validate:"min=2"`
	LastName  string `json:"lastName" validate:"min=2"`
	PIN       string `json:"pin" validate:"len=5,number"`
}

func (s Signature) Validate() error { return check("signature", &s) }

// Consent holds the e-file acknowledgements. All three are required.
type Consent struct {
	AuthorizeEfile      bool `json:"authorizeEfile" validate:"required"`
	BankAccountAccuracy bool `json:"bankAccountAccuracy" validate:"required"`
	PrivacyRead         bool `json:"privacyRead" validate:"required"`
}

func (c Consent) Validate() error { return check("e-file consent", &c) }

func check(form string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s: %w", form, err)
	}
	out := &ValidationError{Form: form}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
