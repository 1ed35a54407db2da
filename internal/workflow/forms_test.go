package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCard() *CardPayment {
	return &CardPayment{
		NameOnCard: "Jo Doe",
		CardNumber: "4242 4242 4242 4242",
		Expiry:     "08/27",
		CVC:        "123",
		ZIP:        "94110",
	}
}

func validBank() *BankPayment {
	return &BankPayment{
		AccountHolder: "Jo Doe",
		RoutingNumber: "123456789",
		AccountNumber: "98765",
		AccountType:   "checking",
	}
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestPayment_Validate_Card(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CardPayment)
		wantField string
	}{
		{"valid", func(*CardPayment) {}, ""},
		{"short name", func(c *CardPayment) { c.NameOnCard = "J" }, "nameOnCard"},
		{"short card", func(c *CardPayment) { c.CardNumber = "4242 4242 424" }, "cardNumber"},
		{"letters in card", func(c *CardPayment) { c.CardNumber = "4242 4242 4242 42ab" }, "cardNumber"},
		{"twelve digits", func(c *CardPayment) { c.CardNumber = "424242424242" }, ""},
		{"bad expiry format", func(c *CardPayment) { c.Expiry = "8/27" }, "exp"},
		{"bad expiry month", func(c *CardPayment) { c.Expiry = "13/27" }, "exp"},
		{"short cvc", func(c *CardPayment) { c.CVC = "12" }, "cvc"},
		{"short zip", func(c *CardPayment) { c.ZIP = "94" }, "zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(card)
			err := Payment{Method: MethodCard, Card: card}.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []string{tt.wantField}, fieldNames(t, err))
		})
	}
}

func TestPayment_Validate_Bank(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*BankPayment)
		wantField string
	}{
		{"valid", func(*BankPayment) {}, ""},
		{"savings", func(b *BankPayment) { b.AccountType = "savings" }, ""},
		{"short holder", func(b *BankPayment) { b.AccountHolder = "J" }, "accountHolder"},
		{"routing too short", func(b *BankPayment) { b.RoutingNumber = "12345678" }, "routingNumber"},
		{"routing too long", func(b *BankPayment) { b.RoutingNumber = "1234567890" }, "routingNumber"},
		{"short account", func(b *BankPayment) { b.AccountNumber = "123" }, "accountNumber"},
		{"missing type", func(b *BankPayment) { b.AccountType = "" }, "accountType"},
		{"unknown type", func(b *BankPayment) { b.AccountType = "brokerage" }, "accountType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank := validBank()
			tt.mutate(bank)
			err := Payment{Method: MethodBank, Bank: bank}.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []string{tt.wantField}, fieldNames(t, err))
		})
	}
}

func TestPayment_Validate_Method(t *testing.T) {
	assert.Equal(t, []string{"method"}, fieldNames(t, Payment{}.Validate()))
	assert.Equal(t, []string{"card"}, fieldNames(t, Payment{Method: MethodCard}.Validate()))
	assert.Equal(t, []string{"bank"}, fieldNames(t, Payment{Method: MethodBank, Card: validCard()}.Validate()))
}

func TestPayment_Validate_ReportsAllFields(t *testing.T) {
	err := Payment{Method: MethodCard, Card: &CardPayment{}}.Validate()
	assert.ElementsMatch(t, []string{"nameOnCard", "cardNumber", "exp", "cvc", "zip"}, fieldNames(t, err))
	assert.Contains(t, err.Error(), "invalid card payment")
}

func TestSignature_Validate(t *testing.T) {
	assert.NoError(t, Signature{FirstName: "Jo", LastName: "Doe", PIN: "12345"}.Validate())
	assert.Equal(t, []string{"pin"}, fieldNames(t, Signature{FirstName: "Jo", LastName: "Doe", PIN: "1234"}.Validate()))
	assert.Equal(t, []string{"pin"}, fieldNames(t, Signature{FirstName: "Jo", LastName: "Doe", PIN: "12a45"}.Validate()))
	assert.ElementsMatch(t, []string{"firstName", "lastName"}, fieldNames(t, Signature{FirstName: "J", LastName: "D", PIN: "12345"}.Validate()))
}

func TestConsent_Validate(t *testing.T) {
	assert.NoError(t, Consent{AuthorizeEfile: true, BankAccountAccuracy: true, PrivacyRead: true}.Validate())
	assert.Equal(t, []string{"privacyRead"}, fieldNames(t, Consent{AuthorizeEfile: true, BankAccountAccuracy: true}.Validate()))
	assert.Len(t, fieldNames(t, Consent{}.Validate()), 3)
}
