package main

import (
	"fmt"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/rgehrsitz/taxpilot/internal/money"
	"github.com/rgehrsitz/taxpilot/internal/output"
	"github.com/rgehrsitz/taxpilot/internal/store"
	"github.com/rgehrsitz/taxpilot/internal/workflow"
	"github.com/spf13/cobra"
)

func (a *app) statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show or advance the filing status",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the filing status and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			printStatus(cmd, session.Status())
			result := session.Calculation()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", output.BalanceLabel(result), money.FormatCurrency(result.RefundOrOwed))
			return nil
		},
	}

	advance := &cobra.Command{
		Use:   "advance",
		Short: "Take the next step that needs no payment or signature",
		Long: `Move a draft into review, or record acceptance of a submitted return.
A reviewed return is filed with "taxpilot sign", after "taxpilot pay" when
a balance is due.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			wf := workflow.New()
			return a.transition(cmd, session, func(s domain.ReturnStatus, _ domain.TaxCalculationResult) (domain.ReturnStatus, error) {
				return wf.Advance(s)
			})
		},
	}

	cmd.AddCommand(show, advance)
	return cmd
}

// transition applies fn to the saved status and stores the result.
func (a *app) transition(cmd *cobra.Command, session *store.Session, fn func(domain.ReturnStatus, domain.TaxCalculationResult) (domain.ReturnStatus, error)) error {
	next, err := session.Transition(cmd.Context(), fn)
	if err != nil {
		return err
	}
	printStatus(cmd, next)
	return nil
}

func (a *app) payCmd() *cobra.Command {
	var (
		method string
		card   workflow.CardPayment
		bank   workflow.BankPayment
	)
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Pay the balance due on a reviewed return",
		Long: `Pay the balance due by card or bank debit. The details are validated
and then discarded; only the payment confirmation is saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payment := workflow.Payment{Method: workflow.PaymentMethod(method)}
			switch payment.Method {
			case workflow.MethodCard:
				payment.Card = &card
			case workflow.MethodBank:
				payment.Bank = &bank
			}
			if err := payment.Validate(); err != nil {
				return err
			}

			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			wf := workflow.New()
			return a.transition(cmd, session, func(s domain.ReturnStatus, result domain.TaxCalculationResult) (domain.ReturnStatus, error) {
				return wf.MarkPaid(s, result, "")
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&method, "method", "card", "Payment method (card, bank)")
	f.StringVar(&card.NameOnCard, "name", "", "Name on card")
	f.StringVar(&card.CardNumber, "card", "", "Card number")
	f.StringVar(&card.Expiry, "exp", "", "Card expiry (MM/YY)")
	f.StringVar(&card.CVC, "cvc", "", "Card security code")
	f.StringVar(&card.ZIP, "zip", "", "Billing ZIP code")
	f.StringVar(&bank.AccountHolder, "holder", "", "Bank account holder")
	f.StringVar(&bank.RoutingNumber, "routing", "", "Nine-digit routing number")
	f.StringVar(&bank.AccountNumber, "account", "", "Bank account number")
	f.StringVar(&bank.AccountType, "account-type", "checking", "Account type (checking, savings)")
	return cmd
}

func (a *app) signCmd() *cobra.Command {
	var (
		sig     workflow.Signature
		consent workflow.Consent
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "E-sign and submit the return",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sig.Validate(); err != nil {
				return err
			}
			if err := consent.Validate(); err != nil {
				return err
			}
			session, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			wf := workflow.New()
			return a.transition(cmd, session, wf.MarkSubmitted)
		},
	}

	f := cmd.Flags()
	f.StringVar(&sig.FirstName, "first", "", "Legal first name")
	f.StringVar(&sig.LastName, "last", "", "Legal last name")
	f.StringVar(&sig.PIN, "pin", "", "Five-digit self-select PIN")
	f.BoolVar(&consent.AuthorizeEfile, "authorize", false, "Authorize electronic filing")
	f.BoolVar(&consent.BankAccountAccuracy, "confirm-accounts", false, "Confirm bank account details are accurate")
	f.BoolVar(&consent.PrivacyRead, "privacy-read", false, "Confirm the privacy notice was read")
	return cmd
}
