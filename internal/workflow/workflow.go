// Package workflow moves a return through review, payment, submission and
// acceptance, and checks the forms collected along the way.
package workflow

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// ErrInvalidTransition is returned when a step change is not allowed from
// the current step.
var ErrInvalidTransition = errors.New("invalid return status transition")

// TransitionError describes a rejected step change.
type TransitionError struct {
	From   domain.ReturnStep
	To     domain.ReturnStep
	Reason string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("cannot move return from %s to %s", e.From, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Workflow applies status transitions. Now and Receipt can be replaced in
// tests to make timestamps and receipt numbers deterministic.
type Workflow struct {
	Now     func() time.Time
	Receipt func() string
}

// New returns a workflow using the wall clock and random receipt numbers.
func New() *Workflow {
	return &Workflow{
		Now:     time.Now,
		Receipt: randomReceipt,
	}
}

// MarkReviewed moves a draft into review.
func (w *Workflow) MarkReviewed(s domain.ReturnStatus) (domain.ReturnStatus, error) {
	if s.Step != domain.StepDraft {
		return s, &TransitionError{From: s.Step, To: domain.StepReview}
	}
	now := w.Now()
	s.Step = domain.StepReview
	s.ReviewedAt = &now
	return s, nil
}

// MarkPaid records a balance payment. An empty confirmation gets a generated
// one. A return with nothing owed cannot be paid.
func (w *Workflow) MarkPaid(s domain.ReturnStatus, result domain.TaxCalculationResult, confirmation string) (domain.ReturnStatus, error) {
	if s.Step != domain.StepReview {
		return s, &TransitionError{From: s.Step, To: domain.StepPaid}
	}
	if !Owes(result) {
		return s, &TransitionError{From: s.Step, To: domain.StepPaid, Reason: "nothing is owed"}
	}
	now := w.Now()
	if confirmation == "" {
		confirmation = PaymentConfirmation(now)
	}
	s.Step = domain.StepPaid
	s.PaidAt = &now
	s.PaymentConfirmation = confirmation
	return s, nil
}

// MarkSubmitted files the return. A return still in review can only be
// submitted when nothing is owed; otherwise it must be paid first.
func (w *Workflow) MarkSubmitted(s domain.ReturnStatus, result domain.TaxCalculationResult) (domain.ReturnStatus, error) {
	switch s.Step {
	case domain.StepPaid:
	case domain.StepReview:
		if Owes(result) {
			return s, &TransitionError{From: s.Step, To: domain.StepSubmitted, Reason: "balance due must be paid first"}
		}
	default:
		return s, &TransitionError{From: s.Step, To: domain.StepSubmitted}
	}
	now := w.Now()
	s.Step = domain.StepSubmitted
	s.SubmittedAt = &now
	s.ConfirmationNumber = w.Receipt()
	return s, nil
}

// MarkAccepted records acceptance of a submitted return.
func (w *Workflow) MarkAccepted(s domain.ReturnStatus) (domain.ReturnStatus, error) {
	if s.Step != domain.StepSubmitted {
		return s, &TransitionError{From: s.Step, To: domain.StepAccepted}
	}
	now := w.Now()
	s.Step = domain.StepAccepted
	s.AcceptedAt = &now
	return s, nil
}

// Advance takes the next step that needs no extra input: review or accept.
// Filing needs a signature, so a return in review or paid stops there; use
// MarkPaid and MarkSubmitted.
func (w *Workflow) Advance(s domain.ReturnStatus) (domain.ReturnStatus, error) {
	switch s.Step {
	case domain.StepDraft:
		return w.MarkReviewed(s)
	case domain.StepReview, domain.StepPaid:
		return s, &TransitionError{From: s.Step, To: domain.StepSubmitted, Reason: "signature required"}
	case domain.StepSubmitted:
		return w.MarkAccepted(s)
	default:
		return s, &TransitionError{From: s.Step, To: s.Step, Reason: "return is already accepted"}
	}
}

// Owes reports whether the result leaves a balance due.
func Owes(result domain.TaxCalculationResult) bool {
	return !result.IsRefund && result.RefundOrOwed.IsPositive()
}

// PaymentConfirmation builds "PAY-" plus the last eight digits of the
// millisecond timestamp.
func PaymentConfirmation(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "PAY-" + ms
}

func randomReceipt() string {
	return strconv.Itoa(100000000 + rand.IntN(900000000))
}
