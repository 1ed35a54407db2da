package workflow

import (
	"testing"
	"time"

	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC)

func testWorkflow() *Workflow {
	return &Workflow{
		Now:     func() time.Time { return fixedNow },
		Receipt: func() string { return "123456789" },
	}
}

func owed(amount int64) domain.TaxCalculationResult {
	return domain.TaxCalculationResult{RefundOrOwed: decimal.NewFromInt(amount)}
}

func refund(amount int64) domain.TaxCalculationResult {
	return domain.TaxCalculationResult{RefundOrOwed: decimal.NewFromInt(amount), IsRefund: true}
}

func TestWorkflow_HappyPathWithPayment(t *testing.T) {
	w := testWorkflow()
	s := domain.NewReturnStatus()

	s, err := w.MarkReviewed(s)
	require.NoError(t, err)
	assert.Equal(t, domain.StepReview, s.Step)
	require.NotNil(t, s.ReviewedAt)
	assert.True(t, fixedNow.Equal(*s.ReviewedAt))

	s, err = w.MarkPaid(s, owed(500), "")
	require.NoError(t, err)
	assert.Equal(t, domain.StepPaid, s.Step)
	assert.Equal(t, PaymentConfirmation(fixedNow), s.PaymentConfirmation)

	s, err = w.MarkSubmitted(s, owed(500))
	require.NoError(t, err, "a paid return can be submitted")
	assert.Equal(t, domain.StepSubmitted, s.Step)
	assert.Equal(t, "123456789", s.ConfirmationNumber)
	assert.True(t, s.Submitted())

	s, err = w.MarkAccepted(s)
	require.NoError(t, err)
	assert.Equal(t, domain.StepAccepted, s.Step)
	require.NotNil(t, s.AcceptedAt)
}

func TestWorkflow_MarkPaidKeepsGivenConfirmation(t *testing.T) {
	s, err := testWorkflow().MarkPaid(domain.ReturnStatus{Step: domain.StepReview}, owed(10), "PAY-CUSTOM")
	require.NoError(t, err)
	assert.Equal(t, "PAY-CUSTOM", s.PaymentConfirmation)
}

func TestWorkflow_MarkPaidRequiresBalanceDue(t *testing.T) {
	review := domain.ReturnStatus{Step: domain.StepReview}

	for name, result := range map[string]domain.TaxCalculationResult{
		"refund":       refund(250),
		"zero balance": owed(0),
	} {
		t.Run(name, func(t *testing.T) {
			s, err := testWorkflow().MarkPaid(review, result, "")
			require.ErrorIs(t, err, ErrInvalidTransition)
			assert.Contains(t, err.Error(), "nothing is owed")
			assert.Equal(t, review, s)
		})
	}
}

func TestWorkflow_MarkSubmittedFromReview(t *testing.T) {
	review := domain.ReturnStatus{Step: domain.StepReview}

	tests := []struct {
		name    string
		result  domain.TaxCalculationResult
		wantErr bool
	}{
		{"refund", refund(250), false},
		{"zero balance", owed(0), false},
		{"balance due", owed(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := testWorkflow().MarkSubmitted(review, tt.result)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
				assert.Contains(t, err.Error(), "paid first")
				assert.Equal(t, domain.StepReview, s.Step, "status unchanged on error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StepSubmitted, s.Step)
		})
	}
}

func TestWorkflow_InvalidTransitions(t *testing.T) {
	w := testWorkflow()

	tests := []struct {
		name string
		from domain.ReturnStep
		move func(domain.ReturnStatus) (domain.ReturnStatus, error)
	}{
		{"review twice", domain.StepReview, w.MarkReviewed},
		{"pay a draft", domain.StepDraft, func(s domain.ReturnStatus) (domain.ReturnStatus, error) { return w.MarkPaid(s, owed(1), "") }},
		{"pay twice", domain.StepPaid, func(s domain.ReturnStatus) (domain.ReturnStatus, error) { return w.MarkPaid(s, owed(1), "") }},
		{"submit a draft", domain.StepDraft, func(s domain.ReturnStatus) (domain.ReturnStatus, error) { return w.MarkSubmitted(s, refund(1)) }},
		{"resubmit", domain.StepSubmitted, func(s domain.ReturnStatus) (domain.ReturnStatus, error) { return w.MarkSubmitted(s, refund(1)) }},
		{"accept a review", domain.StepReview, w.MarkAccepted},
		{"accept twice", domain.StepAccepted, w.MarkAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := domain.ReturnStatus{Step: tt.from}
			got, err := tt.move(start)

			var te *TransitionError
			require.ErrorAs(t, err, &te)
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, te.From)
			assert.Equal(t, start, got)
		})
	}
}

func TestWorkflow_Advance(t *testing.T) {
	w := testWorkflow()
	s := domain.NewReturnStatus()

	s, err := w.Advance(s)
	require.NoError(t, err)
	assert.Equal(t, domain.StepReview, s.Step)

	for _, step := range []domain.ReturnStep{domain.StepReview, domain.StepPaid} {
		start := domain.ReturnStatus{Step: step}
		got, err := w.Advance(start)
		require.ErrorIs(t, err, ErrInvalidTransition, "%s needs a signature to file", step)
		assert.Contains(t, err.Error(), "signature required")
		assert.Equal(t, start, got)
	}

	s, err = w.Advance(domain.ReturnStatus{Step: domain.StepSubmitted})
	require.NoError(t, err)
	assert.Equal(t, domain.StepAccepted, s.Step)

	_, err = w.Advance(s)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPaymentConfirmation(t *testing.T) {
	now := time.UnixMilli(1712345678901)
	assert.Equal(t, "PAY-45678901", PaymentConfirmation(now))
}

func TestNew_ReceiptNumberRange(t *testing.T) {
	w := New()
	for i := 0; i < 50; i++ {
		receipt := w.Receipt()
		assert.Len(t, receipt, 9)
		assert.GreaterOrEqual(t, receipt, "100000000")
		assert.LessOrEqual(t, receipt, "999999999")
	}
}

func TestOwes(t *testing.T) {
	assert.True(t, Owes(owed(10)))
	assert.False(t, Owes(owed(0)))
	assert.False(t, Owes(refund(10)))
}
