package domain

import "time"

// ReturnStep is the position of a return in the filing lifecycle.
type ReturnStep string

const (
	StepDraft     ReturnStep = "draft"
	StepReview    ReturnStep = "review"
	StepPaid      ReturnStep = "paid"
	StepSubmitted ReturnStep = "submitted"
	StepAccepted  ReturnStep = "accepted"
)

// ReturnStatus tracks the lifecycle of a return. It is persisted apart from
// the draft and never read by the calculation engine.
type ReturnStatus struct {
	Step                ReturnStep `json:"step"`
	ReviewedAt          *time.Time `json:"reviewedAt,omitempty"`
	PaidAt              *time.Time `json:"paidAt,omitempty"`
	SubmittedAt         *time.Time `json:"submittedAt,omitempty"`
	AcceptedAt          *time.Time `json:"acceptedAt,omitempty"`
	PaymentConfirmation string     `json:"paymentConfirmation,omitempty"`
	ConfirmationNumber  string     `json:"confirmationNumber,omitempty"`
}

// NewReturnStatus returns the status of a fresh return.
func NewReturnStatus() ReturnStatus {
	return ReturnStatus{Step: StepDraft}
}

// Submitted reports whether the return has been filed.
func (s ReturnStatus) Submitted() bool {
	return s.Step == StepSubmitted || s.Step == StepAccepted
}
