// Package transform builds what-if variants of a draft. Each transform is a
// small, composable edit such as switching filing status or maxing out an
// IRA contribution.
package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxpilot/internal/domain"
)

// DraftTransform is one what-if edit to a draft.
type DraftTransform interface {
	// Apply returns a modified copy of base. base itself is never changed.
	Apply(base domain.TaxpayerDraft) (domain.TaxpayerDraft, error)

	// Name returns the registry identifier, e.g. "set_state".
	Name() string

	// Description returns a human-readable summary of the edit.
	Description() string

	// Validate checks the transform's parameters against base without applying it.
	Validate(base domain.TaxpayerDraft) error
}

// ApplyTransforms applies transforms in order, each to the output of the
// previous one. The base draft is left untouched.
func ApplyTransforms(base domain.TaxpayerDraft, transforms []DraftTransform) (domain.TaxpayerDraft, error) {
	current := base.Clone()

	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}

	return current, nil
}

// Describe joins the descriptions of transforms with "; ".
func Describe(transforms []DraftTransform) string {
	out := ""
	for i, t := range transforms {
		if i > 0 {
			out += "; "
		}
		out += t.Description()
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
