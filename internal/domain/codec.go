package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDraftFieldMismatch marks a draft that was restored with some fields
// left at their defaults because the stored value had the wrong type.
var ErrDraftFieldMismatch = errors.New("draft field type mismatch")

// DecodeDraft decodes a stored draft over NewDraft, so keys missing from the
// blob keep their defaults and nested sections are merged field by field.
//
// A type mismatch in a field is not fatal: the returned draft is usable and
// the error wraps ErrDraftFieldMismatch. Malformed JSON returns NewDraft and
// the parse error.
func DecodeDraft(data []byte) (TaxpayerDraft, error) {
	d := NewDraft()
	err := json.Unmarshal(data, &d)
	if err == nil {
		return d, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return d, fmt.Errorf("%w: field %q: %v", ErrDraftFieldMismatch, typeErr.Field, err)
	}
	return NewDraft(), fmt.Errorf("failed to parse draft: %w", err)
}

// DecodeStatus decodes a stored return status over NewReturnStatus.
func DecodeStatus(data []byte) (ReturnStatus, error) {
	s := NewReturnStatus()
	if err := json.Unmarshal(data, &s); err != nil {
		return NewReturnStatus(), fmt.Errorf("failed to parse return status: %w", err)
	}
	if s.Step == "" {
		s.Step = StepDraft
	}
	return s, nil
}
