package pipeline

import (
	"errors"
	"fmt"
)

// FailureKind classifies conversion failures so callers can react without
// matching message text.
type FailureKind string

const (
	// FailureStructural means detection or clustering found no grid in an
	// input that was otherwise readable. Degrades to warnings, not errors,
	// unless nothing else produced data.
	FailureStructural FailureKind = "structural"

	// FailureMalformedInput means the input could not be read at all: not
	// a valid archive, image, or PDF, or an unsupported extension.
	FailureMalformedInput FailureKind = "malformed_input"

	// FailureBackend means one extraction backend failed. Isolated per
	// backend and surfaced as a warning while the pipeline proceeds.
	FailureBackend FailureKind = "backend"

	// FailureNoData means no tables survived after every backend ran.
	// Always surfaced as an explicit error, never as an empty success.
	FailureNoData FailureKind = "no_data"
)

// ConversionError is a classified pipeline failure.
type ConversionError struct {
	Kind FailureKind
	Msg  string
	Err  error
}

// Error implements error.
func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Unwrap returns the underlying cause, if any.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// convErr builds a classified error wrapping an optional cause.
func convErr(kind FailureKind, err error, format string, args ...any) *ConversionError {
	return &ConversionError{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

// KindOf extracts the failure classification from an error chain.
// Unclassified errors report as malformed input, the most conservative
// user-facing category.
func KindOf(err error) FailureKind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return FailureMalformedInput
}
