package appointment

import "errors"

var (
	// ErrNotFound covers both an unknown code and a capability mismatch so
	// the two causes stay indistinguishable to the caller.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidTransition is returned when a transition guard fails,
	// including a lost compare-and-set race. Nothing was written.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation failed")
)
