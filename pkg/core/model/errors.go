package model

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. All of these are expected, recoverable
// conditions; anything else coming out of the storage layer is treated as a
// system fault.
var (
	// ErrNotFound is returned when a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when the actor lacks the role or
	// ownership required for an operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidState is returned when the requested transition is illegal
	// given the entity's current status.
	ErrInvalidState = errors.New("invalid state for this operation")

	// ErrDuplicateApplication is returned when a volunteer already has a
	// pending application for the same request.
	ErrDuplicateApplication = errors.New("volunteer already has a pending application for this request")
)

// ValidationError reports malformed input with field-level detail.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
