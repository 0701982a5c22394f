package lead

import (
	"errors"
	"fmt"
)

// ErrInvalidPhone rejects a submission whose phone does not match the
// selected country's pattern exactly.
var ErrInvalidPhone = errors.New("invalid phone number")

// MissingFieldError names the first required field that is empty after
// trimming.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// PersistenceError wraps a store failure. It is terminal: the submission
// is surfaced to the caller and not retried.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
