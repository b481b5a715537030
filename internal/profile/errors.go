package profile

import (
	"errors"
	"fmt"
)

// ErrInvalidAttempt indicates a store operation was rejected before any
// state change because its input violated a constraint.
type ErrInvalidAttempt struct {
	Field  string
	Reason string
}

func (e *ErrInvalidAttempt) Error() string {
	return fmt.Sprintf("invalid attempt: %s: %s", e.Field, e.Reason)
}

// ErrStorageUnavailable indicates the backing store could not be read or
// written. The store does not retry; callers decide how to recover.
type ErrStorageUnavailable struct {
	Op  string
	Err error
}

func (e *ErrStorageUnavailable) Error() string {
	return fmt.Sprintf("storage unavailable: %s: %v", e.Op, e.Err)
}

func (e *ErrStorageUnavailable) Unwrap() error { return e.Err }

// IsInvalidAttempt reports whether err is an ErrInvalidAttempt.
func IsInvalidAttempt(err error) bool {
	var e *ErrInvalidAttempt
	return errors.As(err, &e)
}

// IsStorageUnavailable reports whether err is an ErrStorageUnavailable.
func IsStorageUnavailable(err error) bool {
	var e *ErrStorageUnavailable
	return errors.As(err, &e)
}
