package domain

import (
	"errors"
	"fmt"
)

// Error kinds separate missing identifiers, malformed input and business-rule
// violations. Anything not wrapped in one of these types is treated as an
// internal fault by the transport layer.

// NotFoundError means a referenced user, item, booking or request id does not
// exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// ValidationError means malformed input reached the core: an unknown state
// filter, a non-chronological window, a bad page window.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError means a business rule was violated: unavailable item,
// self-booking, re-approving a decided booking, acting on a booking one is
// not party to.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func NotFound(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsConflict(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}
