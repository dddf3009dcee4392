// Package common defines sentinel errors and small helpers shared across the
// gamedeals client layers. Callers should use errors.Is to match these values:
// every specific error wraps its category, so both forms match.
package common

import (
	"errors"
	"fmt"
)

var (
	// Categories.
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrStorage        = errors.New("storage error")

	// Validation errors: reported to the caller, no state change.
	ErrInvalidEmailFormat     = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmailAlreadyRegistered = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrPasswordMismatch       = fmt.Errorf("%w: passwords do not match", ErrValidation)
	ErrWeakPassword           = fmt.Errorf("%w: weak password", ErrValidation)

	// Authentication errors: reported to the caller, no state change.
	ErrEmailNotFound          = fmt.Errorf("%w: email not found", ErrAuthentication)
	ErrChallengeFailed        = fmt.Errorf("%w: captcha verification failed", ErrAuthentication)
	ErrInvalidPassword        = fmt.Errorf("%w: invalid password", ErrAuthentication)
	ErrSecurityAnswerMismatch = fmt.Errorf("%w: incorrect security answer", ErrAuthentication)
)

// StorageError wraps an underlying I/O failure so that it matches both
// ErrStorage and the original error.
func StorageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// WeakPasswordError carries the first password-policy rule that failed.
// It matches ErrWeakPassword and ErrValidation.
type WeakPasswordError struct {
	Reason string
}

func (e *WeakPasswordError) Error() string {
	return ErrWeakPassword.Error() + ": " + e.Reason
}

func (e *WeakPasswordError) Unwrap() error { return ErrWeakPassword }
