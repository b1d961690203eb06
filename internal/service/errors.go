package service

import (
	"errors"
	"fmt"
)

// Domain errors surfaced to the HTTP layer. Anything else returned by a
// service is an infrastructure failure.
var (
	ErrDuplicateUsername  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateAccountID = errors.New("account_id already in use")
	ErrSummaryOverflow    = errors.New("summary total out of float64 range")
)

// ValidationError reports a missing or invalid input field. Nothing is
// written when it is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
