package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Services return these; handlers map them onto HTTP
// statuses and the uniform {success, error} envelope.
var (
	ErrNotFound        = errors.New("not found")
	ErrNotAuthorized   = errors.New("not authorized")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError names the offending field so the caller can surface it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
