// Package apperr defines the error kinds the service reports to
// callers. Services return errors wrapping one of these kinds;
// handlers match with errors.Is and map the kind to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal error")
)

// Wrap attaches a caller-facing message to a kind. The kind stays
// matchable with errors.Is.
func Wrap(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{kind}, args...)...)
}

// Kind returns the sentinel the error wraps, or ErrInternal for
// anything unclassified.
func Kind(err error) error {
	for _, kind := range []error{
		ErrValidation,
		ErrConflict,
		ErrInvalidCredentials,
		ErrUnauthenticated,
		ErrForbidden,
		ErrNotFound,
		ErrInternal,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}
