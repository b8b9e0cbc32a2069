package service

import (
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/kart-challenge/food-ordering/internal/repository"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
)

// Error is a classified failure with a message safe to show to clients.
// Kind is one of the sentinel errors above and is matched with errors.Is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func notFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func invalid(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Message returns the client-facing message of a classified error
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Message, true
	}
	return "", false
}

// storeError wraps an unclassified repository failure with the operation
// that hit it. ErrUnavailable stays matchable through the wrap.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func isNotFound(err error) bool { return errors.Is(err, repository.ErrNotFound) }

func isDuplicate(err error) bool { return errors.Is(err, repository.ErrDuplicateKey) }

func isVersionConflict(err error) bool { return errors.Is(err, repository.ErrVersionConflict) }
