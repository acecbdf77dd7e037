package services

import (
	"errors"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("concurrent update conflict")
)

// IdentityError describes one violated registration rule.
type IdentityError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ValidationError lists every rule the input broke.
type ValidationError struct {
	Errors []IdentityError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, ie := range e.Errors {
		msgs = append(msgs, ie.Description)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) add(code, description string) {
	e.Errors = append(e.Errors, IdentityError{Code: code, Description: description})
}

// StoreError carries a write the database rejected. Its message is the driver's own.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// badRequest wraps ErrBadRequest with a caller-facing message.
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string { return e.msg }

func (e *badRequest) Is(target error) bool { return target == ErrBadRequest }

func newBadRequest(msg string) error { return &badRequest{msg: msg} }

// notFound wraps ErrNotFound with a caller-facing message.
type notFound struct {
	msg string
}

func (e *notFound) Error() string { return e.msg }

func (e *notFound) Is(target error) bool { return target == ErrNotFound }

func newNotFound(msg string) error { return &notFound{msg: msg} }
