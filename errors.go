package travel_journal

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to the user. Match with errors.Is.
var (
	ErrAuth          = errors.New("authentication failed")
	ErrValidation    = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrAuthorization = errors.New("not allowed")
	ErrUpload        = errors.New("image upload failed")
	ErrNetwork       = errors.New("network failure")
	ErrBackend       = errors.New("unexpected backend response")
)

// Error is a failed backend or form operation.
type Error struct {
	Kind    error
	Op      string
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Op == "" {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// UserMessage is the text shown inline next to the form or list that failed.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
