package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFile         = errors.New("file error")
	ErrInvalidState = errors.New("invalid state")
	ErrNetwork      = errors.New("network error")
	ErrProtocol     = errors.New("protocol error")
	ErrInvalidInput = errors.New("invalid input")
)

// Messages surfaced for precondition failures.
const (
	MsgNoDocument   = "No file or empty text."
	MsgNoPrediction = "Run classification first."
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

// InvalidState builds a precondition error whose cause is the user-facing message.
func InvalidState(operation, message string) error {
	return WrapError(ErrInvalidState, operation, errors.New(message))
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// Cause returns the message of the error passed to WrapError, which is the
// part meant for display. Errors without a kind are returned whole.
func Cause(err error) string {
	if err == nil {
		return ""
	}
	for e := err; e != nil; {
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			errs := u.Unwrap()
			if len(errs) == 0 {
				return e.Error()
			}
			return errs[len(errs)-1].Error()
		case interface{ Unwrap() error }:
			e = u.Unwrap()
		default:
			e = nil
		}
	}
	return err.Error()
}
