package booking

import (
	"errors"
	"fmt"
)

// Kind classifies a booking failure so callers can pick the right remedy:
// a conflict needs new dates, a failed payment needs a retry.
type Kind string

const (
	KindInvalidArgument     Kind = "invalid_argument"
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindConflict            Kind = "conflict"
	KindPaymentNotFound     Kind = "payment_not_found"
	KindPaymentNotSucceeded Kind = "payment_not_succeeded"
	KindPaymentMismatch     Kind = "payment_mismatch"
	KindAlreadyCancelled    Kind = "already_cancelled"
	KindUnavailable         Kind = "unavailable"
)

// Error is the typed failure surfaced by every engine component.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a typed booking error.
func NewError(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind, or "" for untyped errors.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}
