package domain

import "errors"

// ErrorKind classifies a failed operation so callers can branch on the
// category instead of matching message text.
type ErrorKind int

const (
	// KindValidation marks malformed or missing caller input. Recoverable by
	// correcting the request.
	KindValidation ErrorKind = iota + 1
	// KindUpstream marks an unexpected or empty response shape from a remote
	// dependency. Never retried here.
	KindUpstream
	// KindNoRates marks a valid quote request that no carrier can serve. A
	// business outcome, not a fault.
	KindNoRates
)

// Error carries a machine-readable kind plus the human-readable message shown
// to the storefront user.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewUpstreamError(message string) *Error {
	return &Error{Kind: KindUpstream, Message: message}
}

func NewNoRatesError(message string) *Error {
	return &Error{Kind: KindNoRates, Message: message}
}

// KindOf returns the kind of err, or 0 for untagged errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
