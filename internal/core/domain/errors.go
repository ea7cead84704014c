package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrUnsupportedType indicates a file with an extension the loader
	// does not accept, or an unknown responder provider name.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrReadFailure indicates the file bytes could not be read.
	ErrReadFailure = errors.New("read failure")

	// ErrEmptyMessage indicates a submission whose trimmed text is empty.
	// Rejected submissions leave the conversation untouched.
	ErrEmptyMessage = errors.New("empty message")

	// ErrResponsePending indicates a submission arrived while a response
	// was already in flight. At most one response is pending at a time.
	ErrResponsePending = errors.New("response pending")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResponderUnavailable indicates no responder strategy is configured.
	ErrResponderUnavailable = errors.New("responder unavailable")
)
