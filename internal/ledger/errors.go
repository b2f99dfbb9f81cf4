package ledger

import (
	"errors"
	"fmt"
)

// FailureKind classifies pipeline failures for the transport layer.
type FailureKind string

const (
	// ValidationFailed marks a malformed or out-of-range input field.
	// Client-caused, not retryable.
	ValidationFailed FailureKind = "VALIDATION_FAILED"

	// StoreUnavailable marks a table that could not be opened, typically a
	// permission problem or a missing store identifier.
	StoreUnavailable FailureKind = "STORE_UNAVAILABLE"

	// WriteFailed marks a read or write against an opened table that
	// failed. Transient, retryable by the caller.
	WriteFailed FailureKind = "WRITE_FAILED"
)

// Error is a structured pipeline failure. The append coordinator is the
// only place that produces these; lower layers return plain errors which
// get classified on the way out.
type Error struct {
	Kind  FailureKind
	Field string // offending field for validation failures, empty otherwise
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.cause }

// Message returns the human-readable part of the failure without the kind
// prefix or the underlying cause chain.
func (e *Error) Message() string { return e.msg }

// KindOf extracts the failure kind from an error returned by the ledger.
// Unclassified errors report WriteFailed, the transient default.
func KindOf(err error) FailureKind {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind
	}
	return WriteFailed
}

func invalidField(field, format string, args ...interface{}) *Error {
	return &Error{
		Kind:  ValidationFailed,
		Field: field,
		msg:   fmt.Sprintf("field %q: %s", field, fmt.Sprintf(format, args...)),
	}
}

func unavailable(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: StoreUnavailable, msg: fmt.Sprintf(format, args...), cause: cause}
}

func writeFailed(cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: WriteFailed, msg: fmt.Sprintf(format, args...), cause: cause}
}
