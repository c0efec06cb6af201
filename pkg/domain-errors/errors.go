// Package derrors defines the domain error taxonomy shared by services and
// transport. Stores return sentinel errors; services translate them into one
// of these coded errors; httputil maps codes onto HTTP statuses.
package derrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error. The set is closed: handlers switch on it to
// pick a status, clients switch on it to decide whether a retry makes sense.
type Code string

const (
	// CodeInvalidArgument marks malformed or missing input. Always the
	// caller's fault, never retried automatically.
	CodeInvalidArgument Code = "invalid_argument"

	// CodeDuplicateAsset marks a fingerprint collision on mint. Not
	// retryable; the identifier is taken forever, revoked or not.
	CodeDuplicateAsset Code = "duplicate_asset"

	// CodeNotFound marks a state mismatch on revoke or an explicit record
	// fetch. Verification misses are NOT errors and never carry this code.
	CodeNotFound Code = "not_found"

	// CodeAlreadyRevoked marks a revoke on a record already in its terminal
	// state. Surfaced verbatim, never silently accepted.
	CodeAlreadyRevoked Code = "already_revoked"

	// CodeUnauthorized marks a non-owner attempting mint or revoke.
	CodeUnauthorized Code = "unauthorized"

	// CodeUnavailable marks an unreachable ledger with no fallback bound.
	CodeUnavailable Code = "backend_unavailable"

	// CodeTimeout marks a ledger confirmation that exceeded the caller's
	// deadline. The submission may still land; callers re-check existence
	// by fingerprint before resubmitting.
	CodeTimeout Code = "timeout"

	// CodeInternal marks everything the caller cannot act on.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. Use New/Wrap rather than constructing it.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err is a domain error carrying the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not come through this package.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
