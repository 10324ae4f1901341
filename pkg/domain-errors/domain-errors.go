package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in issuance terms, not HTTP terms.
type Code string

const (
	CodeInvalidFormat  Code = "invalid_format"
	CodeNotFound       Code = "not_found"
	CodeMissingFields  Code = "missing_fields"
	CodeValidation     Code = "validation_failed"
	CodeBadRequest     Code = "bad_request"
	CodeAlreadyIssued  Code = "already_issued"
	CodeWrongSecret    Code = "wrong_secret"
	CodeInternal       Code = "internal_error"
	CodeRenderFailed   Code = "render_failed"
	CodeTimeout        Code = "timeout"
	CodeUnavailable    Code = "unavailable"
	CodePayloadTooBig  Code = "payload_too_large"
	CodeInvariantBreak Code = "invariant_violation"
)

// Error wraps domain or infrastructure failures with a stable code.
// Fields carries localized field labels for validation failures; it is
// empty for every other code.
type Error struct {
	Code    Code
	Message string
	Fields  []string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// NewMissingFields reports the labels of every absent mandatory field.
func NewMissingFields(msg string, labels []string) error {
	return &Error{Code: CodeMissingFields, Message: msg, Fields: append([]string(nil), labels...)}
}

// NewWithCause creates a domain error with code that keeps err as its cause.
// Unlike Wrap, code always wins over a domain code already in err.
func NewWithCause(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		return &Error{Code: existing.Code, Message: msg, Fields: existing.Fields, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the outermost domain error in the chain, or
// CodeInternal when the chain carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
