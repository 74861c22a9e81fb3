package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// Error is a coded error carrying the operation that failed and the
// underlying cause.
type Error struct {
	// Code classifies the failure.
	Code ErrorCode

	// Op is the operation that failed (e.g. "scan", "dispatch").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the error as {"code", "op", "message"}.
func (e *Error) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		Code    ErrorCode `json:"code"`
		Op      string    `json:"op,omitempty"`
		Message string    `json:"message"`
	}{
		Code:    e.Code,
		Op:      e.Op,
		Message: msg,
	})
}

// New creates a new Error with the given code, operation and cause.
func New(code ErrorCode, op string, err error) *Error {
	return &Error{
		Code: code,
		Op:   op,
		Err:  err,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// Marshal returns the JSON form of err. Errors that are not *Error are
// reported with CodeUnknown.
func Marshal(err error) []byte {
	var e *Error
	if !stderrors.As(err, &e) {
		e = New(CodeUnknown, "", err)
	}
	b, merr := json.Marshal(e)
	if merr != nil {
		return []byte(fmt.Sprintf(`{"code":%q}`, e.Code))
	}
	return b
}
