// Package errors provides the error codes and the structured error type used
// across the page walker. Codes are string-based so they read naturally in
// logs and serialize directly into the failure response body.
package errors

// ErrorCode represents a specific error condition of a page walk invocation.
type ErrorCode string

const (
	// Input errors.

	// CodeInvalidInput indicates the invocation payload is malformed or invalid.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates the static configuration is incomplete or invalid.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Walk errors.

	// CodeScanFailed indicates the table read for the current page did not complete.
	CodeScanFailed ErrorCode = "SCAN_FAILED"

	// CodeDispatchFailed indicates the next invocation of the chain could not be triggered.
	CodeDispatchFailed ErrorCode = "DISPATCH_FAILED"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// String returns the code as a plain string.
func (c ErrorCode) String() string {
	return string(c)
}
