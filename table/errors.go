package table

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// AWS error code constants
const (
	ResourceNotFoundException              = "ResourceNotFoundException"
	AccessDeniedException                  = "AccessDeniedException"
	ProvisionedThroughputExceededException = "ProvisionedThroughputExceededException"
	ThrottlingException                    = "ThrottlingException"
	RequestLimitExceeded                   = "RequestLimitExceeded"
)

// Sentinel errors for common table read failures.
var (
	// ErrTableNotFound indicates that the table does not exist.
	ErrTableNotFound = errors.New("table: not found")

	// ErrAccessDenied indicates that the credentials may not scan the table.
	ErrAccessDenied = errors.New("table: access denied")

	// ErrThrottled indicates the read was rejected for exceeding throughput limits.
	ErrThrottled = errors.New("table: throttled")

	// ErrInvalidInput indicates that the reader was misconfigured.
	ErrInvalidInput = errors.New("table: invalid input")
)

// Error represents a table operation error with the table it concerns.
type Error struct {
	// Op is the operation that failed (e.g. "scan")
	Op string

	// Table is the table name
	Table string

	// Err is the underlying error
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("table.%s %s: %v", e.Op, e.Table, e.Err)
	}
	return fmt.Sprintf("table.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// classify maps AWS API error codes onto the package sentinels, keeping the
// original error in the chain.
func classify(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	case ResourceNotFoundException:
		return fmt.Errorf("%w: %w", ErrTableNotFound, err)
	case AccessDeniedException:
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	case ProvisionedThroughputExceededException, ThrottlingException, RequestLimitExceeded:
		return fmt.Errorf("%w: %w", ErrThrottled, err)
	}
	return err
}
