// Package error defines domain-specific errors for the ledger engine.
package error

import "errors"

// Statement domain errors.
var (
	// ErrStatementNotFound is returned when no statement exists for the
	// requested (card, month, year) cycle.
	ErrStatementNotFound = errors.New("statement not found")

	// ErrInvalidStatementCycle is returned when the month or year of a
	// requested cycle is out of range.
	ErrInvalidStatementCycle = errors.New("invalid statement month/year")

	// ErrStatementAlreadyPaid is returned when settling an already paid statement.
	ErrStatementAlreadyPaid = errors.New("statement is already paid")
)

// StatementErrorCode defines error codes for statement errors.
// Format: STMT-XXYYYY where XX is the error kind (01 validation, 02 not
// found, 03 conflict, 04 persistence).
type StatementErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidStatementCycle StatementErrorCode = "STMT-010001"

	// Not found errors (02XXXX)
	ErrCodeStatementNotFound StatementErrorCode = "STMT-020001"

	// Conflict errors (03XXXX)
	ErrCodeStatementAlreadyPaid StatementErrorCode = "STMT-030001"

	// Persistence errors (04XXXX)
	ErrCodeStatementWriteFailed StatementErrorCode = "STMT-040001"
)

// StatementError represents a statement error with code and message.
type StatementError struct {
	Code    StatementErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatementError) Unwrap() error {
	return e.Err
}

// NewStatementError creates a new StatementError with the given code and message.
func NewStatementError(code StatementErrorCode, message string, err error) *StatementError {
	return &StatementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
