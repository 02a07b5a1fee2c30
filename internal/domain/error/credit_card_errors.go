// Package error defines domain-specific errors for the ledger engine.
package error

import "errors"

// Credit card domain errors.
var (
	// ErrCreditCardNotFound is returned when a credit card does not exist or
	// does not belong to the requesting user.
	ErrCreditCardNotFound = errors.New("credit card not found")

	// ErrInvalidClosingDay is returned when the closing day is outside 1-31.
	ErrInvalidClosingDay = errors.New("closing day must be between 1 and 31")

	// ErrInvalidDueDay is returned when the due day is outside 1-31.
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

	// ErrInvalidCreditLimit is returned when the credit limit is negative.
	ErrInvalidCreditLimit = errors.New("credit limit must not be negative")

	// ErrCreditCardNameRequired is returned when the card name is empty.
	ErrCreditCardNameRequired = errors.New("credit card name is required")
)

// CreditCardErrorCode defines error codes for credit card errors.
// Format: CARD-XXYYYY where XX is the error kind (01 validation, 02 not found).
type CreditCardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidClosingDay      CreditCardErrorCode = "CARD-010001"
	ErrCodeInvalidDueDay          CreditCardErrorCode = "CARD-010002"
	ErrCodeInvalidCreditLimit     CreditCardErrorCode = "CARD-010003"
	ErrCodeCreditCardNameRequired CreditCardErrorCode = "CARD-010004"

	// Not found errors (02XXXX)
	ErrCodeCreditCardNotFound CreditCardErrorCode = "CARD-020001"
)

// CreditCardError represents a credit card error with code and message.
type CreditCardError struct {
	Code    CreditCardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CreditCardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CreditCardError) Unwrap() error {
	return e.Err
}

// NewCreditCardError creates a new CreditCardError with the given code and message.
func NewCreditCardError(code CreditCardErrorCode, message string, err error) *CreditCardError {
	return &CreditCardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
