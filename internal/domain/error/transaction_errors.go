// Package error defines domain-specific errors for the ledger engine.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found for the requesting user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionKind is returned when the transaction kind is invalid.
	ErrInvalidTransactionKind = errors.New("transaction kind must be 'expense' or 'income'")

	// ErrInvalidTransactionAmount is returned when the amount is zero or negative.
	ErrInvalidTransactionAmount = errors.New("transaction amount must be positive")

	// ErrInvalidPaymentMethod is returned when the payment method is not recognized.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrCreditCardRequired is returned when the payment method is credit card
	// but no credit card id was provided.
	ErrCreditCardRequired = errors.New("credit card id is required for credit card payments")

	// ErrInstallmentsWithoutCreditCard is returned when an installment count is
	// given for a non credit card payment.
	ErrInstallmentsWithoutCreditCard = errors.New("installments are only valid for credit card payments")

	// ErrCategoryNotFoundForTransaction is returned when the referenced category does not exist.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrNoFieldsToUpdate is returned when an edit command carries no changes.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is the error kind (01 validation, 02 not
// found, 03 conflict, 04 persistence) and YYYY the specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionKind      TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount    TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidPaymentMethod        TransactionErrorCode = "TXN-010003"
	ErrCodeCreditCardRequired          TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidRecurringSchedule    TransactionErrorCode = "TXN-010005"
	ErrCodeInstallmentsWithoutCard     TransactionErrorCode = "TXN-010006"
	ErrCodeNoFieldsToUpdate            TransactionErrorCode = "TXN-010007"
	ErrCodeDescriptionTooLong          TransactionErrorCode = "TXN-010008"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
	ErrCodeTxnCategoryNotFound TransactionErrorCode = "TXN-020002"
	ErrCodeTxnCardNotFound     TransactionErrorCode = "TXN-020003"

	// Persistence errors (04XXXX)
	ErrCodeTransactionWriteFailed TransactionErrorCode = "TXN-040001"
	ErrCodeRecurringBatchFailed   TransactionErrorCode = "TXN-040002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
