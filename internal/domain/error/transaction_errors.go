// Package error defines domain-specific errors for the e-wallet ledger.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the ledger.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidTransactionTitle is returned when the transaction title is empty.
	ErrInvalidTransactionTitle = errors.New("invalid transaction title")

	// ErrInvalidTransactionCategory is returned when the transaction category is empty.
	ErrInvalidTransactionCategory = errors.New("invalid transaction category")

	// ErrInvalidTransactionDate is returned when the transaction date is missing or malformed.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionNotes is returned when the notes exceed the allowed length.
	ErrInvalidTransactionNotes = errors.New("invalid transaction notes")

	// ErrInvalidTransactionID is returned when a transaction is submitted without an ID.
	ErrInvalidTransactionID = errors.New("invalid transaction id")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType     TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate     TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount   TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound        TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidTransactionTitle    TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidTransactionCategory TransactionErrorCode = "TXN-010006"
	ErrCodeMissingTransactionFields   TransactionErrorCode = "TXN-010007"
	ErrCodeInvalidTransactionID       TransactionErrorCode = "TXN-010008"
	ErrCodeInvalidTransactionNotes    TransactionErrorCode = "TXN-010009"
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

// IsValidationError reports whether err is a transaction validation failure,
// as opposed to a missing record.
func IsValidationError(err error) bool {
	var txnErr *TransactionError
	if !errors.As(err, &txnErr) {
		return false
	}
	return txnErr.Code != ErrCodeTransactionNotFound
}
