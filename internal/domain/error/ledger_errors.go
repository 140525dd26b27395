package error

import "errors"

// Ledger domain errors.
var (
	// ErrLedgerClosed is returned when an operation is issued after the ledger was closed.
	ErrLedgerClosed = errors.New("ledger is closed")

	// ErrInvalidTheme is returned when preferences carry an unknown theme.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrInvalidCurrency is returned when preferences carry an unsupported currency.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrInvalidBudgetPeriod is returned when a budget carries an unknown period.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrInvalidBudgetAmount is returned when a budget ceiling is negative.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrDuplicateBudget is returned when two budgets share an ID.
	ErrDuplicateBudget = errors.New("duplicate budget")

	// ErrInvalidTimePeriod is returned when an analytics period is unknown.
	ErrInvalidTimePeriod = errors.New("invalid time period")

	// ErrInvalidExportDocument is returned when an import document cannot be parsed.
	ErrInvalidExportDocument = errors.New("invalid export document")
)

// LedgerErrorCode defines error codes for ledger level errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTheme          LedgerErrorCode = "LDG-010001"
	ErrCodeInvalidCurrency       LedgerErrorCode = "LDG-010002"
	ErrCodeInvalidBudgetPeriod   LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidBudgetAmount   LedgerErrorCode = "LDG-010004"
	ErrCodeInvalidExportDocument LedgerErrorCode = "LDG-010005"
	ErrCodeInvalidTimePeriod     LedgerErrorCode = "LDG-010006"
	ErrCodeDuplicateBudget       LedgerErrorCode = "LDG-010007"

	// Lifecycle errors (02XXXX)
	ErrCodeLedgerClosed LedgerErrorCode = "LDG-020001"

	// Request errors (03XXXX)
	ErrCodeRateLimited LedgerErrorCode = "LDG-030001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
