// Package error defines domain-specific errors for the QUANTA application.
package error

import "errors"

// Recurring expense domain errors.
var (
	// ErrTemplateNotFound is returned when a recurring template is not found.
	ErrTemplateNotFound = errors.New("recurring template not found")

	// ErrTemplateInactive is returned when an operation targets a deactivated template.
	ErrTemplateInactive = errors.New("recurring template is inactive")

	// ErrMonthlyDocumentNotFound is returned when no monthly expense document exists for a period.
	ErrMonthlyDocumentNotFound = errors.New("monthly expense document not found")

	// ErrMonthlyItemNotFound is returned when a monthly expense item is not found.
	ErrMonthlyItemNotFound = errors.New("monthly expense item not found")

	// ErrItemAlreadyPaid is returned when settling an item that is already paid.
	ErrItemAlreadyPaid = errors.New("monthly expense item already paid")

	// ErrInvalidPeriod is returned when a period string is not of the form YYYY-MM.
	ErrInvalidPeriod = errors.New("invalid period format")

	// ErrReconciliationInvariant is returned when regenerating a monthly
	// document did not yield an item for a template it should contain.
	// This indicates a derivation bug, not a transient fault, and is
	// fatal for the operation that detects it.
	ErrReconciliationInvariant = errors.New("monthly document missing item for template")
)

// RecurringErrorCode defines error codes for recurring expense errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTemplateNotFound         RecurringErrorCode = "REC-010001"
	ErrCodeTemplateInactive         RecurringErrorCode = "REC-010002"
	ErrCodeMonthlyDocumentNotFound  RecurringErrorCode = "REC-010003"
	ErrCodeMonthlyItemNotFound      RecurringErrorCode = "REC-010004"
	ErrCodeItemAlreadyPaid          RecurringErrorCode = "REC-010005"
	ErrCodeInvalidPeriod            RecurringErrorCode = "REC-010006"
	ErrCodeMissingRecurringFields   RecurringErrorCode = "REC-010007"

	// Invariant violations (02XXXX) - fatal for the operation
	ErrCodeReconciliationInvariant RecurringErrorCode = "REC-020001"
)

// RecurringError represents a recurring expense error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
