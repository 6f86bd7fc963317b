// Package error defines domain-specific errors for the QUANTA application.
package error

import "errors"

// Reminder domain errors.
var (
	// ErrPermanentSendFailure is returned when a reminder email failed in a
	// way that will not succeed on retry (bad recipient, auth failure).
	ErrPermanentSendFailure = errors.New("permanent reminder send failure")

	// ErrTransientSendFailure is returned when a reminder email failed for
	// a reason that may clear on retry.
	ErrTransientSendFailure = errors.New("transient reminder send failure")
)

// ReminderErrorCode defines error codes for reminder errors.
// Format: NTF-XXYYYY where XX is category and YYYY is specific error.
type ReminderErrorCode string

const (
	// Send errors (01XXXX)
	ErrCodePermanentSendFailure ReminderErrorCode = "NTF-010001"
	ErrCodeTransientSendFailure ReminderErrorCode = "NTF-010002"
)

// ReminderError represents a reminder error with code and message.
type ReminderError struct {
	Code    ReminderErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReminderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReminderError) Unwrap() error {
	return e.Err
}

// NewReminderError creates a new ReminderError with the given code and message.
func NewReminderError(code ReminderErrorCode, message string, err error) *ReminderError {
	return &ReminderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
