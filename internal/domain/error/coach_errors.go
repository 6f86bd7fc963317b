// Package error defines domain-specific errors for the QUANTA application.
package error

import "errors"

// AI coach domain errors.
var (
	// ErrCoachUnavailable is returned when the AI service is not configured or unreachable.
	ErrCoachUnavailable = errors.New("coach service unavailable")

	// ErrCoachRateLimited is returned when the AI service rejects a request
	// for quota reasons. Callers fall back to the last cached analysis and
	// do not surface this to the user when a fallback exists.
	ErrCoachRateLimited = errors.New("coach service rate limited")

	// ErrCoachInvalidResponse is returned when the AI response cannot be parsed.
	ErrCoachInvalidResponse = errors.New("coach service returned an invalid response")

	// ErrAnalysisNotAvailable is returned when no analysis could be generated and no cached copy exists.
	ErrAnalysisNotAvailable = errors.New("no financial analysis available")
)

// CoachErrorCode defines error codes for AI coach errors.
// Format: CCH-XXYYYY where XX is category and YYYY is specific error.
type CoachErrorCode string

const (
	// Service errors (01XXXX)
	ErrCodeCoachUnavailable     CoachErrorCode = "CCH-010001"
	ErrCodeCoachRateLimited     CoachErrorCode = "CCH-010002"
	ErrCodeCoachInvalidResponse CoachErrorCode = "CCH-010003"
	ErrCodeAnalysisNotAvailable CoachErrorCode = "CCH-010004"
)

// CoachError represents an AI coach error with code and message.
type CoachError struct {
	Code    CoachErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CoachError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CoachError) Unwrap() error {
	return e.Err
}

// NewCoachError creates a new CoachError with the given code and message.
func NewCoachError(code CoachErrorCode, message string, err error) *CoachError {
	return &CoachError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
