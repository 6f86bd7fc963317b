// Package error defines domain-specific errors for the QUANTA application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrInvalidTargetAmount is returned when the target amount is invalid (zero or negative).
	ErrInvalidTargetAmount = errors.New("invalid target amount")

	// ErrInvalidContributionAmount is returned when a contribution amount is invalid.
	ErrInvalidContributionAmount = errors.New("invalid contribution amount")

	// ErrInsufficientFunds is returned when the available balance does not
	// cover a contribution. Advisory: it blocks the specific action only.
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// ErrContributionNotFound is returned when a contribution history index is out of range.
	ErrContributionNotFound = errors.New("contribution not found")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")

	// ErrInvalidContributionFrequency is returned when the contribution frequency is invalid.
	ErrInvalidContributionFrequency = errors.New("invalid contribution frequency")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound             GoalErrorCode = "GOL-010001"
	ErrCodeInvalidTargetAmount      GoalErrorCode = "GOL-010002"
	ErrCodeInvalidContributionFreq  GoalErrorCode = "GOL-010003"
	ErrCodeUnauthorizedGoalAccess   GoalErrorCode = "GOL-010004"
	ErrCodeMissingGoalFields        GoalErrorCode = "GOL-010005"

	// Contribution errors (02XXXX)
	ErrCodeInvalidContribution   GoalErrorCode = "GOL-020001"
	ErrCodeInsufficientFunds     GoalErrorCode = "GOL-020002"
	ErrCodeContributionNotFound  GoalErrorCode = "GOL-020003"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
