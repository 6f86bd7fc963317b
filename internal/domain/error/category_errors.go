// Package error defines domain-specific errors for the QUANTA application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameExists is returned when a category with the same name already exists for the user.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrCategoryInUse is returned when deleting a category that still has transactions.
	ErrCategoryInUse = errors.New("category has transactions")

	// ErrSystemCategoryImmutable is returned when modifying or deleting a seeded system category.
	ErrSystemCategoryImmutable = errors.New("system category cannot be modified")

	// ErrUnauthorizedCategoryAccess is returned when user is not authorized to access a category.
	ErrUnauthorizedCategoryAccess = errors.New("unauthorized access to category")

	// ErrInvalidCategoryType is returned when the category type is invalid.
	ErrInvalidCategoryType = errors.New("invalid category type")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNotFound        CategoryErrorCode = "CAT-010001"
	ErrCodeCategoryNameExists      CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryInUse           CategoryErrorCode = "CAT-010003"
	ErrCodeSystemCategoryImmutable CategoryErrorCode = "CAT-010004"
	ErrCodeUnauthorizedCategory    CategoryErrorCode = "CAT-010005"
	ErrCodeInvalidCategoryType     CategoryErrorCode = "CAT-010006"
	ErrCodeMissingCategoryFields   CategoryErrorCode = "CAT-010007"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
