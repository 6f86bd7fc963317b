// Package coach contains AI coaching use cases.
package coach

import (
	"context"
	"errors"
	"strings"

	domainerror "github.com/quanta/backend/internal/domain/error"
)

// classifiedError maps a raw AI service failure onto a coach error code
// and a fallback decision.
type classifiedError struct {
	Code domainerror.CoachErrorCode
	// AllowStaleFallback is set for transient failures where serving the
	// last cached payload is preferable to surfacing the error.
	AllowStaleFallback bool
}

// classifyError inspects a generation failure. Rate limiting and
// transient unavailability allow a stale-cache fallback; parse and
// configuration errors do not, since a retry with the same setup would
// fail identically.
func classifyError(err error) classifiedError {
	if errors.Is(err, domainerror.ErrCoachRateLimited) {
		return classifiedError{Code: domainerror.ErrCodeCoachRateLimited, AllowStaleFallback: true}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return classifiedError{Code: domainerror.ErrCodeCoachUnavailable, AllowStaleFallback: true}
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "quota") ||
		strings.Contains(errStr, "429") || strings.Contains(errStr, "exhausted") {
		return classifiedError{Code: domainerror.ErrCodeCoachRateLimited, AllowStaleFallback: true}
	}

	if strings.Contains(errStr, "parse") || strings.Contains(errStr, "json") ||
		strings.Contains(errStr, "unmarshal") || strings.Contains(errStr, "decode") {
		return classifiedError{Code: domainerror.ErrCodeCoachInvalidResponse, AllowStaleFallback: false}
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") ||
		strings.Contains(errStr, "invalid api key") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "authentication") {
		return classifiedError{Code: domainerror.ErrCodeCoachUnavailable, AllowStaleFallback: false}
	}

	// Network-shaped failures and everything else: transient, fall back.
	return classifiedError{Code: domainerror.ErrCodeCoachUnavailable, AllowStaleFallback: true}
}
