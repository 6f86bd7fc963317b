package coach

import (
	"context"
	"errors"
	"testing"

	domainerror "github.com/quanta/backend/internal/domain/error"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCode     domainerror.CoachErrorCode
		wantFallback bool
	}{
		{
			name:         "rate limit sentinel",
			err:          domainerror.ErrCoachRateLimited,
			wantCode:     domainerror.ErrCodeCoachRateLimited,
			wantFallback: true,
		},
		{
			name:         "wrapped rate limit sentinel",
			err:          errors.Join(errors.New("api call failed"), domainerror.ErrCoachRateLimited),
			wantCode:     domainerror.ErrCodeCoachRateLimited,
			wantFallback: true,
		},
		{
			name:         "quota message",
			err:          errors.New("googleapi: Error 429: quota exceeded"),
			wantCode:     domainerror.ErrCodeCoachRateLimited,
			wantFallback: true,
		},
		{
			name:         "resource exhausted",
			err:          errors.New("rpc error: code = ResourceExhausted desc = exceeded"),
			wantCode:     domainerror.ErrCodeCoachRateLimited,
			wantFallback: true,
		},
		{
			name:         "context deadline",
			err:          context.DeadlineExceeded,
			wantCode:     domainerror.ErrCodeCoachUnavailable,
			wantFallback: true,
		},
		{
			name:         "parse failure",
			err:          errors.New("failed to unmarshal analysis payload"),
			wantCode:     domainerror.ErrCodeCoachInvalidResponse,
			wantFallback: false,
		},
		{
			name:         "invalid json",
			err:          errors.New("invalid json in model response"),
			wantCode:     domainerror.ErrCodeCoachInvalidResponse,
			wantFallback: false,
		},
		{
			name:         "auth failure",
			err:          errors.New("googleapi: Error 403: API key not valid"),
			wantCode:     domainerror.ErrCodeCoachUnavailable,
			wantFallback: false,
		},
		{
			name:         "unknown failure",
			err:          errors.New("connection reset by peer"),
			wantCode:     domainerror.ErrCodeCoachUnavailable,
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("classifyError().Code = %s, want %s", got.Code, tt.wantCode)
			}
			if got.AllowStaleFallback != tt.wantFallback {
				t.Errorf("classifyError().AllowStaleFallback = %v, want %v", got.AllowStaleFallback, tt.wantFallback)
			}
		})
	}
}
