// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/domain/entity"
)

// CoachStats is the aggregate snapshot handed to the AI coach alongside
// recent transactions and goals.
type CoachStats struct {
	Balance           decimal.Decimal
	MonthIncome       decimal.Decimal
	MonthExpenses     decimal.Decimal
	AvgMonthlySavings decimal.Decimal
	TopCategories     []entity.CategorySpend
}

// CoachRequest is the input for a coaching generation call.
type CoachRequest struct {
	Stats        CoachStats
	Transactions []*entity.Transaction
	Goals        []*entity.Goal
	Categories   []*entity.Category
	Currency     string
	Locale       string
}

// CoachService defines the interface for the external AI text service.
type CoachService interface {
	// IsAvailable reports whether the service is configured.
	IsAvailable() bool

	// GenerateAnalysis asks the AI service for a full financial analysis.
	// Rate-limit rejections surface as a coach rate-limit error so callers
	// can fall back to a cached copy.
	GenerateAnalysis(ctx context.Context, request *CoachRequest) (*entity.FinancialAnalysis, error)

	// GenerateTips asks the AI service for short actionable tips.
	GenerateTips(ctx context.Context, request *CoachRequest) (*entity.FinancialTips, error)
}

// AnalysisCache defines the interface for caching coach responses per
// user. Entries carry a TTL; Get returns ok=false on miss. GetStale
// ignores expiry and is used as the rate-limit fallback.
type AnalysisCache interface {
	// GetAnalysis retrieves a cached analysis for a user.
	GetAnalysis(ctx context.Context, userID string) (*entity.FinancialAnalysis, bool, error)

	// GetStaleAnalysis retrieves a cached analysis even when expired.
	GetStaleAnalysis(ctx context.Context, userID string) (*entity.FinancialAnalysis, bool, error)

	// SetAnalysis stores an analysis with the given TTL.
	SetAnalysis(ctx context.Context, userID string, analysis *entity.FinancialAnalysis, ttl time.Duration) error

	// GetTips retrieves cached tips for a user.
	GetTips(ctx context.Context, userID string) (*entity.FinancialTips, bool, error)

	// GetStaleTips retrieves cached tips even when expired.
	GetStaleTips(ctx context.Context, userID string) (*entity.FinancialTips, bool, error)

	// SetTips stores tips with the given TTL.
	SetTips(ctx context.Context, userID string, tips *entity.FinancialTips, ttl time.Duration) error
}
