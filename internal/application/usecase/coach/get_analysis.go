// Package coach contains AI coaching use cases.
package coach

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// AnalysisCacheTTL is how long a generated analysis stays fresh.
const AnalysisCacheTTL = 24 * time.Hour

// GetAnalysisInput represents the input for fetching a financial analysis.
type GetAnalysisInput struct {
	UserID uuid.UUID
	// Refresh bypasses the fresh-cache check and regenerates.
	Refresh bool
}

// GetAnalysisOutput represents the output of fetching a financial analysis.
type GetAnalysisOutput struct {
	Analysis *entity.FinancialAnalysis
	// Cached is set when the payload came from the cache, Stale when the
	// cached copy had already expired and was served as a fallback.
	Cached bool
	Stale  bool
}

// GetAnalysisUseCase serves the AI financial analysis with a cache in
// front of the generation call. Transient generation failures fall back
// to the last cached payload, stale or not, rather than erroring.
type GetAnalysisUseCase struct {
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.GoalRepository
	categoryRepo    adapter.CategoryRepository
	userRepo        adapter.UserRepository
	coachService    adapter.CoachService
	cache           adapter.AnalysisCache
	clock           adapter.Clock
}

// NewGetAnalysisUseCase creates a new GetAnalysisUseCase instance.
func NewGetAnalysisUseCase(
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	coachService adapter.CoachService,
	cache adapter.AnalysisCache,
	clock adapter.Clock,
) *GetAnalysisUseCase {
	return &GetAnalysisUseCase{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		coachService:    coachService,
		cache:           cache,
		clock:           clock,
	}
}

// Execute fetches or generates the analysis.
func (uc *GetAnalysisUseCase) Execute(ctx context.Context, input GetAnalysisInput) (*GetAnalysisOutput, error) {
	key := input.UserID.String()

	if !input.Refresh {
		cached, ok, err := uc.cache.GetAnalysis(ctx, key)
		if err != nil {
			slog.Warn("analysis cache read failed", "error", err, "user_id", key)
		} else if ok {
			return &GetAnalysisOutput{Analysis: cached, Cached: true}, nil
		}
	}

	if !uc.coachService.IsAvailable() {
		return uc.fallback(ctx, key, domainerror.NewCoachError(
			domainerror.ErrCodeCoachUnavailable,
			"coach service is not configured",
			domainerror.ErrCoachUnavailable,
		))
	}

	request, err := buildCoachRequest(ctx, uc.transactionRepo, uc.goalRepo, uc.categoryRepo, uc.userRepo, input.UserID, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	analysis, err := uc.coachService.GenerateAnalysis(ctx, request)
	if err != nil {
		classified := classifyError(err)
		slog.Warn("analysis generation failed",
			"error", err,
			"code", string(classified.Code),
			"user_id", key,
		)
		if classified.AllowStaleFallback {
			return uc.fallback(ctx, key, domainerror.NewCoachError(
				classified.Code,
				"failed to generate financial analysis",
				err,
			))
		}
		return nil, domainerror.NewCoachError(classified.Code, "failed to generate financial analysis", err)
	}

	if err := uc.cache.SetAnalysis(ctx, key, analysis, AnalysisCacheTTL); err != nil {
		slog.Warn("analysis cache write failed", "error", err, "user_id", key)
	}

	return &GetAnalysisOutput{Analysis: analysis}, nil
}

// fallback serves the last cached analysis regardless of expiry. Only
// when no copy exists does the generation error surface.
func (uc *GetAnalysisUseCase) fallback(ctx context.Context, key string, genErr *domainerror.CoachError) (*GetAnalysisOutput, error) {
	stale, ok, err := uc.cache.GetStaleAnalysis(ctx, key)
	if err != nil {
		slog.Warn("stale analysis read failed", "error", err, "user_id", key)
	}
	if ok {
		slog.Info("serving stale analysis fallback", "user_id", key, "cause", string(genErr.Code))
		return &GetAnalysisOutput{Analysis: stale, Cached: true, Stale: true}, nil
	}

	if genErr.Code == domainerror.ErrCodeCoachUnavailable || genErr.Code == domainerror.ErrCodeCoachRateLimited {
		return nil, domainerror.NewCoachError(
			domainerror.ErrCodeAnalysisNotAvailable,
			"no financial analysis available",
			domainerror.ErrAnalysisNotAvailable,
		)
	}
	return nil, genErr
}
