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

// TipsCacheTTL is how long generated tips stay fresh.
const TipsCacheTTL = 12 * time.Hour

// GetTipsInput represents the input for fetching financial tips.
type GetTipsInput struct {
	UserID  uuid.UUID
	Refresh bool
}

// GetTipsOutput represents the output of fetching financial tips.
type GetTipsOutput struct {
	Tips   *entity.FinancialTips
	Cached bool
	Stale  bool
}

// GetTipsUseCase serves short AI tips with the same cache-then-generate
// flow as the full analysis, on a shorter TTL.
type GetTipsUseCase struct {
	transactionRepo adapter.TransactionRepository
	goalRepo        adapter.GoalRepository
	categoryRepo    adapter.CategoryRepository
	userRepo        adapter.UserRepository
	coachService    adapter.CoachService
	cache           adapter.AnalysisCache
	clock           adapter.Clock
}

// NewGetTipsUseCase creates a new GetTipsUseCase instance.
func NewGetTipsUseCase(
	transactionRepo adapter.TransactionRepository,
	goalRepo adapter.GoalRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	coachService adapter.CoachService,
	cache adapter.AnalysisCache,
	clock adapter.Clock,
) *GetTipsUseCase {
	return &GetTipsUseCase{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		coachService:    coachService,
		cache:           cache,
		clock:           clock,
	}
}

// Execute fetches or generates the tips.
func (uc *GetTipsUseCase) Execute(ctx context.Context, input GetTipsInput) (*GetTipsOutput, error) {
	key := input.UserID.String()

	if !input.Refresh {
		cached, ok, err := uc.cache.GetTips(ctx, key)
		if err != nil {
			slog.Warn("tips cache read failed", "error", err, "user_id", key)
		} else if ok {
			return &GetTipsOutput{Tips: cached, Cached: true}, nil
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

	tips, err := uc.coachService.GenerateTips(ctx, request)
	if err != nil {
		classified := classifyError(err)
		slog.Warn("tips generation failed",
			"error", err,
			"code", string(classified.Code),
			"user_id", key,
		)
		if classified.AllowStaleFallback {
			return uc.fallback(ctx, key, domainerror.NewCoachError(
				classified.Code,
				"failed to generate financial tips",
				err,
			))
		}
		return nil, domainerror.NewCoachError(classified.Code, "failed to generate financial tips", err)
	}

	if err := uc.cache.SetTips(ctx, key, tips, TipsCacheTTL); err != nil {
		slog.Warn("tips cache write failed", "error", err, "user_id", key)
	}

	return &GetTipsOutput{Tips: tips}, nil
}

func (uc *GetTipsUseCase) fallback(ctx context.Context, key string, genErr *domainerror.CoachError) (*GetTipsOutput, error) {
	stale, ok, err := uc.cache.GetStaleTips(ctx, key)
	if err != nil {
		slog.Warn("stale tips read failed", "error", err, "user_id", key)
	}
	if ok {
		slog.Info("serving stale tips fallback", "user_id", key, "cause", string(genErr.Code))
		return &GetTipsOutput{Tips: stale, Cached: true, Stale: true}, nil
	}

	if genErr.Code == domainerror.ErrCodeCoachUnavailable || genErr.Code == domainerror.ErrCodeCoachRateLimited {
		return nil, domainerror.NewCoachError(
			domainerror.ErrCodeAnalysisNotAvailable,
			"no financial tips available",
			domainerror.ErrAnalysisNotAvailable,
		)
	}
	return nil, genErr
}
