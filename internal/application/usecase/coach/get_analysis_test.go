package coach

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

func coachFixture(t *testing.T) (uuid.UUID, *fakeStatsRepo, *fakeGoalRepo, *fakeCategoryRepo, *fakeUserRepo, fixedClock) {
	t.Helper()
	userID := uuid.New()
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	groceries := &entity.Category{ID: uuid.New(), UserID: userID, Name: "groceries", Type: entity.CategoryTypeExpense}
	rent := &entity.Category{ID: uuid.New(), UserID: userID, Name: "rent", Type: entity.CategoryTypeExpense}

	txs := []*entity.Transaction{
		{ID: uuid.New(), UserID: userID, Date: now.AddDate(0, 0, -10), Description: "salary", Amount: decimal.NewFromInt(3000), Type: entity.TransactionTypeIncome},
		{ID: uuid.New(), UserID: userID, Date: now.AddDate(0, 0, -9), Description: "rent", Amount: decimal.NewFromInt(1200), Type: entity.TransactionTypeExpense, CategoryID: &rent.ID},
		{ID: uuid.New(), UserID: userID, Date: now.AddDate(0, 0, -5), Description: "food", Amount: decimal.NewFromInt(300), Type: entity.TransactionTypeExpense, CategoryID: &groceries.ID},
		// Outside the trailing window, excluded from the request.
		{ID: uuid.New(), UserID: userID, Date: now.AddDate(0, -4, 0), Description: "old", Amount: decimal.NewFromInt(50), Type: entity.TransactionTypeExpense},
	}

	return userID,
		&fakeStatsRepo{transactions: txs},
		&fakeGoalRepo{},
		&fakeCategoryRepo{categories: []*entity.Category{groceries, rent}},
		&fakeUserRepo{user: &entity.User{ID: userID, Currency: "EUR", Locale: "pt-BR"}},
		fixedClock{now: now}
}

func TestGetAnalysis_GeneratesAndCaches(t *testing.T) {
	userID, txRepo, goalRepo, catRepo, userRepo, clock := coachFixture(t)
	service := &fakeCoachService{
		available: true,
		analysis:  &entity.FinancialAnalysis{HealthScore: 72, Summary: "solid month"},
	}
	cache := newFakeAnalysisCache()

	uc := NewGetAnalysisUseCase(txRepo, goalRepo, catRepo, userRepo, service, cache, clock)
	out, err := uc.Execute(context.Background(), GetAnalysisInput{UserID: userID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Cached || out.Stale {
		t.Errorf("fresh generation flagged Cached=%v Stale=%v", out.Cached, out.Stale)
	}
	if out.Analysis.HealthScore != 72 {
		t.Errorf("HealthScore = %d, want 72", out.Analysis.HealthScore)
	}
	if service.analysisCall != 1 {
		t.Errorf("GenerateAnalysis calls = %d, want 1", service.analysisCall)
	}
	if cache.lastSetTTL != AnalysisCacheTTL {
		t.Errorf("cache TTL = %v, want %v", cache.lastSetTTL, AnalysisCacheTTL)
	}

	// Second call is served from the cache without touching the service.
	out, err = uc.Execute(context.Background(), GetAnalysisInput{UserID: userID})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !out.Cached || out.Stale {
		t.Errorf("cached read flagged Cached=%v Stale=%v", out.Cached, out.Stale)
	}
	if service.analysisCall != 1 {
		t.Errorf("GenerateAnalysis calls after cache hit = %d, want 1", service.analysisCall)
	}
}

func TestGetAnalysis_RefreshBypassesCache(t *testing.T) {
	userID, txRepo, goalRepo, catRepo, userRepo, clock := coachFixture(t)
	service := &fakeCoachService{
		available: true,
		analysis:  &entity.FinancialAnalysis{HealthScore: 80},
	}
	cache := newFakeAnalysisCache()
	cache.fresh[userID.String()] = &entity.FinancialAnalysis{HealthScore: 10}

	uc := NewGetAnalysisUseCase(txRepo, goalRepo, catRepo, userRepo, service, cache, clock)
	out, err := uc.Execute(context.Background(), GetAnalysisInput{UserID: userID, Refresh: true})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out.Analysis.HealthScore != 80 {
		t.Errorf("HealthScore = %d, want regenerated 80", out.Analysis.HealthScore)
	}
	if service.analysisCall != 1 {
		t.Errorf("GenerateAnalysis calls = %d, want 1", service.analysisCall)
	}
}

func TestGetAnalysis_RateLimitServesStale(t *testing.T) {
	userID, txRepo, goalRepo, catRepo, userRepo, clock := coachFixture(t)
	service := &fakeCoachService{
		available:   true,
		generateErr: domainerror.ErrCoachRateLimited,
	}
	cache := newFakeAnalysisCache()
	cache.stale[userID.String()] = &entity.FinancialAnalysis{HealthScore: 55, Summary: "last week"}

	uc := NewGetAnalysisUseCase(txRepo, goalRepo, catRepo, userRepo, service, cache, clock)
	out, err := uc.Execute(context.Background(), GetAnalysisInput{UserID: userID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Cached || !out.Stale {
		t.Errorf("fallback flagged Cached=%v Stale=%v, want both true", out.Cached, out.Stale)
	}
	if out.Analysis.HealthScore != 55 {
		t.Errorf("HealthScore = %d, want stale 55", out.Analysis.HealthScore)
	}
}

func TestGetAnalysis_RateLimitWithoutCacheFails(t *testing.T) {
	userID, txRepo, goalRepo, catRepo, userRepo, clock := coachFixture(t)
	service := &fakeCoachService{
		available:   true,
		generateErr: domainerror.ErrCoachRateLimited,
	}
	cache := newFakeAnalysisCache()

	uc := NewGetAnalysisUseCase(txRepo, goalRepo, catRepo, userRepo, service, cache, clock)
	_, err := uc.Execute(context.Background(), GetAnalysisInput{UserID: userID})
	if err == nil {
		t.Fatal("Execute() expected error, got nil")
	}
	var coachErr *domainerror.CoachError
	if !errors.As(err, &coachErr) || coachErr.Code != domainerror.ErrCodeAnalysisNotAvailable {
		t.Errorf("error = %v, want code %s", err, domainerror.ErrCodeAnalysisNotAvailable)
	}
}

func TestGetAnalysis_ParseErrorDoesNotFallBack(t *testing.T) {
	userID, txRepo, goalRepo, catRepo, userRepo, clock := coachFixture(t)
	service := &fakeCoachService{
		available:   true,
		generateErr: errors.New("failed to unmarshal analysis payload"),
	}
	cache := newFakeAnalysisCache()
	cache.stale[userID.String()] = &entity.FinancialAnalysis{HealthScore: 55}

	uc := NewGetAnalysisUseCase(txRepo, goalRepo, catRepo, userRepo, service, cache, clock)
	_, err := uc.Execute(context.Background(), GetAnalysisInput{UserID: userID})
	if err == nil {
		t.Fatal("Execute() expected error, got nil")
	}
	var coachErr *domainerror.CoachError
	if !errors.As(err, &coachErr) || coachErr.Code != domainerror.ErrCodeCoachInvalidResponse {
		t.Errorf("error = %v, want code %s", err, domainerror.ErrCodeCoachInvalidResponse)
	}
}

func TestGetAnalysis_UnavailableServiceUsesStale(t *testing.T) {
	userID, txRepo, goalRepo, catRepo, userRepo, clock := coachFixture(t)
	service := &fakeCoachService{available: false}
	cache := newFakeAnalysisCache()
	cache.stale[userID.String()] = &entity.FinancialAnalysis{HealthScore: 40}

	uc := NewGetAnalysisUseCase(txRepo, goalRepo, catRepo, userRepo, service, cache, clock)
	out, err := uc.Execute(context.Background(), GetAnalysisInput{UserID: userID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !out.Stale {
		t.Error("expected stale fallback when service is unconfigured")
	}
	if service.analysisCall != 0 {
		t.Errorf("GenerateAnalysis calls = %d, want 0", service.analysisCall)
	}
}

func TestBuildCoachRequest_Snapshot(t *testing.T) {
	userID, txRepo, goalRepo, catRepo, userRepo, clock := coachFixture(t)
	service := &fakeCoachService{
		available: true,
		analysis:  &entity.FinancialAnalysis{HealthScore: 70},
	}
	cache := newFakeAnalysisCache()

	uc := NewGetAnalysisUseCase(txRepo, goalRepo, catRepo, userRepo, service, cache, clock)
	if _, err := uc.Execute(context.Background(), GetAnalysisInput{UserID: userID}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	req := service.lastRequest
	if req == nil {
		t.Fatal("service never received a request")
	}
	if len(req.Transactions) != 3 {
		t.Errorf("window transactions = %d, want 3", len(req.Transactions))
	}
	// 3000 income - 1200 - 300 - 50 all-time.
	if !req.Stats.Balance.Equal(decimal.NewFromInt(1450)) {
		t.Errorf("balance = %s, want 1450", req.Stats.Balance)
	}
	if req.Currency != "EUR" || req.Locale != "pt-BR" {
		t.Errorf("currency/locale = %s/%s, want EUR/pt-BR", req.Currency, req.Locale)
	}
	if len(req.Stats.TopCategories) != 2 {
		t.Fatalf("top categories = %d, want 2", len(req.Stats.TopCategories))
	}
	if req.Stats.TopCategories[0].Name != "rent" {
		t.Errorf("top category = %s, want rent", req.Stats.TopCategories[0].Name)
	}
	if req.Stats.TopCategories[0].Percentage != 80.0 {
		t.Errorf("rent share = %.1f, want 80.0", req.Stats.TopCategories[0].Percentage)
	}
}

func TestGetTips_UsesShorterTTL(t *testing.T) {
	userID, txRepo, goalRepo, catRepo, userRepo, clock := coachFixture(t)
	service := &fakeCoachService{
		available: true,
		tips:      &entity.FinancialTips{Tips: []string{"cook at home"}},
	}
	cache := newFakeAnalysisCache()

	uc := NewGetTipsUseCase(txRepo, goalRepo, catRepo, userRepo, service, cache, clock)
	out, err := uc.Execute(context.Background(), GetTipsInput{UserID: userID})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(out.Tips.Tips) != 1 {
		t.Errorf("tips = %d, want 1", len(out.Tips.Tips))
	}
	if cache.lastSetTTL != TipsCacheTTL {
		t.Errorf("cache TTL = %v, want %v", cache.lastSetTTL, TipsCacheTTL)
	}

	out, err = uc.Execute(context.Background(), GetTipsInput{UserID: userID})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !out.Cached {
		t.Error("second read should come from the cache")
	}
	if service.tipsCall != 1 {
		t.Errorf("GenerateTips calls = %d, want 1", service.tipsCall)
	}
}
