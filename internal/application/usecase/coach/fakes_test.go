package coach

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fakeStatsRepo serves canned transactions and totals. Only the methods
// the coach request builder touches are meaningful.
type fakeStatsRepo struct {
	transactions []*entity.Transaction
}

func (r *fakeStatsRepo) Create(ctx context.Context, tx *entity.Transaction) error { return nil }

func (r *fakeStatsRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeStatsRepo) FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	return nil, nil
}

func (r *fakeStatsRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeStatsRepo) FindRecurringByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeStatsRepo) FindByRecurringItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeStatsRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return &entity.TransactionListResult{}, nil
}

func (r *fakeStatsRepo) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	totals := &entity.TransactionTotals{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
		NetTotal:     decimal.Zero,
	}
	for _, tx := range r.transactions {
		if tx.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !tx.Date.Before(*filter.EndDate) {
			continue
		}
		if tx.Type == entity.TransactionTypeIncome {
			totals.IncomeTotal = totals.IncomeTotal.Add(tx.Amount)
		} else {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(tx.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

func (r *fakeStatsRepo) Update(ctx context.Context, tx *entity.Transaction) error { return nil }

func (r *fakeStatsRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeStatsRepo) ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	return false, nil
}

type fakeGoalRepo struct {
	goals []*entity.Goal
}

func (r *fakeGoalRepo) Create(ctx context.Context, goal *entity.Goal) error { return nil }

func (r *fakeGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return nil, nil
}

func (r *fakeGoalRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) Update(ctx context.Context, goal *entity.Goal) error { return nil }

func (r *fakeGoalRepo) ReplaceContributions(ctx context.Context, goalID uuid.UUID, history []entity.Contribution) error {
	return nil
}

func (r *fakeGoalRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeCategoryRepo struct {
	categories []*entity.Category
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error { return nil }

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) FindSystemByName(ctx context.Context, name string) (*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error) {
	return false, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error { return nil }

func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeCategoryRepo) CountTransactions(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	user *entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

// fakeCoachService returns scripted payloads or errors and counts calls.
type fakeCoachService struct {
	available    bool
	analysis     *entity.FinancialAnalysis
	tips         *entity.FinancialTips
	generateErr  error
	analysisCall int
	tipsCall     int
	lastRequest  *adapter.CoachRequest
}

func (s *fakeCoachService) IsAvailable() bool { return s.available }

func (s *fakeCoachService) GenerateAnalysis(ctx context.Context, request *adapter.CoachRequest) (*entity.FinancialAnalysis, error) {
	s.analysisCall++
	s.lastRequest = request
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	return s.analysis, nil
}

func (s *fakeCoachService) GenerateTips(ctx context.Context, request *adapter.CoachRequest) (*entity.FinancialTips, error) {
	s.tipsCall++
	s.lastRequest = request
	if s.generateErr != nil {
		return nil, s.generateErr
	}
	return s.tips, nil
}

// fakeAnalysisCache keeps fresh and stale entries in separate maps the
// way the redis implementation keeps a TTL key and a persistent copy.
type fakeAnalysisCache struct {
	fresh      map[string]*entity.FinancialAnalysis
	stale      map[string]*entity.FinancialAnalysis
	freshTips  map[string]*entity.FinancialTips
	staleTips  map[string]*entity.FinancialTips
	lastSetTTL time.Duration
}

func newFakeAnalysisCache() *fakeAnalysisCache {
	return &fakeAnalysisCache{
		fresh:     make(map[string]*entity.FinancialAnalysis),
		stale:     make(map[string]*entity.FinancialAnalysis),
		freshTips: make(map[string]*entity.FinancialTips),
		staleTips: make(map[string]*entity.FinancialTips),
	}
}

func (c *fakeAnalysisCache) GetAnalysis(ctx context.Context, userID string) (*entity.FinancialAnalysis, bool, error) {
	a, ok := c.fresh[userID]
	return a, ok, nil
}

func (c *fakeAnalysisCache) GetStaleAnalysis(ctx context.Context, userID string) (*entity.FinancialAnalysis, bool, error) {
	a, ok := c.stale[userID]
	return a, ok, nil
}

func (c *fakeAnalysisCache) SetAnalysis(ctx context.Context, userID string, analysis *entity.FinancialAnalysis, ttl time.Duration) error {
	c.fresh[userID] = analysis
	c.stale[userID] = analysis
	c.lastSetTTL = ttl
	return nil
}

func (c *fakeAnalysisCache) GetTips(ctx context.Context, userID string) (*entity.FinancialTips, bool, error) {
	tips, ok := c.freshTips[userID]
	return tips, ok, nil
}

func (c *fakeAnalysisCache) GetStaleTips(ctx context.Context, userID string) (*entity.FinancialTips, bool, error) {
	tips, ok := c.staleTips[userID]
	return tips, ok, nil
}

func (c *fakeAnalysisCache) SetTips(ctx context.Context, userID string, tips *entity.FinancialTips, ttl time.Duration) error {
	c.freshTips[userID] = tips
	c.staleTips[userID] = tips
	c.lastSetTTL = ttl
	return nil
}
