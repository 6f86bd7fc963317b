// Package goal contains savings goal use cases.
package goal

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

func (c *fixedClock) Now() time.Time { return c.now }

// fakeGoalRepo is an in-memory GoalRepository.
type fakeGoalRepo struct {
	goals map[uuid.UUID]*entity.Goal
	order []uuid.UUID
}

func newFakeGoalRepo() *fakeGoalRepo {
	return &fakeGoalRepo{goals: make(map[uuid.UUID]*entity.Goal)}
}

func copyGoal(g *entity.Goal) *entity.Goal {
	cp := *g
	cp.ContributionHistory = append([]entity.Contribution(nil), g.ContributionHistory...)
	return &cp
}

func (r *fakeGoalRepo) Create(ctx context.Context, goal *entity.Goal) error {
	r.goals[goal.ID] = copyGoal(goal)
	r.order = append(r.order, goal.ID)
	return nil
}

func (r *fakeGoalRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	g, ok := r.goals[id]
	if !ok {
		return nil, nil
	}
	return copyGoal(g), nil
}

func (r *fakeGoalRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var out []*entity.Goal
	for _, id := range r.order {
		if g := r.goals[id]; g != nil && g.UserID == userID {
			out = append(out, copyGoal(g))
		}
	}
	return out, nil
}

func (r *fakeGoalRepo) Update(ctx context.Context, goal *entity.Goal) error {
	stored, ok := r.goals[goal.ID]
	if !ok {
		return nil
	}
	history := stored.ContributionHistory
	r.goals[goal.ID] = copyGoal(goal)
	// Scalar update only; history is owned by ReplaceContributions.
	r.goals[goal.ID].ContributionHistory = history
	return nil
}

func (r *fakeGoalRepo) ReplaceContributions(ctx context.Context, goalID uuid.UUID, history []entity.Contribution) error {
	if g, ok := r.goals[goalID]; ok {
		g.ContributionHistory = append([]entity.Contribution(nil), history...)
	}
	return nil
}

func (r *fakeGoalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.goals, id)
	return nil
}

// fakeTransactionRepo implements the TransactionRepository surface the
// contribution use cases touch: totals and mirror creation.
type fakeTransactionRepo struct {
	transactions []*entity.Transaction
	balance      decimal.Decimal
}

func newFakeTransactionRepo(balance decimal.Decimal) *fakeTransactionRepo {
	return &fakeTransactionRepo{balance: balance}
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	cp := *transaction
	r.transactions = append(r.transactions, &cp)
	return nil
}

func (r *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, tx := range r.transactions {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	tx, err := r.FindByID(ctx, id)
	if err != nil || tx == nil {
		return nil, err
	}
	return &entity.TransactionWithCategory{Transaction: tx}, nil
}

func (r *fakeTransactionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTransactionRepo) FindRecurringByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTransactionRepo) FindByRecurringItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Transaction, error) {
	return nil, nil
}

func (r *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	return &entity.TransactionListResult{}, nil
}

func (r *fakeTransactionRepo) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return &entity.TransactionTotals{NetTotal: r.balance}, nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (r *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *fakeTransactionRepo) ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	return false, nil
}

// fakeCategoryRepo exposes a single seeded savings system category.
type fakeCategoryRepo struct {
	savings *entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		savings: &entity.Category{
			ID:       uuid.New(),
			Name:     entity.SavingsCategoryName,
			Type:     entity.CategoryTypeExpense,
			IsSystem: true,
		},
	}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error { return nil }

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) FindSystemByName(ctx context.Context, name string) (*entity.Category, error) {
	if r.savings != nil && r.savings.Name == name {
		cp := *r.savings
		return &cp, nil
	}
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
