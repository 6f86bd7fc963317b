// Package budget contains spending budget use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID        uuid.UUID
	CategoryID    uuid.UUID
	LimitAmount   decimal.Decimal
	AlertOnExceed bool
	Period        entity.BudgetPeriod
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation. One budget per category
// per user.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if !input.LimitAmount.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidLimitAmount,
			"limit amount must be greater than zero",
			domainerror.ErrInvalidLimitAmount,
		)
	}
	if !isValidBudgetPeriod(input.Period) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'weekly', 'monthly', or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"category not found",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}
	if !category.BelongsTo(input.UserID) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrBudgetCategoryNotOwned,
		)
	}

	exists, err := uc.budgetRepo.ExistsByUserAndCategory(ctx, input.UserID, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing budget: %w", err)
	}
	if exists {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetAlreadyExists,
			"a budget already exists for this category",
			domainerror.ErrBudgetAlreadyExists,
		)
	}

	budget := entity.NewBudget(input.UserID, input.CategoryID, input.LimitAmount, input.AlertOnExceed, input.Period)
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{Budget: budget}, nil
}

func isValidBudgetPeriod(period entity.BudgetPeriod) bool {
	switch period {
	case entity.BudgetPeriodWeekly, entity.BudgetPeriodMonthly, entity.BudgetPeriodYearly:
		return true
	}
	return false
}
