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

// UpdateBudgetInput represents the input for budget updates. Nil fields
// are left unchanged. The category of a budget cannot change; delete
// and recreate instead.
type UpdateBudgetInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID

	LimitAmount   *decimal.Decimal
	AlertOnExceed *bool
	Period        *entity.BudgetPeriod
}

// UpdateBudgetOutput represents the output of budget updates.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles budget edits.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	clock      adapter.Clock
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{budgetRepo: budgetRepo, clock: clock}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := loadOwnedBudget(ctx, uc.budgetRepo, input.UserID, input.BudgetID)
	if err != nil {
		return nil, err
	}

	if input.LimitAmount != nil {
		if !input.LimitAmount.IsPositive() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidLimitAmount,
				"limit amount must be greater than zero",
				domainerror.ErrInvalidLimitAmount,
			)
		}
		budget.LimitAmount = *input.LimitAmount
	}
	if input.AlertOnExceed != nil {
		budget.AlertOnExceed = *input.AlertOnExceed
	}
	if input.Period != nil {
		if !isValidBudgetPeriod(*input.Period) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidBudgetPeriod,
				"period must be 'weekly', 'monthly', or 'yearly'",
				domainerror.ErrInvalidBudgetPeriod,
			)
		}
		budget.Period = *input.Period
	}

	budget.UpdatedAt = uc.clock.Now()
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &UpdateBudgetOutput{Budget: budget}, nil
}

// loadOwnedBudget fetches a budget and verifies ownership.
func loadOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, userID, budgetID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}
	if budget == nil || budget.UserID != userID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNotFound,
			"budget not found",
			domainerror.ErrBudgetNotFound,
		)
	}
	return budget, nil
}
