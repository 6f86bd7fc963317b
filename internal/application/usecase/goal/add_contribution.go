// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// AddContributionInput represents the input for contributing to a goal.
type AddContributionInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
	Amount decimal.Decimal
}

// AddContributionOutput represents the output of contributing to a goal.
type AddContributionOutput struct {
	Goal *entity.Goal
	// MirrorTransaction is the savings expense that reflects the
	// contribution in the user's available balance.
	MirrorTransaction *entity.Transaction
}

// AddContributionUseCase applies a contribution to a savings goal and
// books a mirroring savings expense so the reserved money leaves the
// available balance.
//
// The goal update, the history write and the mirror transaction are
// three independent writes with no shared transaction boundary. A
// failure between them leaves the goal and the ledger out of step.
type AddContributionUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewAddContributionUseCase creates a new AddContributionUseCase instance.
func NewAddContributionUseCase(
	goalRepo adapter.GoalRepository,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *AddContributionUseCase {
	return &AddContributionUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute performs the contribution.
func (uc *AddContributionUseCase) Execute(ctx context.Context, input AddContributionInput) (*AddContributionOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			"contribution amount must be greater than zero",
			domainerror.ErrInvalidContributionAmount,
		)
	}

	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	// Advisory balance gate. The check blocks this contribution only; it
	// is not enforced at the data layer and two concurrent contributions
	// can both pass it.
	totals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{UserID: input.UserID})
	if err != nil {
		return nil, fmt.Errorf("failed to compute available balance: %w", err)
	}
	if totals.NetTotal.LessThan(input.Amount) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInsufficientFunds,
			fmt.Sprintf("available balance %s does not cover contribution %s", totals.NetTotal, input.Amount),
			domainerror.ErrInsufficientFunds,
		)
	}

	now := uc.clock.Now()
	goal.CurrentAmount = goal.CurrentAmount.Add(input.Amount)
	goal.ContributionHistory = append(goal.ContributionHistory, entity.Contribution{
		Date:   now,
		Amount: input.Amount,
	})
	goal.LastContributionDate = &now
	next := goal.NextContributionAfter(now)
	goal.NextContributionDate = &next
	goal.UpdatedAt = now

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	if err := uc.goalRepo.ReplaceContributions(ctx, goal.ID, goal.ContributionHistory); err != nil {
		return nil, fmt.Errorf("failed to store contribution history: %w", err)
	}

	mirror, err := uc.writeMirrorTransaction(ctx, input.UserID, goal, input.Amount, now)
	if err != nil {
		return nil, err
	}

	return &AddContributionOutput{Goal: goal, MirrorTransaction: mirror}, nil
}

// writeMirrorTransaction books the contribution as a savings expense
// against the seeded system category.
func (uc *AddContributionUseCase) writeMirrorTransaction(
	ctx context.Context,
	userID uuid.UUID,
	goal *entity.Goal,
	amount decimal.Decimal,
	now time.Time,
) (*entity.Transaction, error) {
	var categoryID *uuid.UUID
	savings, err := uc.categoryRepo.FindSystemByName(ctx, entity.SavingsCategoryName)
	if err != nil {
		return nil, fmt.Errorf("failed to load savings category: %w", err)
	}
	if savings != nil {
		categoryID = &savings.ID
	}

	mirror := entity.NewTransaction(
		userID,
		now,
		fmt.Sprintf("Contribution to goal: %s", goal.Name),
		amount,
		entity.TransactionTypeExpense,
		categoryID,
		"",
		false,
	)
	if err := uc.transactionRepo.Create(ctx, mirror); err != nil {
		return nil, fmt.Errorf("failed to create mirror transaction: %w", err)
	}
	return mirror, nil
}
