// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// RemoveContributionInput represents the input for withdrawing a
// contribution from a goal.
type RemoveContributionInput struct {
	UserID       uuid.UUID
	GoalID       uuid.UUID
	HistoryIndex int
}

// RemoveContributionOutput represents the output of withdrawing a
// contribution.
type RemoveContributionOutput struct {
	Goal    *entity.Goal
	Removed entity.Contribution
}

// RemoveContributionUseCase removes an entry from a goal's contribution
// history and lowers the saved amount accordingly.
//
// The mirrored savings transaction booked when the contribution was
// added is NOT reversed here. The overall balance stays reduced after a
// withdrawal; callers that want the money back in the ledger must delete
// the mirror transaction themselves.
type RemoveContributionUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewRemoveContributionUseCase creates a new RemoveContributionUseCase instance.
func NewRemoveContributionUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *RemoveContributionUseCase {
	return &RemoveContributionUseCase{goalRepo: goalRepo, clock: clock}
}

// Execute performs the withdrawal.
func (uc *RemoveContributionUseCase) Execute(ctx context.Context, input RemoveContributionInput) (*RemoveContributionOutput, error) {
	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	if input.HistoryIndex < 0 || input.HistoryIndex >= len(goal.ContributionHistory) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeContributionNotFound,
			fmt.Sprintf("no contribution at index %d", input.HistoryIndex),
			domainerror.ErrContributionNotFound,
		)
	}

	removed := goal.ContributionHistory[input.HistoryIndex]
	goal.ContributionHistory = append(
		goal.ContributionHistory[:input.HistoryIndex],
		goal.ContributionHistory[input.HistoryIndex+1:]...,
	)

	goal.CurrentAmount = goal.CurrentAmount.Sub(removed.Amount)
	if goal.CurrentAmount.IsNegative() {
		goal.CurrentAmount = decimal.Zero
	}

	// LastContributionDate follows the new last history entry.
	if len(goal.ContributionHistory) == 0 {
		goal.LastContributionDate = nil
	} else {
		last := goal.ContributionHistory[len(goal.ContributionHistory)-1].Date
		goal.LastContributionDate = &last
	}

	goal.UpdatedAt = uc.clock.Now()
	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	if err := uc.goalRepo.ReplaceContributions(ctx, goal.ID, goal.ContributionHistory); err != nil {
		return nil, fmt.Errorf("failed to store contribution history: %w", err)
	}

	return &RemoveContributionOutput{Goal: goal, Removed: removed}, nil
}
