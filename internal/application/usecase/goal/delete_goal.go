// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
)

// DeleteGoalInput represents the input for deleting a savings goal.
type DeleteGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// DeleteGoalUseCase handles deleting a savings goal. Mirrored savings
// transactions created by past contributions stay in the ledger; the
// money was spent from available funds when it was contributed.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) error {
	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return err
	}

	if err := uc.goalRepo.Delete(ctx, goal.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	return nil
}
