// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
	domainerror "github.com/quanta/backend/internal/domain/error"
)

// GetGoalInput represents the input for fetching a savings goal.
type GetGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// GetGoalOutput represents the output of fetching a savings goal.
type GetGoalOutput struct {
	Goal *entity.Goal
}

// GetGoalUseCase handles fetching a single savings goal.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository) *GetGoalUseCase {
	return &GetGoalUseCase{goalRepo: goalRepo}
}

// Execute fetches the goal.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	return &GetGoalOutput{Goal: goal}, nil
}

// loadOwnedGoal fetches a goal and verifies ownership. Foreign goals are
// reported as not found so goal IDs are not probeable.
func loadOwnedGoal(ctx context.Context, repo adapter.GoalRepository, userID, goalID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil || goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found",
			domainerror.ErrGoalNotFound,
		)
	}
	return goal, nil
}
