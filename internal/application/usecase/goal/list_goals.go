// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing savings goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// ListGoalsOutput represents the output of listing savings goals.
type ListGoalsOutput struct {
	Goals []*entity.Goal
}

// ListGoalsUseCase handles listing a user's savings goals.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{goalRepo: goalRepo}
}

// Execute lists the goals.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return &ListGoalsOutput{Goals: goals}, nil
}
