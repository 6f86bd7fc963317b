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

// CreateGoalInput represents the input for creating a savings goal.
type CreateGoalInput struct {
	UserID                uuid.UUID
	Name                  string
	TargetAmount          decimal.Decimal
	Icon                  string
	Color                 string
	ContributionAmount    *decimal.Decimal
	ContributionFrequency entity.Frequency
	TargetDate            *time.Time
	AutoDeduct            bool
}

// CreateGoalOutput represents the output of creating a savings goal.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles savings goal creation.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{goalRepo: goalRepo}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	if input.Name == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"name is required",
			nil,
		)
	}
	if !input.TargetAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetAmount,
			"target amount must be greater than zero",
			domainerror.ErrInvalidTargetAmount,
		)
	}
	if !input.ContributionFrequency.IsValid() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContributionFreq,
			"contribution frequency must be 'weekly', 'biweekly', or 'monthly'",
			domainerror.ErrInvalidContributionFrequency,
		)
	}
	if input.ContributionAmount != nil && !input.ContributionAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			"contribution amount must be greater than zero",
			domainerror.ErrInvalidContributionAmount,
		)
	}

	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultGoalIcon
	}
	color := input.Color
	if color == "" {
		color = entity.DefaultGoalColor
	}

	goal := entity.NewGoal(input.UserID, input.Name, input.TargetAmount, icon, color, input.ContributionFrequency)
	goal.ContributionAmount = input.ContributionAmount
	goal.TargetDate = input.TargetDate
	goal.AutoDeduct = input.AutoDeduct

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{Goal: goal}, nil
}
