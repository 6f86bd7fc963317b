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

// UpdateGoalInput represents the input for updating a savings goal.
// Nil fields are left unchanged.
type UpdateGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID

	Name                  *string
	TargetAmount          *decimal.Decimal
	Icon                  *string
	Color                 *string
	ContributionAmount    *decimal.Decimal
	ContributionFrequency *entity.Frequency
	TargetDate            *time.Time
	ClearTargetDate       bool
	AutoDeduct            *bool
}

// UpdateGoalOutput represents the output of updating a savings goal.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles editing a savings goal's definition. The
// saved amount and contribution history are owned by the contribution
// operations and are not touched here.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{goalRepo: goalRepo, clock: clock}
}

// Execute performs the update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := loadOwnedGoal(ctx, uc.goalRepo, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"name is required",
				nil,
			)
		}
		goal.Name = *input.Name
	}
	if input.TargetAmount != nil {
		if !input.TargetAmount.IsPositive() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidTargetAmount,
				"target amount must be greater than zero",
				domainerror.ErrInvalidTargetAmount,
			)
		}
		goal.TargetAmount = *input.TargetAmount
	}
	if input.Icon != nil {
		goal.Icon = *input.Icon
	}
	if input.Color != nil {
		goal.Color = *input.Color
	}
	if input.ContributionAmount != nil {
		if !input.ContributionAmount.IsPositive() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidContribution,
				"contribution amount must be greater than zero",
				domainerror.ErrInvalidContributionAmount,
			)
		}
		goal.ContributionAmount = input.ContributionAmount
	}
	if input.ContributionFrequency != nil {
		if !input.ContributionFrequency.IsValid() {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeInvalidContributionFreq,
				"contribution frequency must be 'weekly', 'biweekly', or 'monthly'",
				domainerror.ErrInvalidContributionFrequency,
			)
		}
		goal.ContributionFrequency = *input.ContributionFrequency
	}
	if input.ClearTargetDate {
		goal.TargetDate = nil
	} else if input.TargetDate != nil {
		goal.TargetDate = input.TargetDate
	}
	if input.AutoDeduct != nil {
		goal.AutoDeduct = *input.AutoDeduct
	}

	goal.UpdatedAt = uc.clock.Now()
	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{Goal: goal}, nil
}
