// Package savingsplan computes savings plan projections for goals.
package savingsplan

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

// Monthly-equivalent multipliers for contribution cadences.
var (
	weeklyPerMonth   = decimal.NewFromFloat(4.33)
	biweeklyPerMonth = decimal.NewFromInt(2)
)

var milestonePercentages = []int{25, 50, 75, 100}

// ComputePlan derives a SavingsPlan from a goal, the trailing average
// monthly net savings and the current time. It is deterministic and
// side-effect-free; callers may re-run it on every read.
func ComputePlan(goal *entity.Goal, avgMonthlySavings decimal.Decimal, now time.Time) *entity.SavingsPlan {
	remaining := goal.Remaining()
	monthlyTarget := monthlyTargetFor(goal, remaining, now)

	if avgMonthlySavings.IsNegative() {
		avgMonthlySavings = decimal.Zero
	}

	// Ratio of required to observed savings. Division by zero is guarded
	// by treating the ratio as 1 when nothing has been saved on average.
	ratio := decimal.NewFromInt(1)
	if avgMonthlySavings.IsPositive() {
		ratio = monthlyTarget.Div(avgMonthlySavings)
	}

	strategy := entity.StrategyRelaxed
	switch {
	case ratio.GreaterThan(decimal.NewFromFloat(0.7)):
		strategy = entity.StrategyAggressive
	case ratio.GreaterThan(decimal.NewFromFloat(0.4)):
		strategy = entity.StrategyModerate
	}

	projectedCompletion := projectDate(remaining, monthlyTarget, now)

	isOnTrack := false
	if goal.TargetDate != nil {
		isOnTrack = !projectedCompletion.After(*goal.TargetDate)
	} else {
		isOnTrack = monthlyTarget.LessThanOrEqual(avgMonthlySavings.Mul(decimal.NewFromFloat(0.8)))
	}

	plan := &entity.SavingsPlan{
		GoalID:              goal.ID.String(),
		Remaining:           remaining,
		DailyTarget:         monthlyTarget.Div(decimal.NewFromInt(30)).Round(2),
		WeeklyTarget:        monthlyTarget.Div(weeklyPerMonth).Round(2),
		MonthlyTarget:       monthlyTarget.Round(2),
		AvgMonthlySavings:   avgMonthlySavings.Round(2),
		Strategy:            strategy,
		IsOnTrack:           isOnTrack,
		ProjectedCompletion: projectedCompletion,
	}

	for _, pct := range milestonePercentages {
		amount := goal.TargetAmount.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100))
		remainingToMilestone := amount.Sub(goal.CurrentAmount)
		if remainingToMilestone.IsNegative() {
			remainingToMilestone = decimal.Zero
		}
		plan.Milestones = append(plan.Milestones, entity.Milestone{
			Percentage:    pct,
			Amount:        amount.Round(2),
			ProjectedDate: projectDate(remainingToMilestone, monthlyTarget, now),
			IsCompleted:   goal.CurrentAmount.GreaterThanOrEqual(amount),
		})
	}

	return plan
}

// monthlyTargetFor picks the monthly savings requirement: the goal's
// explicit cadence when set, otherwise the remaining amount spread over
// the months until the target date, otherwise a 12-month horizon.
func monthlyTargetFor(goal *entity.Goal, remaining decimal.Decimal, now time.Time) decimal.Decimal {
	if goal.ContributionAmount != nil {
		switch goal.ContributionFrequency {
		case entity.FrequencyWeekly:
			return goal.ContributionAmount.Mul(weeklyPerMonth)
		case entity.FrequencyBiweekly:
			return goal.ContributionAmount.Mul(biweeklyPerMonth)
		default:
			return *goal.ContributionAmount
		}
	}

	if goal.TargetDate != nil {
		months := monthsBetween(now, *goal.TargetDate)
		return remaining.Div(decimal.NewFromInt(int64(months)))
	}

	return remaining.Div(decimal.NewFromInt(12))
}

// monthsBetween counts whole calendar months from now until the target
// date, with a minimum of 1.
func monthsBetween(now, target time.Time) int {
	months := 0
	for cursor := now.AddDate(0, 1, 0); !cursor.After(target); cursor = cursor.AddDate(0, 1, 0) {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}

// projectDate estimates when an amount will be saved at the monthly
// target rate, using 30-day months. A non-positive target projects to
// now, as does a zero amount.
func projectDate(amount, monthlyTarget decimal.Decimal, now time.Time) time.Time {
	if !amount.IsPositive() || !monthlyTarget.IsPositive() {
		return now
	}
	days := amount.Div(monthlyTarget).Mul(decimal.NewFromInt(30)).Ceil().IntPart()
	return now.AddDate(0, 0, int(days))
}

// GetPlanInput represents the input for computing a goal's savings plan.
type GetPlanInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// GetPlanOutput represents the output of computing a goal's savings plan.
type GetPlanOutput struct {
	Plan *entity.SavingsPlan
}

// GetPlanUseCase loads a goal and its trailing transaction window and
// projects the savings plan.
type GetPlanUseCase struct {
	goalRepo        adapter.GoalRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetPlanUseCase creates a new GetPlanUseCase instance.
func NewGetPlanUseCase(
	goalRepo adapter.GoalRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GetPlanUseCase {
	return &GetPlanUseCase{
		goalRepo:        goalRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute computes the plan.
func (uc *GetPlanUseCase) Execute(ctx context.Context, input GetPlanInput) (*GetPlanOutput, error) {
	goal, err := uc.goalRepo.FindByID(ctx, input.GoalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil || goal.UserID != input.UserID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalNotFound,
			"goal not found",
			domainerror.ErrGoalNotFound,
		)
	}

	avg, err := uc.trailingAvgMonthlySavings(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetPlanOutput{Plan: ComputePlan(goal, avg, uc.clock.Now())}, nil
}

// trailingAvgMonthlySavings computes (income - expense) over the last 3
// months divided by 3, floored at zero.
func (uc *GetPlanUseCase) trailingAvgMonthlySavings(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	now := uc.clock.Now()
	start := now.AddDate(0, -3, 0)
	totals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    userID,
		StartDate: &start,
		EndDate:   &now,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute trailing totals: %w", err)
	}

	avg := totals.NetTotal.Div(decimal.NewFromInt(3))
	if avg.IsNegative() {
		return decimal.Zero, nil
	}
	return avg, nil
}
