// Package savingsplan computes savings plan projections for goals.
package savingsplan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/domain/entity"

	"github.com/google/uuid"
)

func testGoal(target, current int64) *entity.Goal {
	g := entity.NewGoal(uuid.New(), "Vacation", decimal.NewFromInt(target), "", "", entity.FrequencyMonthly)
	g.CurrentAmount = decimal.NewFromInt(current)
	return g
}

func TestComputePlan_StrategyThresholds(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		monthly    int64
		avgSavings int64
		expected   entity.SavingsStrategy
	}{
		// ratio = monthlyTarget / avgMonthlySavings
		{"ratio 1.0 is aggressive", 1000, 1000, entity.StrategyAggressive},
		{"ratio 0.71 is aggressive", 710, 1000, entity.StrategyAggressive},
		{"ratio 0.7 is moderate", 700, 1000, entity.StrategyModerate},
		{"ratio 0.5 is moderate", 500, 1000, entity.StrategyModerate},
		{"ratio 0.4 is relaxed", 400, 1000, entity.StrategyRelaxed},
		{"ratio 0.1 is relaxed", 100, 1000, entity.StrategyRelaxed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGoal(10000, 0)
			monthly := decimal.NewFromInt(tt.monthly)
			g.ContributionAmount = &monthly
			g.ContributionFrequency = entity.FrequencyMonthly

			plan := ComputePlan(g, decimal.NewFromInt(tt.avgSavings), now)
			if plan.Strategy != tt.expected {
				t.Errorf("expected strategy %s, got %s", tt.expected, plan.Strategy)
			}
		})
	}
}

func TestComputePlan_ZeroAvgSavingsTreatsRatioAsOne(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	g := testGoal(10000, 0)
	monthly := decimal.NewFromInt(500)
	g.ContributionAmount = &monthly

	// Ratio 1 lands above the 0.7 threshold.
	plan := ComputePlan(g, decimal.Zero, now)
	if plan.Strategy != entity.StrategyAggressive {
		t.Errorf("expected aggressive for zero average savings, got %s", plan.Strategy)
	}
}

func TestComputePlan_CadenceMultipliers(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		frequency entity.Frequency
		amount    int64
		expected  decimal.Decimal
	}{
		{"weekly times 4.33", entity.FrequencyWeekly, 100, decimal.NewFromInt(433)},
		{"biweekly times 2", entity.FrequencyBiweekly, 100, decimal.NewFromInt(200)},
		{"monthly times 1", entity.FrequencyMonthly, 100, decimal.NewFromInt(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGoal(10000, 0)
			amount := decimal.NewFromInt(tt.amount)
			g.ContributionAmount = &amount
			g.ContributionFrequency = tt.frequency

			plan := ComputePlan(g, decimal.NewFromInt(1000), now)
			if !plan.MonthlyTarget.Equal(tt.expected) {
				t.Errorf("expected monthly target %s, got %s", tt.expected, plan.MonthlyTarget)
			}
		})
	}
}

func TestComputePlan_TargetDateHorizon(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	g := testGoal(1200, 0)
	target := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	g.TargetDate = &target

	// 6 whole months until the target date; 1200 / 6 = 200.
	plan := ComputePlan(g, decimal.NewFromInt(1000), now)
	if !plan.MonthlyTarget.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected monthly target 200, got %s", plan.MonthlyTarget)
	}
}

func TestComputePlan_PastTargetDateUsesMinimumMonth(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	g := testGoal(600, 0)
	target := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	g.TargetDate = &target

	// Less than one whole month remains; the divisor floors at 1.
	plan := ComputePlan(g, decimal.NewFromInt(1000), now)
	if !plan.MonthlyTarget.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected monthly target 600, got %s", plan.MonthlyTarget)
	}
}

func TestComputePlan_DefaultTwelveMonthHorizon(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	g := testGoal(1200, 0)

	plan := ComputePlan(g, decimal.NewFromInt(1000), now)
	if !plan.MonthlyTarget.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected monthly target 100, got %s", plan.MonthlyTarget)
	}
}

func TestComputePlan_MilestonesMonotone(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		target  int64
		current int64
	}{
		{"fresh goal", 10000, 0},
		{"partially funded", 10000, 3000},
		{"past halfway", 10000, 6000},
		{"completed", 10000, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGoal(tt.target, tt.current)
			monthly := decimal.NewFromInt(500)
			g.ContributionAmount = &monthly

			plan := ComputePlan(g, decimal.NewFromInt(1000), now)
			if len(plan.Milestones) != 4 {
				t.Fatalf("expected 4 milestones, got %d", len(plan.Milestones))
			}

			for i := 1; i < len(plan.Milestones); i++ {
				prev, cur := plan.Milestones[i-1], plan.Milestones[i]
				if cur.ProjectedDate.Before(prev.ProjectedDate) {
					t.Errorf("milestone %d%% projected before %d%%", cur.Percentage, prev.Percentage)
				}
			}
		})
	}
}

func TestComputePlan_MilestoneCompletion(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	g := testGoal(10000, 5000)
	monthly := decimal.NewFromInt(500)
	g.ContributionAmount = &monthly

	plan := ComputePlan(g, decimal.NewFromInt(1000), now)

	completed := []bool{true, true, false, false}
	for i, m := range plan.Milestones {
		if m.IsCompleted != completed[i] {
			t.Errorf("milestone %d%%: expected completed=%v, got %v", m.Percentage, completed[i], m.IsCompleted)
		}
	}

	// Completed milestones project to now; future ones project forward.
	for _, m := range plan.Milestones[:2] {
		if !m.ProjectedDate.Equal(now) {
			t.Errorf("milestone %d%%: expected projection at now", m.Percentage)
		}
	}
	for _, m := range plan.Milestones[2:] {
		if !m.ProjectedDate.After(now) {
			t.Errorf("milestone %d%%: expected projection after now", m.Percentage)
		}
	}
}

func TestComputePlan_OnTrack(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("with target date", func(t *testing.T) {
		g := testGoal(1000, 0)
		monthly := decimal.NewFromInt(500)
		g.ContributionAmount = &monthly
		target := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
		g.TargetDate = &target

		// 1000 at 500/month completes in ~60 days, well before December.
		plan := ComputePlan(g, decimal.NewFromInt(1000), now)
		if !plan.IsOnTrack {
			t.Error("expected plan to be on track")
		}

		soon := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		g.TargetDate = &soon
		plan = ComputePlan(g, decimal.NewFromInt(1000), now)
		if plan.IsOnTrack {
			t.Error("expected plan to be off track for an imminent target date")
		}
	})

	t.Run("without target date", func(t *testing.T) {
		g := testGoal(12000, 0)

		// Default horizon: 1000/month required. On track needs avg
		// savings of at least 1250 (0.8 threshold).
		plan := ComputePlan(g, decimal.NewFromInt(1300), now)
		if !plan.IsOnTrack {
			t.Error("expected plan to be on track")
		}

		plan = ComputePlan(g, decimal.NewFromInt(1200), now)
		if plan.IsOnTrack {
			t.Error("expected plan to be off track")
		}
	})
}

func TestComputePlan_DerivedTargets(t *testing.T) {
	now := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	g := testGoal(10000, 1000)
	monthly := decimal.NewFromInt(433)
	g.ContributionAmount = &monthly

	plan := ComputePlan(g, decimal.NewFromInt(1000), now)

	if !plan.Remaining.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("expected remaining 9000, got %s", plan.Remaining)
	}
	if !plan.DailyTarget.Equal(decimal.NewFromFloat(14.43)) {
		t.Errorf("expected daily target 14.43, got %s", plan.DailyTarget)
	}
	if !plan.WeeklyTarget.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected weekly target 100, got %s", plan.WeeklyTarget)
	}
}
