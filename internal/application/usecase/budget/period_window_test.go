// Package budget contains spending budget use cases.
package budget

import (
	"testing"
	"time"

	"github.com/quanta/backend/internal/domain/entity"
)

func TestPeriodWindow(t *testing.T) {
	// Saturday, March 15 2025.
	now := time.Date(2025, 3, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period entity.BudgetPeriod
		start  time.Time
		end    time.Time
	}{
		{
			name:   "monthly",
			period: entity.BudgetPeriodMonthly,
			start:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "weekly starts on monday",
			period: entity.BudgetPeriodWeekly,
			start:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "yearly",
			period: entity.BudgetPeriodYearly,
			start:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			end:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PeriodWindow(tt.period, now)
			if !start.Equal(tt.start) {
				t.Errorf("expected start %s, got %s", tt.start, start)
			}
			if !end.Equal(tt.end) {
				t.Errorf("expected end %s, got %s", tt.end, end)
			}
		})
	}

	t.Run("sunday belongs to the preceding week", func(t *testing.T) {
		sunday := time.Date(2025, 3, 16, 9, 0, 0, 0, time.UTC)
		start, end := PeriodWindow(entity.BudgetPeriodWeekly, sunday)
		if !start.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected week start March 10, got %s", start)
		}
		if !end.Equal(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected week end March 17, got %s", end)
		}
	})
}
