// Package recurring contains the recurring expense reconciliation use cases.
package recurring

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quanta/backend/internal/domain/entity"

	"github.com/google/uuid"
)

func TestIsValidPeriod(t *testing.T) {
	tests := []struct {
		period string
		valid  bool
	}{
		{"2025-01", true},
		{"2025-12", true},
		{"1999-09", true},
		{"2025-13", false},
		{"2025-00", false},
		{"2025-1", false},
		{"202501", false},
		{"2025-01-01", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			if got := isValidPeriod(tt.period); got != tt.valid {
				t.Errorf("isValidPeriod(%q) = %v, want %v", tt.period, got, tt.valid)
			}
		})
	}
}

func TestRegenerate_Deterministic(t *testing.T) {
	ctx := context.Background()
	tmplRepo := newFakeTemplateRepo()
	docRepo := newFakeDocumentRepo()
	userID := uuid.New()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	for _, name := range []string{"Rent", "Internet", "Gym"} {
		tmpl := entity.NewRecurringTemplate(userID, name, decimal.NewFromInt(100), nil, entity.FrequencyMonthly)
		if err := tmplRepo.Create(ctx, tmpl); err != nil {
			t.Fatal(err)
		}
	}

	first, err := regenerate(ctx, tmplRepo, docRepo, userID, "2025-03", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := regenerate(ctx, tmplRepo, docRepo, userID, "2025-03", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Regenerating with an unchanged template set yields the same items
	// in the same order.
	if len(first.Items) != 3 || len(second.Items) != 3 {
		t.Fatalf("expected 3 items in both documents, got %d and %d", len(first.Items), len(second.Items))
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID {
			t.Errorf("item %d: IDs differ across regeneration", i)
		}
		if first.Items[i].TemplateID != second.Items[i].TemplateID {
			t.Errorf("item %d: template refs differ across regeneration", i)
		}
		if first.Items[i].NameSnapshot != second.Items[i].NameSnapshot {
			t.Errorf("item %d: snapshots differ across regeneration", i)
		}
	}
}

func TestRegenerate_CarriesSettlementStatus(t *testing.T) {
	ctx := context.Background()
	tmplRepo := newFakeTemplateRepo()
	docRepo := newFakeDocumentRepo()
	userID := uuid.New()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	paid := entity.NewRecurringTemplate(userID, "Rent", decimal.NewFromInt(1200), nil, entity.FrequencyMonthly)
	pending := entity.NewRecurringTemplate(userID, "Gym", decimal.NewFromInt(80), nil, entity.FrequencyMonthly)
	for _, tmpl := range []*entity.RecurringTemplate{paid, pending} {
		if err := tmplRepo.Create(ctx, tmpl); err != nil {
			t.Fatal(err)
		}
	}

	doc, err := regenerate(ctx, tmplRepo, docRepo, userID, "2025-03", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	paidItem := doc.ItemByTemplate(paid.ID)
	if paidItem == nil {
		t.Fatal("expected an item for the paid template")
	}
	if err := docRepo.UpdateItemStatus(ctx, userID, "2025-03", paidItem.ID, entity.ItemStatusPaid); err != nil {
		t.Fatal(err)
	}

	// A new template lands mid-month and forces regeneration. The paid
	// item keeps its settlement status.
	extra := entity.NewRecurringTemplate(userID, "Streaming", decimal.NewFromInt(40), nil, entity.FrequencyMonthly)
	if err := tmplRepo.Create(ctx, extra); err != nil {
		t.Fatal(err)
	}

	doc, err = regenerate(ctx, tmplRepo, docRepo, userID, "2025-03", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(doc.Items))
	}
	if got := doc.ItemByTemplate(paid.ID); got == nil || got.Status != entity.ItemStatusPaid {
		t.Error("expected settled item to stay paid after regeneration")
	}
	if got := doc.ItemByTemplate(pending.ID); got == nil || got.Status != entity.ItemStatusPending {
		t.Error("expected unsettled item to stay pending after regeneration")
	}
	if got := doc.ItemByTemplate(extra.ID); got == nil || got.Status != entity.ItemStatusPending {
		t.Error("expected new item to start pending")
	}
}

func TestRegenerate_DropsDeactivatedTemplates(t *testing.T) {
	ctx := context.Background()
	tmplRepo := newFakeTemplateRepo()
	docRepo := newFakeDocumentRepo()
	userID := uuid.New()
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

	keep := entity.NewRecurringTemplate(userID, "Rent", decimal.NewFromInt(1200), nil, entity.FrequencyMonthly)
	drop := entity.NewRecurringTemplate(userID, "Magazine", decimal.NewFromInt(15), nil, entity.FrequencyMonthly)
	for _, tmpl := range []*entity.RecurringTemplate{keep, drop} {
		if err := tmplRepo.Create(ctx, tmpl); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := regenerate(ctx, tmplRepo, docRepo, userID, "2025-03", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drop.Active = false
	if err := tmplRepo.Update(ctx, drop); err != nil {
		t.Fatal(err)
	}

	doc, err := regenerate(ctx, tmplRepo, docRepo, userID, "2025-03", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Items) != 1 {
		t.Fatalf("expected 1 item after deactivation, got %d", len(doc.Items))
	}
	if doc.ItemByTemplate(drop.ID) != nil {
		t.Error("expected no item for the deactivated template")
	}
}

func TestMonthlyItemID_Deterministic(t *testing.T) {
	templateID := uuid.New()

	a := entity.MonthlyItemID(templateID, "2025-03")
	b := entity.MonthlyItemID(templateID, "2025-03")
	if a != b {
		t.Error("expected identical IDs for the same template and period")
	}

	if entity.MonthlyItemID(templateID, "2025-04") == a {
		t.Error("expected different IDs across periods")
	}
	if entity.MonthlyItemID(uuid.New(), "2025-03") == a {
		t.Error("expected different IDs across templates")
	}
}
