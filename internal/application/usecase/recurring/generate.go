// Package recurring contains the recurring expense reconciliation use cases.
package recurring

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// isValidPeriod reports whether a period string is of the form YYYY-MM.
func isValidPeriod(period string) bool {
	return periodPattern.MatchString(period)
}

// buildDocument derives the monthly expense document for a period from
// the active templates. Item identity is deterministic (template +
// period), so rebuilding with an unchanged template set yields an
// identical item list. Settlement status is reconciliation state, not
// derivation: it is carried over from the prior document by item ID.
func buildDocument(
	userID uuid.UUID,
	period string,
	templates []*entity.RecurringTemplate,
	prior *entity.MonthlyExpenseDocument,
	now time.Time,
) *entity.MonthlyExpenseDocument {
	items := make([]entity.MonthlyExpenseItem, 0, len(templates))
	for _, tmpl := range templates {
		item := entity.MonthlyExpenseItem{
			ID:           entity.MonthlyItemID(tmpl.ID, period),
			TemplateID:   tmpl.ID,
			NameSnapshot: tmpl.Name,
			Amount:       tmpl.DefaultAmount,
			CategoryID:   tmpl.CategoryID,
			Status:       entity.ItemStatusPending,
		}
		if prior != nil {
			if prev := prior.ItemByID(item.ID); prev != nil && prev.Status == entity.ItemStatusPaid {
				item.Status = entity.ItemStatusPaid
				item.PaidAt = prev.PaidAt
			}
		}
		items = append(items, item)
	}

	return &entity.MonthlyExpenseDocument{
		ID:            uuid.New(),
		UserID:        userID,
		Period:        period,
		Items:         items,
		InitializedAt: now,
	}
}

// regenerate invalidates the cached document for a period and rebuilds
// it from the active templates. Regeneration is a full replacement, not
// a merge.
func regenerate(
	ctx context.Context,
	templateRepo adapter.RecurringTemplateRepository,
	documentRepo adapter.MonthlyDocumentRepository,
	userID uuid.UUID,
	period string,
	now time.Time,
) (*entity.MonthlyExpenseDocument, error) {
	templates, err := templateRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load active templates: %w", err)
	}

	prior, err := documentRepo.FindByUserAndPeriod(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached monthly document: %w", err)
	}

	if err := documentRepo.Delete(ctx, userID, period); err != nil {
		return nil, fmt.Errorf("failed to invalidate monthly document: %w", err)
	}

	doc := buildDocument(userID, period, templates, prior, now)
	if err := documentRepo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save monthly document: %w", err)
	}

	return doc, nil
}
