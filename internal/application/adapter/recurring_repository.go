// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/domain/entity"
)

// RecurringTemplateRepository defines the interface for recurring
// template persistence operations.
type RecurringTemplateRepository interface {
	// Create creates a new recurring template in the database.
	Create(ctx context.Context, template *entity.RecurringTemplate) error

	// FindByID retrieves a template by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTemplate, error)

	// FindByUser retrieves all templates for a given user, active first,
	// ordered by creation time.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTemplate, error)

	// FindActiveByUser retrieves the active templates for a user ordered
	// by creation time. Monthly document generation depends on this
	// ordering being stable.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTemplate, error)

	// Update updates an existing template in the database.
	Update(ctx context.Context, template *entity.RecurringTemplate) error

	// Delete soft-deletes a template from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MonthlyDocumentRepository defines the interface for the cached
// per-period monthly expense documents. Documents are derived artifacts:
// the only authoritative state they carry is item settlement status.
type MonthlyDocumentRepository interface {
	// FindByUserAndPeriod retrieves the cached document for a period, or
	// nil when none has been generated yet.
	FindByUserAndPeriod(ctx context.Context, userID uuid.UUID, period string) (*entity.MonthlyExpenseDocument, error)

	// Save stores a document, replacing any existing document for the
	// same user and period.
	Save(ctx context.Context, doc *entity.MonthlyExpenseDocument) error

	// Delete removes the cached document for a period (cache
	// invalidation before regeneration).
	Delete(ctx context.Context, userID uuid.UUID, period string) error

	// UpdateItemStatus sets the settlement status of a single item
	// within a stored document.
	UpdateItemStatus(ctx context.Context, userID uuid.UUID, period string, itemID uuid.UUID, status entity.ItemStatus) error
}
