// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves the categories visible to a user: system
	// categories plus the user's own.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// FindSystemByName retrieves a system category by its name, or nil
	// when none exists.
	FindSystemByName(ctx context.Context, name string) (*entity.Category, error)

	// ExistsByUserAndName checks whether a user already has a category
	// with the given name.
	ExistsByUserAndName(ctx context.Context, userID uuid.UUID, name string) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountTransactions returns the number of transactions referencing a category.
	CountTransactions(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
