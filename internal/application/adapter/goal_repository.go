// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/domain/entity"
)

// GoalRepository defines the interface for savings goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID, including its contribution history.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUser retrieves all goals for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)

	// Update updates a goal's scalar fields in the database. It does not
	// touch the contribution history.
	Update(ctx context.Context, goal *entity.Goal) error

	// ReplaceContributions replaces the stored contribution history for a
	// goal. This is a separate write from Update: the goal's
	// CurrentAmount and its history are not updated atomically.
	ReplaceContributions(ctx context.Context, goalID uuid.UUID, history []entity.Contribution) error

	// Delete soft-deletes a goal from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
