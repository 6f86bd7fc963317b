// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quanta/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	Recurring   *bool  // Filter by IsRecurring when set
	Search      string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDWithCategory retrieves a transaction with its category by ID.
	FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error)

	// FindByUser retrieves all transactions for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindRecurringByUser retrieves all recurring transactions for a user.
	FindRecurringByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByRecurringItem retrieves the settlement transaction for a
	// monthly expense item, or nil when none exists.
	FindByRecurringItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// GetTotals calculates totals for transactions based on filter criteria.
	GetTotals(ctx context.Context, filter TransactionFilter) (*entity.TransactionTotals, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByIDAndUser checks if a transaction exists for a given ID and user.
	ExistsByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error)
}
