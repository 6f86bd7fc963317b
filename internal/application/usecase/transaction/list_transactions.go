// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/quanta/backend/internal/application/adapter"
	"github.com/quanta/backend/internal/domain/entity"
)

const (
	// DefaultPageLimit is the page size used when none is requested.
	DefaultPageLimit = 50
	// MaxPageLimit caps the requested page size.
	MaxPageLimit = 200
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Filter     adapter.TransactionFilter
	Pagination adapter.TransactionPagination
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Result *entity.TransactionListResult
	Totals *entity.TransactionTotals
}

// ListTransactionsUseCase handles filtered, paginated transaction listing.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute performs the listing. Totals are computed over the whole
// filtered set, not the returned page.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	pagination := input.Pagination
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Limit < 1 {
		pagination.Limit = DefaultPageLimit
	}
	if pagination.Limit > MaxPageLimit {
		pagination.Limit = MaxPageLimit
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, input.Filter, pagination)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}

	return &ListTransactionsOutput{Result: result, Totals: totals}, nil
}
