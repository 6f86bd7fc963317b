package dto

import (
	"time"

	"github.com/quanta/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction
// creation. When is_recurring is true the transaction also commits a
// recurring template and frequency becomes required.
type CreateTransactionRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=100"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required,oneof=expense income"`
	CategoryID  *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Notes       string  `json:"notes,omitempty" binding:"omitempty,max=500"`
	Payment     string  `json:"payment,omitempty" binding:"omitempty,oneof=cash card transfer"`
	IsRecurring bool    `json:"is_recurring"`
	Frequency   *string `json:"frequency,omitempty" binding:"omitempty,oneof=weekly biweekly monthly"`
}

// UpdateTransactionRequest represents the request body for transaction
// update. Setting is_recurring to true converts a one-off transaction
// into a recurring one.
type UpdateTransactionRequest struct {
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"required,min=1,max=100"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Type        string  `json:"type" binding:"required,oneof=expense income"`
	CategoryID  *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Notes       string  `json:"notes,omitempty" binding:"omitempty,max=500"`
	Payment     string  `json:"payment,omitempty" binding:"omitempty,oneof=cash card transfer"`
	IsRecurring bool    `json:"is_recurring"`
	Frequency   *string `json:"frequency,omitempty" binding:"omitempty,oneof=weekly biweekly monthly"`
}

// ListTransactionsQuery represents the query parameters for listing transactions.
type ListTransactionsQuery struct {
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	CategoryID string `form:"category_id"`
	Type       string `form:"type" binding:"omitempty,oneof=expense income"`
	Recurring  string `form:"recurring" binding:"omitempty,oneof=true false"`
	Search     string `form:"search"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit      int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Date        string            `json:"date"`
	Description string            `json:"description"`
	Amount      float64           `json:"amount"`
	Type        string            `json:"type"`
	CategoryID  *string           `json:"category_id,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	IsRecurring bool              `json:"is_recurring"`
	Frequency   *string           `json:"frequency,omitempty"`
	Payment     string            `json:"payment"`
	Source      string            `json:"source"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TransactionTotalsResponse represents aggregated totals over the filter.
type TransactionTotalsResponse struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// PaginationResponse represents pagination metadata.
type PaginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse     `json:"transactions"`
	Pagination   PaginationResponse        `json:"pagination"`
	Totals       TransactionTotalsResponse `json:"totals"`
}

// ToTransactionResponse converts a domain Transaction entity to a DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          t.ID.String(),
		UserID:      t.UserID.String(),
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		Amount:      t.Amount.InexactFloat64(),
		Type:        string(t.Type),
		Notes:       t.Notes,
		IsRecurring: t.IsRecurring,
		Payment:     string(t.Payment),
		Source:      string(t.Source),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.CategoryID != nil {
		categoryID := t.CategoryID.String()
		response.CategoryID = &categoryID
	}
	if t.Frequency != nil {
		frequency := string(*t.Frequency)
		response.Frequency = &frequency
	}
	return response
}

// ToTransactionResponseWithCategory converts a transaction plus its
// category to a DTO.
func ToTransactionResponseWithCategory(tc *entity.TransactionWithCategory) TransactionResponse {
	response := ToTransactionResponse(tc.Transaction)
	if tc.Category != nil {
		category := ToCategoryResponse(tc.Category)
		response.Category = &category
	}
	return response
}

// ToTransactionListResponse converts a list result plus totals to a DTO.
func ToTransactionListResponse(result *entity.TransactionListResult, totals *entity.TransactionTotals) TransactionListResponse {
	response := TransactionListResponse{
		Transactions: make([]TransactionResponse, 0, len(result.Transactions)),
		Pagination: PaginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}
	for _, tc := range result.Transactions {
		response.Transactions = append(response.Transactions, ToTransactionResponseWithCategory(tc))
	}
	if totals != nil {
		response.Totals = TransactionTotalsResponse{
			Income:  totals.IncomeTotal.InexactFloat64(),
			Expense: totals.ExpenseTotal.InexactFloat64(),
			Net:     totals.NetTotal.InexactFloat64(),
		}
	}
	return response
}
