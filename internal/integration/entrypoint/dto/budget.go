package dto

import (
	"time"

	"github.com/quanta/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID    string  `json:"category_id" binding:"required,uuid"`
	LimitAmount   float64 `json:"limit_amount" binding:"required,gt=0"`
	AlertOnExceed *bool   `json:"alert_on_exceed,omitempty"`
	Period        *string `json:"period,omitempty" binding:"omitempty,oneof=monthly weekly yearly"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	LimitAmount   *float64 `json:"limit_amount,omitempty" binding:"omitempty,gt=0"`
	AlertOnExceed *bool    `json:"alert_on_exceed,omitempty"`
	Period        *string  `json:"period,omitempty" binding:"omitempty,oneof=monthly weekly yearly"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	CategoryID      string            `json:"category_id"`
	Category        *CategoryResponse `json:"category,omitempty"`
	LimitAmount     float64           `json:"limit_amount"`
	CurrentSpending float64           `json:"current_spending"`
	AlertOnExceed   bool              `json:"alert_on_exceed"`
	Period          string            `json:"period"`
	IsExceeded      bool              `json:"is_exceeded"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:            b.ID.String(),
		UserID:        b.UserID.String(),
		CategoryID:    b.CategoryID.String(),
		LimitAmount:   b.LimitAmount.InexactFloat64(),
		AlertOnExceed: b.AlertOnExceed,
		Period:        string(b.Period),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ToBudgetResponseWithSpending converts a budget plus its current period
// spending to a DTO.
func ToBudgetResponseWithSpending(bs *entity.BudgetWithSpending) BudgetResponse {
	response := ToBudgetResponse(bs.Budget)
	response.CurrentSpending = bs.CurrentSpending.InexactFloat64()
	response.IsExceeded = bs.IsExceeded()
	if bs.Category != nil {
		category := ToCategoryResponse(bs.Category)
		response.Category = &category
	}
	return response
}

// ToBudgetListResponse converts budgets with spending to a list response.
func ToBudgetListResponse(budgets []*entity.BudgetWithSpending) BudgetListResponse {
	response := BudgetListResponse{
		Budgets: make([]BudgetResponse, 0, len(budgets)),
	}
	for _, bs := range budgets {
		response.Budgets = append(response.Budgets, ToBudgetResponseWithSpending(bs))
	}
	return response
}
