package dto

import (
	"time"

	"github.com/quanta/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Type  string `json:"type" binding:"required,oneof=expense income"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Type      string    `json:"type"`
	IsSystem  bool      `json:"is_system"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(c *entity.Category) CategoryResponse {
	response := CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Color:     c.Color,
		Icon:      c.Icon,
		Type:      string(c.Type),
		IsSystem:  c.IsSystem,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if !c.IsSystem {
		userID := c.UserID.String()
		response.UserID = &userID
	}
	return response
}

// ToCategoryListResponse converts a slice of categories to a list response.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	response := CategoryListResponse{
		Categories: make([]CategoryResponse, 0, len(categories)),
	}
	for _, c := range categories {
		response.Categories = append(response.Categories, ToCategoryResponse(c))
	}
	return response
}
