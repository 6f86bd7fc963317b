// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// SavingsCategoryName is the seeded system category that mirrored goal
// contributions are booked against. It cannot be deleted.
const SavingsCategoryName = "savings"

// Category represents a transaction category in the QUANTA system.
// System categories are seeded once and shared by all users; user
// categories belong to a single user.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID // uuid.Nil for system categories
	Name      string
	Color     string
	Icon      string
	Type      CategoryType
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new user-owned Category entity. Defaulting logic
// for color and icon is applied in the use case layer before calling
// this constructor.
func NewCategory(userID uuid.UUID, name, color, icon string, categoryType CategoryType) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		Icon:      icon,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BelongsTo reports whether the category is usable by the given user:
// either it is a system category or it is owned by the user.
func (c *Category) BelongsTo(userID uuid.UUID) bool {
	return c.IsSystem || c.UserID == userID
}

// CategoryWithStats represents a category with transaction statistics.
type CategoryWithStats struct {
	Category         *Category
	TransactionCount int
	PeriodTotal      float64
}
