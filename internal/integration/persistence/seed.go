// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quanta/backend/internal/domain/entity"
	"github.com/quanta/backend/internal/integration/persistence/model"
)

// systemCategorySeeds are created once at startup if absent. The savings
// category is required: mirrored goal contributions are booked against
// it and category deletion refuses to touch it.
var systemCategorySeeds = []struct {
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}{
	{Name: entity.SavingsCategoryName, Color: "#10B981", Icon: "piggy-bank", Type: entity.CategoryTypeExpense},
	{Name: "housing", Color: "#F59E0B", Icon: "home", Type: entity.CategoryTypeExpense},
	{Name: "groceries", Color: "#84CC16", Icon: "shopping-cart", Type: entity.CategoryTypeExpense},
	{Name: "transport", Color: "#3B82F6", Icon: "car", Type: entity.CategoryTypeExpense},
	{Name: "utilities", Color: "#8B5CF6", Icon: "zap", Type: entity.CategoryTypeExpense},
	{Name: "entertainment", Color: "#EC4899", Icon: "film", Type: entity.CategoryTypeExpense},
	{Name: "health", Color: "#EF4444", Icon: "heart", Type: entity.CategoryTypeExpense},
	{Name: "salary", Color: "#22C55E", Icon: "banknote", Type: entity.CategoryTypeIncome},
	{Name: "other", Color: "#6B7280", Icon: "tag", Type: entity.CategoryTypeExpense},
}

// SeedSystemCategories inserts the shared system categories if they do
// not already exist. Safe to run on every startup.
func SeedSystemCategories(ctx context.Context, db *gorm.DB) error {
	for _, seed := range systemCategorySeeds {
		var count int64
		if err := db.WithContext(ctx).
			Model(&model.CategoryModel{}).
			Where("is_system = ? AND name = ?", true, seed.Name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check system category %q: %w", seed.Name, err)
		}
		if count > 0 {
			continue
		}

		now := time.Now().UTC()
		categoryModel := &model.CategoryModel{
			ID:        uuid.New(),
			UserID:    nil,
			Name:      seed.Name,
			Color:     seed.Color,
			Icon:      seed.Icon,
			Type:      string(seed.Type),
			IsSystem:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.WithContext(ctx).Create(categoryModel).Error; err != nil {
			return fmt.Errorf("failed to seed system category %q: %w", seed.Name, err)
		}
		slog.Info("Seeded system category", "name", seed.Name)
	}
	return nil
}
