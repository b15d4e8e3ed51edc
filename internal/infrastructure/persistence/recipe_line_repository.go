package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRecipeLineRepository implements RecipeLineRepository using GORM
type GormRecipeLineRepository struct {
	db *gorm.DB
}

// NewGormRecipeLineRepository creates a new GormRecipeLineRepository
func NewGormRecipeLineRepository(db *gorm.DB) *GormRecipeLineRepository {
	return &GormRecipeLineRepository{db: db}
}

// FindByID finds a recipe line by its ID
func (r *GormRecipeLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.RecipeLine, error) {
	var line catalog.RecipeLine
	if err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindByDish returns the recipe of a dish ordered by line creation.
// A dish with no recipe lines returns an empty slice.
func (r *GormRecipeLineRepository) FindByDish(ctx context.Context, dishID uuid.UUID) ([]catalog.RecipeLine, error) {
	var lines []catalog.RecipeLine
	if err := r.db.WithContext(ctx).
		Where("dish_id = ?", dishID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByIngredient finds all recipe lines consuming an ingredient
func (r *GormRecipeLineRepository) FindByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]catalog.RecipeLine, error) {
	var lines []catalog.RecipeLine
	if err := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// Save creates or updates a recipe line
func (r *GormRecipeLineRepository) Save(ctx context.Context, line *catalog.RecipeLine) error {
	return translateDBError(r.db.WithContext(ctx).Save(line).Error)
}

// Delete deletes a recipe line
func (r *GormRecipeLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.RecipeLine{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByDish deletes every recipe line of a dish
func (r *GormRecipeLineRepository) DeleteByDish(ctx context.Context, dishID uuid.UUID) error {
	return translateDBError(r.db.WithContext(ctx).Delete(&catalog.RecipeLine{}, "dish_id = ?", dishID).Error)
}

// Ensure GormRecipeLineRepository implements RecipeLineRepository
var _ catalog.RecipeLineRepository = (*GormRecipeLineRepository)(nil)
