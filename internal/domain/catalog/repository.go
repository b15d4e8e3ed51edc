package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence.
// Single-row Find methods return shared.ErrNotFound when no row matches;
// they never return (nil, nil).
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByName finds a product by its exact name
	FindByName(ctx context.Context, name string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByName checks if a product with the given name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// DishRepository defines the interface for dish persistence
type DishRepository interface {
	// FindByID finds a dish by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Dish, error)

	// FindAll finds all dishes matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Dish, error)

	// FindActive finds all active dishes
	FindActive(ctx context.Context, filter shared.Filter) ([]Dish, error)

	// Save creates or updates a dish
	Save(ctx context.Context, dish *Dish) error

	// Delete deletes a dish
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts dishes matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// RecipeLineRepository defines the interface for recipe line persistence
type RecipeLineRepository interface {
	// FindByID finds a recipe line by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*RecipeLine, error)

	// FindByDish returns the recipe of a dish ordered by line creation
	// A dish with no recipe lines returns an empty slice, not an error
	FindByDish(ctx context.Context, dishID uuid.UUID) ([]RecipeLine, error)

	// FindByIngredient finds all recipe lines consuming an ingredient
	FindByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]RecipeLine, error)

	// Save creates or updates a recipe line
	Save(ctx context.Context, line *RecipeLine) error

	// Delete deletes a recipe line
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByDish deletes every recipe line of a dish
	DeleteByDish(ctx context.Context, dishID uuid.UUID) error
}
