package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest registers a new purchasable product
type CreateProductRequest struct {
	Name       string
	Unit       string
	UnitCost   decimal.Decimal
	Perishable bool
	MinStock   decimal.Decimal
}

// UpdateProductRequest updates an existing product
type UpdateProductRequest struct {
	ProductID  uuid.UUID
	Name       string
	Unit       string
	UnitCost   decimal.Decimal
	Perishable bool
	MinStock   decimal.Decimal
}

// ProductDTO is the read model for a product
type ProductDTO struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Perishable bool            `json:"perishable"`
	MinStock   decimal.Decimal `json:"min_stock"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateDishRequest adds a new dish to the menu
type CreateDishRequest struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

// UpdateDishRequest updates a dish's name and description
type UpdateDishRequest struct {
	DishID      uuid.UUID
	Name        string
	Description string
}

// DishDTO is the read model for a dish
type DishDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SetRecipeLineRequest creates or updates the line linking a dish to one
// ingredient it consumes
type SetRecipeLineRequest struct {
	DishID          uuid.UUID
	IngredientID    uuid.UUID
	QuantityPerUnit decimal.Decimal
	Unit            string
	Note            string
}

// RecipeLineDTO is the read model for one recipe line
type RecipeLineDTO struct {
	ID              uuid.UUID       `json:"id"`
	DishID          uuid.UUID       `json:"dish_id"`
	IngredientID    uuid.UUID       `json:"ingredient_id"`
	IngredientName  string          `json:"ingredient_name,omitempty"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	Unit            string          `json:"unit"`
	Note            string          `json:"note,omitempty"`
}

// RecipeDTO is the full recipe of a dish
type RecipeDTO struct {
	DishID   uuid.UUID       `json:"dish_id"`
	DishName string          `json:"dish_name"`
	Lines    []RecipeLineDTO `json:"lines"`
}

func toProductDTO(product *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:         product.ID,
		Name:       product.Name,
		Unit:       product.Unit,
		UnitCost:   product.UnitCost,
		Perishable: product.Perishable,
		MinStock:   product.MinStock,
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}

func toDishDTO(dish *catalog.Dish) DishDTO {
	return DishDTO{
		ID:          dish.ID,
		Name:        dish.Name,
		Description: dish.Description,
		Price:       dish.Price,
		Active:      dish.Active,
		CreatedAt:   dish.CreatedAt,
		UpdatedAt:   dish.UpdatedAt,
	}
}

func toRecipeLineDTO(line *catalog.RecipeLine, ingredientName string) RecipeLineDTO {
	return RecipeLineDTO{
		ID:              line.ID,
		DishID:          line.DishID,
		IngredientID:    line.IngredientID,
		IngredientName:  ingredientName,
		QuantityPerUnit: line.QuantityPerUnit,
		Unit:            line.Unit,
		Note:            line.Note,
	}
}
