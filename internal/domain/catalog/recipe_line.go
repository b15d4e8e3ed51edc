package catalog

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RecipeLine links a dish to one ingredient it consumes
// The (dish, ingredient) pair is unique; QuantityPerUnit is how much of the
// ingredient one unit of the dish consumes, expressed in Unit
type RecipeLine struct {
	shared.BaseEntity
	DishID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_dish_ingredient,priority:1"`
	IngredientID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_dish_ingredient,priority:2"`
	QuantityPerUnit decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Unit            string          `gorm:"type:varchar(20);not null"`
	Note            string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RecipeLine) TableName() string {
	return "recipe_lines"
}

// NewRecipeLine creates a new recipe line
func NewRecipeLine(dishID, ingredientID uuid.UUID, quantityPerUnit decimal.Decimal, unit, note string) (*RecipeLine, error) {
	if dishID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DISH", "Dish ID is required")
	}
	if ingredientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID is required")
	}
	if !quantityPerUnit.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity per unit must be positive")
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	return &RecipeLine{
		BaseEntity:      shared.NewBaseEntity(),
		DishID:          dishID,
		IngredientID:    ingredientID,
		QuantityPerUnit: quantityPerUnit,
		Unit:            unit,
		Note:            note,
	}, nil
}

// UpdateQuantity changes how much of the ingredient the dish consumes
func (r *RecipeLine) UpdateQuantity(quantityPerUnit decimal.Decimal) error {
	if !quantityPerUnit.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity per unit must be positive")
	}

	r.QuantityPerUnit = quantityPerUnit
	r.Touch()

	return nil
}

// UpdateNote changes the preparation note
func (r *RecipeLine) UpdateNote(note string) {
	r.Note = note
	r.Touch()
}
