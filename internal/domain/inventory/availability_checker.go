package inventory

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockView is the read-only slice of inventory state the availability checker
// evaluates a recipe line against. Ingredient is nil when the recipe references
// a product that was never enrolled in kitchen stock.
type StockView struct {
	Ingredient  *Ingredient
	ProductName string
	StockUnit   string
}

// Shortfall describes one ingredient that blocks preparation
type Shortfall struct {
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Name         string          `json:"name"`
	Needed       decimal.Decimal `json:"needed"`
	Available    decimal.Decimal `json:"available"`
	Unit         string          `json:"unit"`
}

// UnitWarning reports a recipe line whose unit differs from the stock unit.
// The quantities are still compared numerically; no conversion is attempted.
type UnitWarning struct {
	IngredientID uuid.UUID `json:"ingredient_id"`
	Name         string    `json:"name"`
	RecipeUnit   string    `json:"recipe_unit"`
	StockUnit    string    `json:"stock_unit"`
}

// AvailabilityResult is the outcome of a non-mutating availability check
type AvailabilityResult struct {
	CanPrepare   bool          `json:"can_prepare"`
	Shortfalls   []Shortfall   `json:"shortfalls"`
	UnitWarnings []UnitWarning `json:"unit_warnings,omitempty"`
}

// AvailabilityChecker evaluates whether N units of a dish can be prepared
// given current stock. It never mutates state and may be called repeatedly
// without effect.
type AvailabilityChecker struct{}

// NewAvailabilityChecker creates a new AvailabilityChecker
func NewAvailabilityChecker() *AvailabilityChecker {
	return &AvailabilityChecker{}
}

// Check computes the shortfalls for preparing quantity units of a dish whose
// recipe is lines. stocks maps ingredient IDs to their current stock view; a
// missing entry or nil Ingredient is reported as a shortfall with available 0
// rather than an error. A unit mismatch between recipe and stock is surfaced
// as a warning but does not block the check.
func (c *AvailabilityChecker) Check(
	lines []catalog.RecipeLine,
	stocks map[uuid.UUID]StockView,
	quantity int,
) (*AvailabilityResult, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "Quantity must be positive")
	}

	result := &AvailabilityResult{
		CanPrepare: true,
		Shortfalls: make([]Shortfall, 0),
	}

	qty := decimal.NewFromInt(int64(quantity))

	for _, line := range lines {
		needed := line.QuantityPerUnit.Mul(qty)
		view, ok := stocks[line.IngredientID]

		if !ok || view.Ingredient == nil {
			// Recipe references an ingredient with no inventory record.
			// Data-integrity gap, reported as a shortfall rather than a crash.
			result.CanPrepare = false
			result.Shortfalls = append(result.Shortfalls, Shortfall{
				IngredientID: line.IngredientID,
				Name:         view.ProductName,
				Needed:       needed,
				Available:    decimal.Zero,
				Unit:         line.Unit,
			})
			continue
		}

		if view.StockUnit != "" && line.Unit != view.StockUnit {
			result.UnitWarnings = append(result.UnitWarnings, UnitWarning{
				IngredientID: line.IngredientID,
				Name:         view.ProductName,
				RecipeUnit:   line.Unit,
				StockUnit:    view.StockUnit,
			})
		}

		if view.Ingredient.AvailableQuantity.LessThan(needed) {
			result.CanPrepare = false
			result.Shortfalls = append(result.Shortfalls, Shortfall{
				IngredientID: line.IngredientID,
				Name:         view.ProductName,
				Needed:       needed,
				Available:    view.Ingredient.AvailableQuantity,
				Unit:         line.Unit,
			})
		}
	}

	return result, nil
}
