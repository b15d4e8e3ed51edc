package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InsufficientStockError reports exactly which ingredient blocked a deduction
// and by how much. It unwraps to shared.ErrInsufficientStock so callers can
// match it with errors.Is.
type InsufficientStockError struct {
	IngredientID uuid.UUID
	Name         string
	Needed       decimal.Decimal
	Available    decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("insufficient stock of %s: need %s, have %s",
			e.Name, e.Needed.String(), e.Available.String())
	}
	return fmt.Sprintf("insufficient stock of ingredient %s: need %s, have %s",
		e.IngredientID, e.Needed.String(), e.Available.String())
}

// Unwrap returns the sentinel insufficient-stock error
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// NewInsufficientStockError creates a new InsufficientStockError
func NewInsufficientStockError(ingredientID uuid.UUID, name string, needed, available decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		IngredientID: ingredientID,
		Name:         name,
		Needed:       needed,
		Available:    available,
	}
}
