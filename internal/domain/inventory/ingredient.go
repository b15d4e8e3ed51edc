package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ingredient represents the kitchen-stock projection of exactly one product.
// It is the aggregate root for stock operations. AvailableQuantity is the only
// value in the system requiring mutual exclusion; it is mutated exclusively by
// the stock mutation engine under a row lock.
type Ingredient struct {
	shared.BaseAggregateRoot
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	AvailableQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastUpdated       time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// NewIngredient enrolls a product as a kitchen ingredient with an initial quantity
func NewIngredient(productID uuid.UUID, initialQuantity decimal.Decimal) (*Ingredient, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if initialQuantity.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION", "Initial quantity cannot be negative")
	}

	return &Ingredient{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		AvailableQuantity: initialQuantity,
		LastUpdated:       time.Now(),
	}, nil
}

// Increase adds quantity to the available stock
func (i *Ingredient) Increase(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("VALIDATION", "Quantity must be positive")
	}

	i.AvailableQuantity = i.AvailableQuantity.Add(quantity)
	i.LastUpdated = time.Now()
	i.UpdatedAt = i.LastUpdated
	i.IncrementVersion()

	return nil
}

// Decrease removes quantity from the available stock.
// The available quantity can never go below zero; a deduction larger than the
// current stock fails without modifying the aggregate.
func (i *Ingredient) Decrease(quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return shared.NewDomainError("VALIDATION", "Quantity must be positive")
	}
	if i.AvailableQuantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	i.AvailableQuantity = i.AvailableQuantity.Sub(quantity)
	i.LastUpdated = time.Now()
	i.UpdatedAt = i.LastUpdated
	i.IncrementVersion()

	return nil
}

// CanDeduct reports whether the given quantity could be deducted right now
func (i *Ingredient) CanDeduct(quantity decimal.Decimal) bool {
	return i.AvailableQuantity.GreaterThanOrEqual(quantity)
}

// IsBelowMinimum reports whether available stock is at or below the product minimum
func (i *Ingredient) IsBelowMinimum(minStock decimal.Decimal) bool {
	return i.AvailableQuantity.LessThanOrEqual(minStock)
}
