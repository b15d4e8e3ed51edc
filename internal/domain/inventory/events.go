package inventory

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeIngredient = "Ingredient"

// Event type constants
const (
	EventTypeIngredientEnrolled = "IngredientEnrolled"
	EventTypeStockDeducted      = "StockDeducted"
	EventTypeStockReceived      = "StockReceived"
	EventTypeStockBelowMinimum  = "StockBelowMinimum"
)

// IngredientEnrolledEvent is published when a product becomes a kitchen ingredient
type IngredientEnrolledEvent struct {
	shared.BaseDomainEvent
	IngredientID    uuid.UUID       `json:"ingredient_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
}

// NewIngredientEnrolledEvent creates a new IngredientEnrolledEvent
func NewIngredientEnrolledEvent(ingredient *Ingredient) *IngredientEnrolledEvent {
	return &IngredientEnrolledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIngredientEnrolled, AggregateTypeIngredient, ingredient.ID),
		IngredientID:    ingredient.ID,
		ProductID:       ingredient.ProductID,
		InitialQuantity: ingredient.AvailableQuantity,
	}
}

// StockDeductedEvent is published when stock is removed from an ingredient
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	IngredientID uuid.UUID       `json:"ingredient_id"`
	MovementType MovementType    `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	NewQuantity  decimal.Decimal `json:"new_quantity"`
	OriginRef    *uuid.UUID      `json:"origin_ref,omitempty"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(ingredient *Ingredient, movementType MovementType, quantity decimal.Decimal, originRef *uuid.UUID) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeducted, AggregateTypeIngredient, ingredient.ID),
		IngredientID:    ingredient.ID,
		MovementType:    movementType,
		Quantity:        quantity,
		NewQuantity:     ingredient.AvailableQuantity,
		OriginRef:       originRef,
	}
}

// StockReceivedEvent is published when stock is added to an ingredient
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	IngredientID uuid.UUID       `json:"ingredient_id"`
	MovementType MovementType    `json:"movement_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	NewQuantity  decimal.Decimal `json:"new_quantity"`
}

// NewStockReceivedEvent creates a new StockReceivedEvent
func NewStockReceivedEvent(ingredient *Ingredient, movementType MovementType, quantity decimal.Decimal) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, AggregateTypeIngredient, ingredient.ID),
		IngredientID:    ingredient.ID,
		MovementType:    movementType,
		Quantity:        quantity,
		NewQuantity:     ingredient.AvailableQuantity,
	}
}

// StockBelowMinimumEvent is published when a mutation leaves stock at or below
// the product's minimum level
type StockBelowMinimumEvent struct {
	shared.BaseDomainEvent
	IngredientID uuid.UUID       `json:"ingredient_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	Available    decimal.Decimal `json:"available"`
	Minimum      decimal.Decimal `json:"minimum"`
}

// NewStockBelowMinimumEvent creates a new StockBelowMinimumEvent
func NewStockBelowMinimumEvent(ingredient *Ingredient, minimum decimal.Decimal) *StockBelowMinimumEvent {
	return &StockBelowMinimumEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowMinimum, AggregateTypeIngredient, ingredient.ID),
		IngredientID:    ingredient.ID,
		ProductID:       ingredient.ProductID,
		Available:       ingredient.AvailableQuantity,
		Minimum:         minimum,
	}
}
