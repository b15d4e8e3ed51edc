package catalog

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeProduct = "Product"
	AggregateTypeDish    = "Dish"
)

// Event type constants
const (
	EventTypeProductCreated   = "ProductCreated"
	EventTypeProductUpdated   = "ProductUpdated"
	EventTypeDishCreated      = "DishCreated"
	EventTypeDishUpdated      = "DishUpdated"
	EventTypeDishPriceChanged = "DishPriceChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Unit:            product.Unit,
	}
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Unit:            product.Unit,
	}
}

// DishCreatedEvent is published when a new dish is created
type DishCreatedEvent struct {
	shared.BaseDomainEvent
	DishID uuid.UUID       `json:"dish_id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// NewDishCreatedEvent creates a new DishCreatedEvent
func NewDishCreatedEvent(dish *Dish) *DishCreatedEvent {
	return &DishCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDishCreated, AggregateTypeDish, dish.ID),
		DishID:          dish.ID,
		Name:            dish.Name,
		Price:           dish.Price,
	}
}

// DishUpdatedEvent is published when a dish is updated
type DishUpdatedEvent struct {
	shared.BaseDomainEvent
	DishID uuid.UUID `json:"dish_id"`
	Name   string    `json:"name"`
}

// NewDishUpdatedEvent creates a new DishUpdatedEvent
func NewDishUpdatedEvent(dish *Dish) *DishUpdatedEvent {
	return &DishUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDishUpdated, AggregateTypeDish, dish.ID),
		DishID:          dish.ID,
		Name:            dish.Name,
	}
}

// DishPriceChangedEvent is published when a dish's price changes
type DishPriceChangedEvent struct {
	shared.BaseDomainEvent
	DishID   uuid.UUID       `json:"dish_id"`
	OldPrice decimal.Decimal `json:"old_price"`
	NewPrice decimal.Decimal `json:"new_price"`
}

// NewDishPriceChangedEvent creates a new DishPriceChangedEvent
func NewDishPriceChangedEvent(dish *Dish, oldPrice decimal.Decimal) *DishPriceChangedEvent {
	return &DishPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDishPriceChanged, AggregateTypeDish, dish.ID),
		DishID:          dish.ID,
		OldPrice:        oldPrice,
		NewPrice:        dish.Price,
	}
}
