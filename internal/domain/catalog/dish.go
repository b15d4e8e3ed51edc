package catalog

import (
	"strings"

	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Dish represents a menu item that can be ordered
// Its price is snapshotted onto order items at order time, so later price
// changes never affect already-open orders
type Dish struct {
	shared.BaseAggregateRoot
	Name        string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Dish) TableName() string {
	return "dishes"
}

// NewDish creates a new dish
func NewDish(name, description string, price decimal.Decimal) (*Dish, error) {
	if err := validateDishName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	dish := &Dish{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
		Price:             price,
		Active:            true,
	}

	dish.AddDomainEvent(NewDishCreatedEvent(dish))

	return dish, nil
}

// Update updates the dish's basic information
func (d *Dish) Update(name, description string) error {
	if err := validateDishName(name); err != nil {
		return err
	}

	d.Name = strings.TrimSpace(name)
	d.Description = description
	d.Touch()
	d.IncrementVersion()

	d.AddDomainEvent(NewDishUpdatedEvent(d))

	return nil
}

// ChangePrice updates the dish price
// Open order items keep the price they were added at
func (d *Dish) ChangePrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	oldPrice := d.Price
	d.Price = price
	d.Touch()
	d.IncrementVersion()

	d.AddDomainEvent(NewDishPriceChangedEvent(d, oldPrice))

	return nil
}

// Activate makes the dish orderable
func (d *Dish) Activate() error {
	if d.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Dish is already active")
	}

	d.Active = true
	d.Touch()
	d.IncrementVersion()

	return nil
}

// Deactivate removes the dish from the orderable menu
func (d *Dish) Deactivate() error {
	if !d.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Dish is already inactive")
	}

	d.Active = false
	d.Touch()
	d.IncrementVersion()

	return nil
}

func validateDishName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Dish name cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Dish name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}
