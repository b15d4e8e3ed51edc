package catalog

import (
	"strings"

	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a purchasable good tracked by the restaurant
// It is the aggregate root for product-related operations
type Product struct {
	shared.BaseAggregateRoot
	Name       string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Unit       string          `gorm:"type:varchar(20);not null"`             // Stock unit (e.g., "kg", "l", "unidad")
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Purchase cost per unit
	Perishable bool            `gorm:"not null;default:false"`
	MinStock   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Minimum stock level for alerts
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, unit string, unitCost decimal.Decimal) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Unit:              unit,
		UnitCost:          unitCost,
		MinStock:          decimal.Zero,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, unit string, unitCost decimal.Decimal) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if err := validateUnit(unit); err != nil {
		return err
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	p.Name = strings.TrimSpace(name)
	p.Unit = unit
	p.UnitCost = unitCost
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetMinStock sets the minimum stock level for low-stock alerts
func (p *Product) SetMinStock(minStock decimal.Decimal) error {
	if minStock.IsNegative() {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock cannot be negative")
	}

	p.MinStock = minStock
	p.Touch()
	p.IncrementVersion()

	return nil
}

// MarkPerishable flags the product as perishable
func (p *Product) MarkPerishable(perishable bool) {
	p.Perishable = perishable
	p.Touch()
	p.IncrementVersion()
}

func validateProductName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateUnit(unit string) error {
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}
	return nil
}
