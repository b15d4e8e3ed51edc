package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementType is the reason code recorded on a stock movement
type MovementType string

const (
	// MovementTypeInitialStock is the opening balance written when a product is enrolled as an ingredient
	MovementTypeInitialStock MovementType = "INITIAL_STOCK"
	// MovementTypeReceipt is a supplier delivery adding stock
	MovementTypeReceipt MovementType = "RECEIPT"
	// MovementTypeOrderConsumption is a deduction caused by preparing an order item
	MovementTypeOrderConsumption MovementType = "ORDER_CONSUMPTION"
	// MovementTypeCancelRestock re-adds stock deducted for an order item that was cancelled mid-preparation
	MovementTypeCancelRestock MovementType = "CANCEL_RESTOCK"
	// MovementTypeWaste is a deduction for spoiled or discarded stock
	MovementTypeWaste MovementType = "WASTE"
	// MovementTypeManualAdjustment is an operator correction in either direction
	MovementTypeManualAdjustment MovementType = "MANUAL_ADJUSTMENT"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeInitialStock,
		MovementTypeReceipt,
		MovementTypeOrderConsumption,
		MovementTypeCancelRestock,
		MovementTypeWaste,
		MovementTypeManualAdjustment:
		return true
	}
	return false
}

// StockMovement is an immutable ledger record of one quantity change applied to
// one ingredient. Once created, movements are never edited or deleted;
// corrections are made with new movements.
// Invariant: QuantityAfter = QuantityBefore + QuantityDelta, always.
type StockMovement struct {
	shared.BaseEntity
	IngredientID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_mv_ingredient_time,priority:1"`
	MovementType   MovementType    `gorm:"type:varchar(30);not null;index"`
	QuantityDelta  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Signed: positive adds stock, negative removes it
	QuantityBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason         string          `gorm:"type:varchar(255)"`
	OriginRef      *uuid.UUID      `gorm:"type:uuid;index"` // Source row that triggered the movement (e.g. an order item)
	ActorID        *uuid.UUID      `gorm:"type:uuid"`       // Staff member responsible, when known
	OccurredOn     time.Time       `gorm:"type:timestamptz;not null;index:idx_stock_mv_ingredient_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement
func NewStockMovement(
	ingredientID uuid.UUID,
	movementType MovementType,
	quantityDelta decimal.Decimal,
	quantityBefore decimal.Decimal,
	quantityAfter decimal.Decimal,
	reason string,
) (*StockMovement, error) {
	if ingredientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	// A zero opening balance still gets its enrollment ledger entry
	if quantityDelta.IsZero() && movementType != MovementTypeInitialStock {
		return nil, shared.NewDomainError("VALIDATION", "Quantity delta cannot be zero")
	}
	if !quantityAfter.Equal(quantityBefore.Add(quantityDelta)) {
		return nil, shared.NewDomainError("INTEGRITY", "Quantity after must equal before plus delta")
	}
	if quantityAfter.IsNegative() {
		return nil, shared.NewDomainError("INTEGRITY", "Quantity after cannot be negative")
	}

	return &StockMovement{
		BaseEntity:     shared.NewBaseEntity(),
		IngredientID:   ingredientID,
		MovementType:   movementType,
		QuantityDelta:  quantityDelta,
		QuantityBefore: quantityBefore,
		QuantityAfter:  quantityAfter,
		Reason:         reason,
		OccurredOn:     time.Now(),
	}, nil
}

// WithOriginRef sets the source row that triggered the movement
func (m *StockMovement) WithOriginRef(originRef uuid.UUID) *StockMovement {
	m.OriginRef = &originRef
	return m
}

// WithActor sets the responsible staff member
func (m *StockMovement) WithActor(actorID uuid.UUID) *StockMovement {
	m.ActorID = &actorID
	return m
}

// IsDeduction reports whether the movement removed stock
func (m *StockMovement) IsDeduction() bool {
	return m.QuantityDelta.IsNegative()
}
