package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockChangeRequest describes one signed quantity change to one ingredient
type StockChangeRequest struct {
	IngredientID uuid.UUID
	Amount       decimal.Decimal // Always non-negative; IsDeduction gives the direction
	IsDeduction  bool
	MovementType inventory.MovementType
	Reason       string
	OriginRef    *uuid.UUID
	ActorID      *uuid.UUID
}

// EnrollIngredientRequest enrolls a product as a kitchen ingredient
type EnrollIngredientRequest struct {
	ProductID       uuid.UUID
	InitialQuantity decimal.Decimal
	ActorID         *uuid.UUID
}

// MovementHistoryRequest narrows a ledger history query
type MovementHistoryRequest struct {
	IngredientID *uuid.UUID
	MovementType *inventory.MovementType
	From         *time.Time
	To           *time.Time
	Limit        int
}

// IngredientDTO is the read model for an ingredient row
type IngredientDTO struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Unit              string          `json:"unit"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	MinStock          decimal.Decimal `json:"min_stock"`
	LastUpdated       time.Time       `json:"last_updated"`
}

// MovementDTO is the read model for one ledger entry
type MovementDTO struct {
	ID             uuid.UUID              `json:"id"`
	IngredientID   uuid.UUID              `json:"ingredient_id"`
	MovementType   inventory.MovementType `json:"movement_type"`
	QuantityDelta  decimal.Decimal        `json:"quantity_delta"`
	QuantityBefore decimal.Decimal        `json:"quantity_before"`
	QuantityAfter  decimal.Decimal        `json:"quantity_after"`
	Reason         string                 `json:"reason,omitempty"`
	OriginRef      *uuid.UUID             `json:"origin_ref,omitempty"`
	ActorID        *uuid.UUID             `json:"actor_id,omitempty"`
	OccurredOn     time.Time              `json:"occurred_on"`
}

// LowStockItem is one row of the low-stock summary
type LowStockItem struct {
	IngredientID uuid.UUID       `json:"ingredient_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Unit         string          `json:"unit"`
	Available    decimal.Decimal `json:"available"`
	Minimum      decimal.Decimal `json:"minimum"`
}

func toMovementDTO(m *inventory.StockMovement) MovementDTO {
	return MovementDTO{
		ID:             m.ID,
		IngredientID:   m.IngredientID,
		MovementType:   m.MovementType,
		QuantityDelta:  m.QuantityDelta,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Reason:         m.Reason,
		OriginRef:      m.OriginRef,
		ActorID:        m.ActorID,
		OccurredOn:     m.OccurredOn,
	}
}
