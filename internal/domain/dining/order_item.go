package dining

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderItemStatus represents the kitchen status of one order line
type OrderItemStatus string

const (
	OrderItemStatusPending   OrderItemStatus = "pending"
	OrderItemStatusPreparing OrderItemStatus = "preparing"
	OrderItemStatusReady     OrderItemStatus = "ready"
	OrderItemStatusDelivered OrderItemStatus = "delivered"
	OrderItemStatusCancelled OrderItemStatus = "cancelled"
)

// String returns the string representation of OrderItemStatus
func (s OrderItemStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value
func (s OrderItemStatus) IsValid() bool {
	switch s {
	case OrderItemStatusPending,
		OrderItemStatusPreparing,
		OrderItemStatusReady,
		OrderItemStatusDelivered,
		OrderItemStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no further transition is possible
func (s OrderItemStatus) IsTerminal() bool {
	return s == OrderItemStatusDelivered || s == OrderItemStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderItemStatus) CanTransitionTo(target OrderItemStatus) bool {
	switch s {
	case OrderItemStatusPending:
		return target == OrderItemStatusPreparing || target == OrderItemStatusCancelled
	case OrderItemStatusPreparing:
		return target == OrderItemStatusReady || target == OrderItemStatusCancelled
	case OrderItemStatusReady:
		return target == OrderItemStatusDelivered
	case OrderItemStatusDelivered, OrderItemStatusCancelled:
		return false // Terminal states
	}
	return false
}

// OrderItem is one (dish, quantity) line inside an order. It carries the dish
// price captured when the line was added; later menu price changes never
// affect it.
type OrderItem struct {
	shared.BaseEntity
	OrderID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	DishID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity          int             `gorm:"not null"`
	UnitPriceSnapshot decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status            OrderItemStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Note              string          `gorm:"type:text"`
	RequestedAt       time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new pending order item with a price snapshot
func NewOrderItem(orderID, dishID uuid.UUID, quantity int, unitPrice decimal.Decimal, note string) (*OrderItem, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if dishID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DISH", "Dish ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION", "Unit price cannot be negative")
	}

	return &OrderItem{
		BaseEntity:        shared.NewBaseEntity(),
		OrderID:           orderID,
		DishID:            dishID,
		Quantity:          quantity,
		UnitPriceSnapshot: unitPrice,
		Status:            OrderItemStatusPending,
		Note:              note,
		RequestedAt:       time.Now(),
	}, nil
}

// TransitionTo moves the item to the target status.
// Requesting the current status is a no-op that succeeds without any change,
// so a retried request is safe.
func (i *OrderItem) TransitionTo(target OrderItemStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("VALIDATION", fmt.Sprintf("Unknown order item status %q", target))
	}
	if i.Status == target {
		return nil
	}
	if !i.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move item from %s to %s", i.Status, target))
	}

	i.Status = target
	i.Touch()

	return nil
}

// LineTotal returns quantity times the snapshotted unit price
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPriceSnapshot.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CountsTowardTotal reports whether the line is billed (cancelled lines are not)
func (i *OrderItem) CountsTowardTotal() bool {
	return i.Status != OrderItemStatusCancelled
}
