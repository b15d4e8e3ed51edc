package dining

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusOpen          OrderStatus = "open"
	OrderStatusInPreparation OrderStatus = "in_preparation"
	OrderStatusReadyToServe  OrderStatus = "ready_to_serve"
	OrderStatusServed        OrderStatus = "served"
	OrderStatusBilled        OrderStatus = "billed"
	OrderStatusCancelled     OrderStatus = "cancelled"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusOpen,
		OrderStatusInPreparation,
		OrderStatusReadyToServe,
		OrderStatusServed,
		OrderStatusBilled,
		OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusBilled || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// An order can be cancelled from any non-terminal status; billing requires the
// order to have been served.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusOpen:
		return target == OrderStatusInPreparation || target == OrderStatusCancelled
	case OrderStatusInPreparation:
		return target == OrderStatusReadyToServe || target == OrderStatusCancelled
	case OrderStatusReadyToServe:
		return target == OrderStatusServed || target == OrderStatusCancelled
	case OrderStatusServed:
		return target == OrderStatusBilled || target == OrderStatusCancelled
	case OrderStatusBilled, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Order is one table's open tab. It owns its order items; their lifetime is
// bound to the order.
type Order struct {
	shared.BaseAggregateRoot
	TableID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	WaiterID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID *uuid.UUID      `gorm:"type:uuid;index"`
	PartySize  int             `gorm:"not null;default:1"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;default:'open';index"`
	Total      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Stored when the order is billed
	OpenedAt   time.Time       `gorm:"type:timestamptz;not null"`
	ClosedAt   *time.Time      `gorm:"type:timestamptz"`

	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder opens a new order on a table
func NewOrder(tableID, waiterID uuid.UUID, partySize int) (*Order, error) {
	if tableID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TABLE", "Table ID cannot be empty")
	}
	if waiterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAITER", "Waiter ID cannot be empty")
	}
	if partySize <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "Party size must be positive")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TableID:           tableID,
		WaiterID:          waiterID,
		PartySize:         partySize,
		Status:            OrderStatusOpen,
		Total:             decimal.Zero,
		OpenedAt:          time.Now(),
		Items:             make([]OrderItem, 0),
	}

	order.AddDomainEvent(NewOrderOpenedEvent(order))

	return order, nil
}

// SetCustomer attaches an optional customer reference
func (o *Order) SetCustomer(customerID uuid.UUID) {
	o.CustomerID = &customerID
	o.Touch()
}

// CanAddItems reports whether new lines may still be added
func (o *Order) CanAddItems() bool {
	return o.Status == OrderStatusOpen
}

// AddItem adds a dish line with a price snapshot. Items can only be added
// while the order is open.
func (o *Order) AddItem(dishID uuid.UUID, quantity int, unitPrice decimal.Decimal, note string) (*OrderItem, error) {
	if !o.CanAddItems() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot add items to an order in %s status", o.Status))
	}

	item, err := NewOrderItem(o.ID, dishID, quantity, unitPrice, note)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderItemAddedEvent(o, item))

	return item, nil
}

// TransitionTo moves the order to the target status.
// Requesting the current status is a no-op that succeeds without any change.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("VALIDATION", fmt.Sprintf("Unknown order status %q", target))
	}
	if o.Status == target {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	oldStatus := o.Status
	o.Status = target
	now := time.Now()
	o.UpdatedAt = now
	o.IncrementVersion()

	if target.IsTerminal() {
		o.ClosedAt = &now
	}
	if target == OrderStatusBilled {
		o.Total = o.ComputeTotal()
	}

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus))

	return nil
}

// ComputeTotal sums the non-cancelled item lines at their snapshotted prices
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		if o.Items[i].CountsTowardTotal() {
			total = total.Add(o.Items[i].LineTotal())
		}
	}
	return total
}

// FindItem returns the owned item with the given ID, or nil
func (o *Order) FindItem(itemID uuid.UUID) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}
