package dining

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeOrder = "Order"
	AggregateTypeTable = "Table"
)

// Event type constants
const (
	EventTypeOrderOpened            = "OrderOpened"
	EventTypeOrderItemAdded         = "OrderItemAdded"
	EventTypeOrderStatusChanged     = "OrderStatusChanged"
	EventTypeOrderItemStatusChanged = "OrderItemStatusChanged"
)

// OrderOpenedEvent is published when a new order opens on a table
type OrderOpenedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID `json:"order_id"`
	TableID   uuid.UUID `json:"table_id"`
	WaiterID  uuid.UUID `json:"waiter_id"`
	PartySize int       `json:"party_size"`
}

// NewOrderOpenedEvent creates a new OrderOpenedEvent
func NewOrderOpenedEvent(order *Order) *OrderOpenedEvent {
	return &OrderOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderOpened, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		TableID:         order.TableID,
		WaiterID:        order.WaiterID,
		PartySize:       order.PartySize,
	}
}

// OrderItemAddedEvent is published when a dish line is added to an order
type OrderItemAddedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID       `json:"order_id"`
	ItemID    uuid.UUID       `json:"item_id"`
	DishID    uuid.UUID       `json:"dish_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// NewOrderItemAddedEvent creates a new OrderItemAddedEvent
func NewOrderItemAddedEvent(order *Order, item *OrderItem) *OrderItemAddedEvent {
	return &OrderItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderItemAdded, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		ItemID:          item.ID,
		DishID:          item.DishID,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPriceSnapshot,
	}
}

// OrderStatusChangedEvent is published when an order's status changes
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID   `json:"order_id"`
	TableID   uuid.UUID   `json:"table_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, oldStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		TableID:         order.TableID,
		OldStatus:       oldStatus,
		NewStatus:       order.Status,
	}
}

// OrderItemStatusChangedEvent is published when an item's kitchen status changes
type OrderItemStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID       `json:"order_id"`
	ItemID    uuid.UUID       `json:"item_id"`
	DishID    uuid.UUID       `json:"dish_id"`
	OldStatus OrderItemStatus `json:"old_status"`
	NewStatus OrderItemStatus `json:"new_status"`
}

// NewOrderItemStatusChangedEvent creates a new OrderItemStatusChangedEvent
func NewOrderItemStatusChangedEvent(item *OrderItem, oldStatus OrderItemStatus) *OrderItemStatusChangedEvent {
	return &OrderItemStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderItemStatusChanged, AggregateTypeOrder, item.OrderID),
		OrderID:         item.OrderID,
		ItemID:          item.ID,
		DishID:          item.DishID,
		OldStatus:       oldStatus,
		NewStatus:       item.Status,
	}
}
