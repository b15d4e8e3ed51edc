package dining

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/shopspring/decimal"
)

// OpenOrderRequest opens a new order on a table
type OpenOrderRequest struct {
	TableID    uuid.UUID
	WaiterID   uuid.UUID
	CustomerID *uuid.UUID
	PartySize  int
}

// AddItemRequest adds a dish line to an open order
type AddItemRequest struct {
	OrderID  uuid.UUID
	DishID   uuid.UUID
	Quantity int
	Note     string
}

// OrderDTO is the read model for an order
type OrderDTO struct {
	ID         uuid.UUID          `json:"id"`
	TableID    uuid.UUID          `json:"table_id"`
	WaiterID   uuid.UUID          `json:"waiter_id"`
	CustomerID *uuid.UUID         `json:"customer_id,omitempty"`
	PartySize  int                `json:"party_size"`
	Status     dining.OrderStatus `json:"status"`
	Total      decimal.Decimal    `json:"total"`
	OpenedAt   time.Time          `json:"opened_at"`
	ClosedAt   *time.Time         `json:"closed_at,omitempty"`
	Items      []OrderItemDTO     `json:"items,omitempty"`
}

// OrderItemDTO is the read model for one order line
type OrderItemDTO struct {
	ID          uuid.UUID              `json:"id"`
	OrderID     uuid.UUID              `json:"order_id"`
	DishID      uuid.UUID              `json:"dish_id"`
	DishName    string                 `json:"dish_name,omitempty"`
	Quantity    int                    `json:"quantity"`
	UnitPrice   decimal.Decimal        `json:"unit_price"`
	LineTotal   decimal.Decimal        `json:"line_total"`
	Status      dining.OrderItemStatus `json:"status"`
	Note        string                 `json:"note,omitempty"`
	RequestedAt time.Time              `json:"requested_at"`
}

// KitchenQueueEntry is one row of the kitchen work queue
type KitchenQueueEntry struct {
	ItemID      uuid.UUID              `json:"item_id"`
	OrderID     uuid.UUID              `json:"order_id"`
	TableID     uuid.UUID              `json:"table_id"`
	DishID      uuid.UUID              `json:"dish_id"`
	DishName    string                 `json:"dish_name,omitempty"`
	Quantity    int                    `json:"quantity"`
	Status      dining.OrderItemStatus `json:"status"`
	Note        string                 `json:"note,omitempty"`
	RequestedAt time.Time              `json:"requested_at"`
}

// ItemFailure describes the item that stopped a kitchen batch
type ItemFailure struct {
	ItemID uuid.UUID `json:"item_id"`
	Reason string    `json:"reason"`
}

// SendToKitchenResult reports the partial progress of a non-atomic batch.
// Each item transitions in its own transaction; the batch stops at the first
// failure without undoing earlier successes.
type SendToKitchenResult struct {
	Committed    []uuid.UUID  `json:"committed"`
	Failed       *ItemFailure `json:"failed,omitempty"`
	NotAttempted []uuid.UUID  `json:"not_attempted,omitempty"`
}

// OrderHistoryRequest narrows an order history query
type OrderHistoryRequest struct {
	TableID  *uuid.UUID
	WaiterID *uuid.UUID
	Status   *dining.OrderStatus
	From     *time.Time
	To       *time.Time
	Limit    int
}

// RegisterTableRequest adds a new table to the floor plan
type RegisterTableRequest struct {
	Capacity int
	Location string
	LayoutX  int
	LayoutY  int
}

// TableDTO is the read model for a dining table
type TableDTO struct {
	ID        uuid.UUID          `json:"id"`
	Capacity  int                `json:"capacity"`
	Status    dining.TableStatus `json:"status"`
	Location  string             `json:"location,omitempty"`
	LayoutX   int                `json:"layout_x"`
	LayoutY   int                `json:"layout_y"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ActiveOrdersSummary groups the non-terminal orders by status
type ActiveOrdersSummary struct {
	Counts map[dining.OrderStatus]int64 `json:"counts"`
	Orders []OrderDTO                   `json:"orders"`
}

func toTableDTO(table *dining.Table) TableDTO {
	return TableDTO{
		ID:        table.ID,
		Capacity:  table.Capacity,
		Status:    table.Status,
		Location:  table.Location,
		LayoutX:   table.LayoutX,
		LayoutY:   table.LayoutY,
		CreatedAt: table.CreatedAt,
		UpdatedAt: table.UpdatedAt,
	}
}

func toOrderDTO(order *dining.Order, withItems bool) OrderDTO {
	dto := OrderDTO{
		ID:         order.ID,
		TableID:    order.TableID,
		WaiterID:   order.WaiterID,
		CustomerID: order.CustomerID,
		PartySize:  order.PartySize,
		Status:     order.Status,
		Total:      order.Total,
		OpenedAt:   order.OpenedAt,
		ClosedAt:   order.ClosedAt,
	}
	if withItems {
		dto.Items = make([]OrderItemDTO, 0, len(order.Items))
		for i := range order.Items {
			dto.Items = append(dto.Items, toOrderItemDTO(&order.Items[i], ""))
		}
	}
	return dto
}

func toOrderItemDTO(item *dining.OrderItem, dishName string) OrderItemDTO {
	return OrderItemDTO{
		ID:          item.ID,
		OrderID:     item.OrderID,
		DishID:      item.DishID,
		DishName:    dishName,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPriceSnapshot,
		LineTotal:   item.LineTotal(),
		Status:      item.Status,
		Note:        item.Note,
		RequestedAt: item.RequestedAt,
	}
}
