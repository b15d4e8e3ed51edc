package dining

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// OrderHistoryFilter narrows an order history query
type OrderHistoryFilter struct {
	TableID  *uuid.UUID
	WaiterID *uuid.UUID
	Status   *OrderStatus
	From     *time.Time
	To       *time.Time
	Limit    int
}

// OrderRepository defines the interface for order persistence.
// Single-row Find methods return shared.ErrNotFound when no row matches;
// they never return (nil, nil).
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDWithItems finds an order with its item lines loaded
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindOpenByTable finds the non-terminal order currently on a table, if any
	FindOpenByTable(ctx context.Context, tableID uuid.UUID) (*Order, error)

	// FindActive finds every order not in a terminal status, oldest first
	FindActive(ctx context.Context) ([]Order, error)

	// FindHistory finds orders matching the history filter, newest first
	FindHistory(ctx context.Context, filter OrderHistoryFilter) ([]Order, error)

	// CountActiveByStatus counts non-terminal orders grouped by status
	CountActiveByStatus(ctx context.Context) (map[OrderStatus]int64, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error
}

// OrderItemRepository defines the interface for order item persistence
type OrderItemRepository interface {
	// FindByID finds an order item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*OrderItem, error)

	// FindByOrder finds every item of an order in request sequence
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)

	// FindKitchenQueue finds pending and preparing items across all open
	// orders, oldest request first
	FindKitchenQueue(ctx context.Context) ([]OrderItem, error)

	// Save creates or updates an order item
	Save(ctx context.Context, item *OrderItem) error
}

// TableRepository defines the interface for dining table persistence
type TableRepository interface {
	// FindByID finds a table by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Table, error)

	// FindAll finds all tables matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Table, error)

	// Save creates or updates a table
	Save(ctx context.Context, table *Table) error

	// UpdateStatus updates a table's status and returns the number of rows
	// affected. Zero rows is reported to the caller, not treated as an error;
	// occupancy updates tolerate a table already being in the target state.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to TableStatus) (int64, error)
}
