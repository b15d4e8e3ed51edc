package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*dining.Order, error) {
	var order dining.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDWithItems finds an order with its item lines loaded
func (r *GormOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*dining.Order, error) {
	var order dining.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("requested_at ASC")
		}).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindOpenByTable finds the non-terminal order currently on a table, if any
func (r *GormOrderRepository) FindOpenByTable(ctx context.Context, tableID uuid.UUID) (*dining.Order, error) {
	var order dining.Order
	if err := r.db.WithContext(ctx).
		Where("table_id = ? AND status NOT IN ?", tableID, terminalOrderStatuses()).
		Order("opened_at DESC").
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindActive finds every order not in a terminal status, oldest first
func (r *GormOrderRepository) FindActive(ctx context.Context) ([]dining.Order, error) {
	var orders []dining.Order
	if err := r.db.WithContext(ctx).
		Where("status NOT IN ?", terminalOrderStatuses()).
		Order("opened_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindHistory finds orders matching the history filter, newest first
func (r *GormOrderRepository) FindHistory(ctx context.Context, filter dining.OrderHistoryFilter) ([]dining.Order, error) {
	query := r.db.WithContext(ctx).Model(&dining.Order{})

	if filter.TableID != nil {
		query = query.Where("table_id = ?", *filter.TableID)
	}
	if filter.WaiterID != nil {
		query = query.Where("waiter_id = ?", *filter.WaiterID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("opened_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("opened_at <= ?", *filter.To)
	}

	query = query.Order("opened_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var orders []dining.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CountActiveByStatus counts non-terminal orders grouped by status
func (r *GormOrderRepository) CountActiveByStatus(ctx context.Context) (map[dining.OrderStatus]int64, error) {
	var rows []struct {
		Status dining.OrderStatus
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&dining.Order{}).
		Select("status, COUNT(*) as total").
		Where("status NOT IN ?", terminalOrderStatuses()).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[dining.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *dining.Order) error {
	return translateDBError(r.db.WithContext(ctx).Save(order).Error)
}

func terminalOrderStatuses() []dining.OrderStatus {
	return []dining.OrderStatus{dining.OrderStatusBilled, dining.OrderStatusCancelled}
}

// Ensure GormOrderRepository implements OrderRepository
var _ dining.OrderRepository = (*GormOrderRepository)(nil)
