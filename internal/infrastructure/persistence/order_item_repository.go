package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderItemRepository implements OrderItemRepository using GORM
type GormOrderItemRepository struct {
	db *gorm.DB
}

// NewGormOrderItemRepository creates a new GormOrderItemRepository
func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// FindByID finds an order item by its ID
func (r *GormOrderItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*dining.OrderItem, error) {
	var item dining.OrderItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByOrder finds every item of an order in request sequence
func (r *GormOrderItemRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]dining.OrderItem, error) {
	var items []dining.OrderItem
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("requested_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindKitchenQueue finds pending and preparing items across all open orders,
// oldest request first
func (r *GormOrderItemRepository) FindKitchenQueue(ctx context.Context) ([]dining.OrderItem, error) {
	var items []dining.OrderItem
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []dining.OrderItemStatus{
			dining.OrderItemStatusPending,
			dining.OrderItemStatusPreparing,
		}).
		Order("requested_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an order item
func (r *GormOrderItemRepository) Save(ctx context.Context, item *dining.OrderItem) error {
	return translateDBError(r.db.WithContext(ctx).Save(item).Error)
}

// Ensure GormOrderItemRepository implements OrderItemRepository
var _ dining.OrderItemRepository = (*GormOrderItemRepository)(nil)
