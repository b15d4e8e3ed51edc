package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using GORM.
// The ledger is append-only; this repository exposes no update or delete.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append writes one immutable ledger entry
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return translateDBError(r.db.WithContext(ctx).Create(movement).Error)
}

// FindByID finds a movement by its ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByIngredient returns an ingredient's history, newest first
func (r *GormStockMovementRepository) FindByIngredient(ctx context.Context, ingredientID uuid.UUID, limit int) ([]inventory.StockMovement, error) {
	query := r.db.WithContext(ctx).
		Where("ingredient_id = ?", ingredientID).
		Order("occurred_on DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var movements []inventory.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByFilter returns movements matching the filter, newest first
func (r *GormStockMovementRepository) FindByFilter(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	query := r.db.WithContext(ctx).Model(&inventory.StockMovement{})

	if filter.IngredientID != nil {
		query = query.Where("ingredient_id = ?", *filter.IngredientID)
	}
	if filter.MovementType != nil {
		query = query.Where("movement_type = ?", *filter.MovementType)
	}
	if filter.From != nil {
		query = query.Where("occurred_on >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_on <= ?", *filter.To)
	}

	query = query.Order("occurred_on DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var movements []inventory.StockMovement
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByOriginRef returns every movement triggered by a source row
func (r *GormStockMovementRepository) FindByOriginRef(ctx context.Context, originRef uuid.UUID) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("origin_ref = ?", originRef).
		Order("occurred_on ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// CountByIngredient counts an ingredient's ledger entries
func (r *GormStockMovementRepository) CountByIngredient(ctx context.Context, ingredientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("ingredient_id = ?", ingredientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
