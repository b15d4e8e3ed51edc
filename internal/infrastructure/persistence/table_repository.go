package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTableRepository implements TableRepository using GORM
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GormTableRepository
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// FindByID finds a table by its ID
func (r *GormTableRepository) FindByID(ctx context.Context, id uuid.UUID) (*dining.Table, error) {
	var table dining.Table
	if err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &table, nil
}

// FindAll finds all tables matching the filter
func (r *GormTableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]dining.Table, error) {
	var tables []dining.Table
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&dining.Table{}),
		filter,
	)

	if err := query.Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// Save creates or updates a table
func (r *GormTableRepository) Save(ctx context.Context, table *dining.Table) error {
	return translateDBError(r.db.WithContext(ctx).Save(table).Error)
}

// UpdateStatus updates a table's status and returns the number of rows
// affected. The from-status guard makes the update a no-op when the table is
// not in the expected state; callers decide what zero rows means.
func (r *GormTableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to dining.TableStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&dining.Table{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// applyFilter applies filter options to the query
func (r *GormTableRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "location":
			query = query.Where("location = ?", value)
		case "min_capacity":
			query = query.Where("capacity >= ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at ASC")
	}

	return query
}

// Ensure GormTableRepository implements TableRepository
var _ dining.TableRepository = (*GormTableRepository)(nil)
