package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDishRepository implements DishRepository using GORM
type GormDishRepository struct {
	db *gorm.DB
}

// NewGormDishRepository creates a new GormDishRepository
func NewGormDishRepository(db *gorm.DB) *GormDishRepository {
	return &GormDishRepository{db: db}
}

// FindByID finds a dish by its ID
func (r *GormDishRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Dish, error) {
	var dish catalog.Dish
	if err := r.db.WithContext(ctx).First(&dish, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &dish, nil
}

// FindAll finds all dishes matching the filter
func (r *GormDishRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Dish, error) {
	var dishes []catalog.Dish
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Dish{}),
		filter,
	)

	if err := query.Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// FindActive finds all active dishes
func (r *GormDishRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Dish, error) {
	var dishes []catalog.Dish
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Dish{}).
			Where("active = ?", true),
		filter,
	)

	if err := query.Find(&dishes).Error; err != nil {
		return nil, err
	}
	return dishes, nil
}

// Save creates or updates a dish
func (r *GormDishRepository) Save(ctx context.Context, dish *catalog.Dish) error {
	return translateDBError(r.db.WithContext(ctx).Save(dish).Error)
}

// Delete deletes a dish
func (r *GormDishRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Dish{}, "id = ?", id)
	if result.Error != nil {
		return translateDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts dishes matching the filter
func (r *GormDishRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&catalog.Dish{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormDishRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

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
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDishRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}

// Ensure GormDishRepository implements DishRepository
var _ catalog.DishRepository = (*GormDishRepository)(nil)
