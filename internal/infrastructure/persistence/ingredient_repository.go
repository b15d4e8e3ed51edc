package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormIngredientRepository implements IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// FindByID finds an ingredient by its ID
func (r *GormIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Ingredient, error) {
	var ingredient inventory.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDForUpdate finds an ingredient by ID taking an exclusive row lock.
// The lock is held until the surrounding transaction ends; callers must run
// this inside a transaction scope.
func (r *GormIngredientRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Ingredient, error) {
	var ingredient inventory.Ingredient
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindByProduct finds the ingredient backed by a product
func (r *GormIngredientRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.Ingredient, error) {
	var ingredient inventory.Ingredient
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs finds multiple ingredients by their IDs
func (r *GormIngredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Ingredient, error) {
	if len(ids) == 0 {
		return []inventory.Ingredient{}, nil
	}

	var ingredients []inventory.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindAll finds all ingredients matching the filter
func (r *GormIngredientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Ingredient, error) {
	var ingredients []inventory.Ingredient
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Ingredient{}),
		filter,
	)

	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Save creates or updates an ingredient
func (r *GormIngredientRepository) Save(ctx context.Context, ingredient *inventory.Ingredient) error {
	return translateDBError(r.db.WithContext(ctx).Save(ingredient).Error)
}

// ExistsByProduct checks if a product is already enrolled as an ingredient
func (r *GormIngredientRepository) ExistsByProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Ingredient{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormIngredientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("available_quantity > 0")
			}
		case "no_stock":
			if value == true {
				query = query.Where("available_quantity <= 0")
			}
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
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormIngredientRepository implements IngredientRepository
var _ inventory.IngredientRepository = (*GormIngredientRepository)(nil)
