package persistence

import (
	"context"

	appdining "github.com/resto/backend/internal/application/dining"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormOrderTransactionScope implements the dining TransactionScope using GORM
// transactions. An order lifecycle step that deducts stock commits its item
// state, ingredient quantities and ledger entries atomically.
type GormOrderTransactionScope struct {
	db *gorm.DB
}

// NewGormOrderTransactionScope creates a new GormOrderTransactionScope.
func NewGormOrderTransactionScope(db *gorm.DB) *GormOrderTransactionScope {
	return &GormOrderTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormOrderTransactionScope) Execute(ctx context.Context, fn func(repos appdining.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormOrderRepositories{tx: tx}
		return fn(repos)
	})
}

// gormOrderRepositories provides access to the dining and stock repositories
// within a transaction.
type gormOrderRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormOrderRepositories) OrderRepo() dining.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// ItemRepo returns the order item repository scoped to the current transaction.
func (r *gormOrderRepositories) ItemRepo() dining.OrderItemRepository {
	return NewGormOrderItemRepository(r.tx)
}

// TableRepo returns the table repository scoped to the current transaction.
func (r *gormOrderRepositories) TableRepo() dining.TableRepository {
	return NewGormTableRepository(r.tx)
}

// RecipeRepo returns the recipe line repository scoped to the current transaction.
func (r *gormOrderRepositories) RecipeRepo() catalog.RecipeLineRepository {
	return NewGormRecipeLineRepository(r.tx)
}

// IngredientRepo returns the ingredient repository scoped to the current transaction.
func (r *gormOrderRepositories) IngredientRepo() inventory.IngredientRepository {
	return NewGormIngredientRepository(r.tx)
}

// MovementRepo returns the stock ledger repository scoped to the current transaction.
func (r *gormOrderRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Ensure GormOrderTransactionScope implements TransactionScope
var _ appdining.TransactionScope = (*GormOrderTransactionScope)(nil)

// Ensure gormOrderRepositories implements TransactionalRepositories
var _ appdining.TransactionalRepositories = (*gormOrderRepositories)(nil)
