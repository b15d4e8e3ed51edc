package persistence

import (
	"context"

	appinv "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormStockTransactionScope implements the stock TransactionScope using GORM
// transactions. Every stock mutation runs its read-lock, quantity update and
// ledger append inside the transaction this scope opens.
type GormStockTransactionScope struct {
	db *gorm.DB
}

// NewGormStockTransactionScope creates a new GormStockTransactionScope.
func NewGormStockTransactionScope(db *gorm.DB) *GormStockTransactionScope {
	return &GormStockTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormStockTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormStockRepositories{tx: tx}
		return fn(repos)
	})
}

// gormStockRepositories provides access to the stock repositories within a transaction.
type gormStockRepositories struct {
	tx *gorm.DB
}

// IngredientRepo returns the ingredient repository scoped to the current transaction.
func (r *gormStockRepositories) IngredientRepo() inventory.IngredientRepository {
	return NewGormIngredientRepository(r.tx)
}

// MovementRepo returns the stock ledger repository scoped to the current transaction.
func (r *gormStockRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// Ensure GormStockTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormStockTransactionScope)(nil)

// Ensure gormStockRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormStockRepositories)(nil)
