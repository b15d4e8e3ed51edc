package dining

import (
	"context"

	appinv "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories an order
// lifecycle operation touches. A pending-to-preparing transition writes order
// item state, ingredient quantities and ledger entries in the one transaction
// this scope opens.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to order, table, recipe and stock
// repositories sharing one database transaction. It satisfies the stock
// mutation engine's MutationRepos, so recipe deductions run inside the same
// transaction as the status updates that caused them.
type TransactionalRepositories interface {
	appinv.MutationRepos

	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() dining.OrderRepository
	// ItemRepo returns the order item repository scoped to the current transaction
	ItemRepo() dining.OrderItemRepository
	// TableRepo returns the table repository scoped to the current transaction
	TableRepo() dining.TableRepository
	// RecipeRepo returns the recipe line repository scoped to the current transaction
	RecipeRepo() catalog.RecipeLineRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	orderRepo      dining.OrderRepository
	itemRepo       dining.OrderItemRepository
	tableRepo      dining.TableRepository
	recipeRepo     catalog.RecipeLineRepository
	ingredientRepo inventory.IngredientRepository
	movementRepo   inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	orderRepo dining.OrderRepository,
	itemRepo dining.OrderItemRepository,
	tableRepo dining.TableRepository,
	recipeRepo catalog.RecipeLineRepository,
	ingredientRepo inventory.IngredientRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:      orderRepo,
		itemRepo:       itemRepo,
		tableRepo:      tableRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		movementRepo:   movementRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() dining.OrderRepository {
	return s.orderRepo
}

// ItemRepo returns the order item repository.
func (s *NoOpTransactionScope) ItemRepo() dining.OrderItemRepository {
	return s.itemRepo
}

// TableRepo returns the table repository.
func (s *NoOpTransactionScope) TableRepo() dining.TableRepository {
	return s.tableRepo
}

// RecipeRepo returns the recipe line repository.
func (s *NoOpTransactionScope) RecipeRepo() catalog.RecipeLineRepository {
	return s.recipeRepo
}

// IngredientRepo returns the ingredient repository.
func (s *NoOpTransactionScope) IngredientRepo() inventory.IngredientRepository {
	return s.ingredientRepo
}

// MovementRepo returns the stock ledger repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
