package inventory

import (
	"context"

	"github.com/resto/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// MutationRepos is the minimal repository surface the stock mutation engine
// needs. Any transactional repository set exposing an ingredient repository
// and the movement ledger satisfies it, which lets other services run the
// engine inside their own transactions.
type MutationRepos interface {
	// IngredientRepo returns the ingredient repository scoped to the current transaction
	IngredientRepo() inventory.IngredientRepository
	// MovementRepo returns the stock ledger repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
}

// TransactionalRepositories provides access to all inventory repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	MutationRepos
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	ingredientRepo inventory.IngredientRepository
	movementRepo   inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	ingredientRepo inventory.IngredientRepository,
	movementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		ingredientRepo: ingredientRepo,
		movementRepo:   movementRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
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
