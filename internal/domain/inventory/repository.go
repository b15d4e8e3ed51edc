package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// IngredientRepository defines the interface for ingredient persistence.
// Single-row Find methods return shared.ErrNotFound when no row matches;
// they never return (nil, nil).
type IngredientRepository interface {
	// FindByID finds an ingredient by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Ingredient, error)

	// FindByIDForUpdate finds an ingredient by ID taking an exclusive row lock
	// (SELECT ... FOR UPDATE). Must be called inside a transaction; the lock is
	// held until that transaction commits or rolls back, serializing every
	// concurrent mutation of the same ingredient.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Ingredient, error)

	// FindByProduct finds the ingredient backed by a product
	FindByProduct(ctx context.Context, productID uuid.UUID) (*Ingredient, error)

	// FindByIDs finds multiple ingredients by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Ingredient, error)

	// FindAll finds all ingredients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Ingredient, error)

	// Save creates or updates an ingredient
	Save(ctx context.Context, ingredient *Ingredient) error

	// ExistsByProduct checks if a product is already enrolled as an ingredient
	ExistsByProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}

// MovementFilter narrows a stock movement history query
type MovementFilter struct {
	IngredientID *uuid.UUID
	MovementType *MovementType
	From         *time.Time
	To           *time.Time
	Limit        int
}

// StockMovementRepository defines the interface for the append-only stock ledger.
// Movements are never updated or deleted.
type StockMovementRepository interface {
	// Append writes one immutable ledger entry
	Append(ctx context.Context, movement *StockMovement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)

	// FindByIngredient returns an ingredient's history, newest first
	FindByIngredient(ctx context.Context, ingredientID uuid.UUID, limit int) ([]StockMovement, error)

	// FindByFilter returns movements matching the filter, newest first
	FindByFilter(ctx context.Context, filter MovementFilter) ([]StockMovement, error)

	// FindByOriginRef returns every movement triggered by a source row
	FindByOriginRef(ctx context.Context, originRef uuid.UUID) ([]StockMovement, error)

	// CountByIngredient counts an ingredient's ledger entries
	CountByIngredient(ctx context.Context, ingredientID uuid.UUID) (int64, error)
}
