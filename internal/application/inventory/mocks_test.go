package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockIngredientRepository is a mock implementation of inventory.IngredientRepository
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.Ingredient, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Ingredient, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Ingredient, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) Save(ctx context.Context, ingredient *inventory.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) ExistsByProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByIngredient(ctx context.Context, ingredientID uuid.UUID, limit int) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, ingredientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByFilter(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByOriginRef(ctx context.Context, originRef uuid.UUID) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, originRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) CountByIngredient(ctx context.Context, ingredientID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ingredientID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*catalog.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// lockedStockStore holds exactly one ingredient and its ledger in memory and
// makes the locking read behave like SELECT ... FOR UPDATE: FindByIDForUpdate
// blocks until the previous caller's transaction has finished, and writes stay
// invisible to other callers until that transaction commits.
type lockedStockStore struct {
	mu         sync.Mutex
	ingredient inventory.Ingredient
	movements  []inventory.StockMovement

	staged      *inventory.Ingredient
	stagedMoves []inventory.StockMovement
}

func newLockedStockStore(ingredient *inventory.Ingredient) *lockedStockStore {
	return &lockedStockStore{ingredient: *ingredient}
}

// finish ends the transaction that currently holds the row lock. A commit
// publishes the staged writes; a rollback discards them.
func (s *lockedStockStore) finish(commit bool) {
	if commit {
		if s.staged != nil {
			s.ingredient = *s.staged
		}
		s.movements = append(s.movements, s.stagedMoves...)
	}
	s.staged = nil
	s.stagedMoves = nil
	s.mu.Unlock()
}

func (s *lockedStockStore) snapshot() inventory.Ingredient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ingredient
}

func (s *lockedStockStore) ledger() []inventory.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]inventory.StockMovement(nil), s.movements...)
}

type lockedIngredientRepo struct {
	store *lockedStockStore
}

func (r *lockedIngredientRepo) FindByID(_ context.Context, _ uuid.UUID) (*inventory.Ingredient, error) {
	ingredient := r.store.snapshot()
	return &ingredient, nil
}

func (r *lockedIngredientRepo) FindByIDForUpdate(_ context.Context, _ uuid.UUID) (*inventory.Ingredient, error) {
	r.store.mu.Lock()
	ingredient := r.store.ingredient
	return &ingredient, nil
}

func (r *lockedIngredientRepo) FindByProduct(_ context.Context, _ uuid.UUID) (*inventory.Ingredient, error) {
	return nil, shared.ErrNotFound
}

func (r *lockedIngredientRepo) FindByIDs(_ context.Context, _ []uuid.UUID) ([]inventory.Ingredient, error) {
	return []inventory.Ingredient{r.store.snapshot()}, nil
}

func (r *lockedIngredientRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.Ingredient, error) {
	return []inventory.Ingredient{r.store.snapshot()}, nil
}

// Save stages the write; it only becomes visible when the transaction commits.
// Callers hold the row lock at this point.
func (r *lockedIngredientRepo) Save(_ context.Context, ingredient *inventory.Ingredient) error {
	staged := *ingredient
	r.store.staged = &staged
	return nil
}

func (r *lockedIngredientRepo) ExistsByProduct(_ context.Context, _ uuid.UUID) (bool, error) {
	return true, nil
}

type lockedMovementRepo struct {
	store *lockedStockStore
}

func (r *lockedMovementRepo) Append(_ context.Context, movement *inventory.StockMovement) error {
	r.store.stagedMoves = append(r.store.stagedMoves, *movement)
	return nil
}

func (r *lockedMovementRepo) FindByID(_ context.Context, _ uuid.UUID) (*inventory.StockMovement, error) {
	return nil, shared.ErrNotFound
}

func (r *lockedMovementRepo) FindByIngredient(_ context.Context, _ uuid.UUID, _ int) ([]inventory.StockMovement, error) {
	return r.store.ledger(), nil
}

func (r *lockedMovementRepo) FindByFilter(_ context.Context, _ inventory.MovementFilter) ([]inventory.StockMovement, error) {
	return r.store.ledger(), nil
}

func (r *lockedMovementRepo) FindByOriginRef(_ context.Context, _ uuid.UUID) ([]inventory.StockMovement, error) {
	return r.store.ledger(), nil
}

func (r *lockedMovementRepo) CountByIngredient(_ context.Context, _ uuid.UUID) (int64, error) {
	return int64(len(r.store.ledger())), nil
}

// rowLockScope runs the function as one transaction against a lockedStockStore.
// The row lock taken by FindByIDForUpdate is released only when Execute
// returns, mirroring how a real transaction boundary releases it.
type rowLockScope struct {
	store *lockedStockStore
}

func (s *rowLockScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	err := fn(s)
	s.store.finish(err == nil)
	return err
}

func (s *rowLockScope) IngredientRepo() inventory.IngredientRepository {
	return &lockedIngredientRepo{store: s.store}
}

func (s *rowLockScope) MovementRepo() inventory.StockMovementRepository {
	return &lockedMovementRepo{store: s.store}
}

var _ TransactionScope = (*rowLockScope)(nil)
var _ TransactionalRepositories = (*rowLockScope)(nil)
