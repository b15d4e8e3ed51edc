package dining

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of dining.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*dining.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dining.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*dining.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dining.Order), args.Error(1)
}

func (m *MockOrderRepository) FindOpenByTable(ctx context.Context, tableID uuid.UUID) (*dining.Order, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dining.Order), args.Error(1)
}

func (m *MockOrderRepository) FindActive(ctx context.Context) ([]dining.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dining.Order), args.Error(1)
}

func (m *MockOrderRepository) FindHistory(ctx context.Context, filter dining.OrderHistoryFilter) ([]dining.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dining.Order), args.Error(1)
}

func (m *MockOrderRepository) CountActiveByStatus(ctx context.Context) (map[dining.OrderStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[dining.OrderStatus]int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *dining.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockOrderItemRepository is a mock implementation of dining.OrderItemRepository
type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*dining.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dining.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]dining.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dining.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) FindKitchenQueue(ctx context.Context) ([]dining.OrderItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dining.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) Save(ctx context.Context, item *dining.OrderItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockTableRepository is a mock implementation of dining.TableRepository
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) FindByID(ctx context.Context, id uuid.UUID) (*dining.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dining.Table), args.Error(1)
}

func (m *MockTableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]dining.Table, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dining.Table), args.Error(1)
}

func (m *MockTableRepository) Save(ctx context.Context, table *dining.Table) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockTableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to dining.TableStatus) (int64, error) {
	args := m.Called(ctx, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockRecipeLineRepository is a mock implementation of catalog.RecipeLineRepository
type MockRecipeLineRepository struct {
	mock.Mock
}

func (m *MockRecipeLineRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.RecipeLine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.RecipeLine), args.Error(1)
}

func (m *MockRecipeLineRepository) FindByDish(ctx context.Context, dishID uuid.UUID) ([]catalog.RecipeLine, error) {
	args := m.Called(ctx, dishID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.RecipeLine), args.Error(1)
}

func (m *MockRecipeLineRepository) FindByIngredient(ctx context.Context, ingredientID uuid.UUID) ([]catalog.RecipeLine, error) {
	args := m.Called(ctx, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.RecipeLine), args.Error(1)
}

func (m *MockRecipeLineRepository) Save(ctx context.Context, line *catalog.RecipeLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockRecipeLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeLineRepository) DeleteByDish(ctx context.Context, dishID uuid.UUID) error {
	args := m.Called(ctx, dishID)
	return args.Error(0)
}

// MockDishRepository is a mock implementation of catalog.DishRepository
type MockDishRepository struct {
	mock.Mock
}

func (m *MockDishRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Dish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Dish), args.Error(1)
}

func (m *MockDishRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Dish, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Dish), args.Error(1)
}

func (m *MockDishRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Dish, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Dish), args.Error(1)
}

func (m *MockDishRepository) Save(ctx context.Context, dish *catalog.Dish) error {
	args := m.Called(ctx, dish)
	return args.Error(0)
}

func (m *MockDishRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDishRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
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
