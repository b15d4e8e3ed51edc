package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// MenuService manages products, dishes and the recipes linking them, and
// answers the non-mutating "can we prepare N of this dish" question against
// current stock.
type MenuService struct {
	productRepo    catalog.ProductRepository
	dishRepo       catalog.DishRepository
	recipeRepo     catalog.RecipeLineRepository
	ingredientRepo inventory.IngredientRepository
	checker        *inventory.AvailabilityChecker
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewMenuService creates a new MenuService
func NewMenuService(
	productRepo catalog.ProductRepository,
	dishRepo catalog.DishRepository,
	recipeRepo catalog.RecipeLineRepository,
	ingredientRepo inventory.IngredientRepository,
	logger *zap.Logger,
) *MenuService {
	return &MenuService{
		productRepo:    productRepo,
		dishRepo:       dishRepo,
		recipeRepo:     recipeRepo,
		ingredientRepo: ingredientRepo,
		checker:        inventory.NewAvailabilityChecker(),
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *MenuService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateProduct registers a new product. Product names are unique.
func (s *MenuService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	exists, err := s.productRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	product, err := catalog.NewProduct(req.Name, req.Unit, req.UnitCost)
	if err != nil {
		return nil, err
	}
	if req.Perishable {
		product.MarkPerishable(true)
	}
	if !req.MinStock.IsZero() {
		if err := product.SetMinStock(req.MinStock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	dto := toProductDTO(product)
	return &dto, nil
}

// UpdateProduct updates a product's details and alert threshold
func (s *MenuService) UpdateProduct(ctx context.Context, req UpdateProductRequest) (*ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}

	if err := product.Update(req.Name, req.Unit, req.UnitCost); err != nil {
		return nil, err
	}
	if err := product.SetMinStock(req.MinStock); err != nil {
		return nil, err
	}
	product.MarkPerishable(req.Perishable)

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product.GetDomainEvents())
	product.ClearDomainEvents()

	dto := toProductDTO(product)
	return &dto, nil
}

// GetProduct returns one product
func (s *MenuService) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}

	dto := toProductDTO(product)
	return &dto, nil
}

// ListProducts returns products matching the filter
func (s *MenuService) ListProducts(ctx context.Context, filter shared.Filter) ([]ProductDTO, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, toProductDTO(&products[i]))
	}
	return dtos, nil
}

// CreateDish adds a new dish to the menu, active by default
func (s *MenuService) CreateDish(ctx context.Context, req CreateDishRequest) (*DishDTO, error) {
	dish, err := catalog.NewDish(req.Name, req.Description, req.Price)
	if err != nil {
		return nil, err
	}

	if err := s.dishRepo.Save(ctx, dish); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, dish.GetDomainEvents())
	dish.ClearDomainEvents()

	dto := toDishDTO(dish)
	return &dto, nil
}

// UpdateDish updates a dish's name and description
func (s *MenuService) UpdateDish(ctx context.Context, req UpdateDishRequest) (*DishDTO, error) {
	dish, err := s.dishRepo.FindByID(ctx, req.DishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, shared.ErrNotFound
	}

	if err := dish.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.dishRepo.Save(ctx, dish); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, dish.GetDomainEvents())
	dish.ClearDomainEvents()

	dto := toDishDTO(dish)
	return &dto, nil
}

// ChangeDishPrice updates the menu price of a dish. Items already on open
// orders keep the price they were added at.
func (s *MenuService) ChangeDishPrice(ctx context.Context, dishID uuid.UUID, price decimal.Decimal) (*DishDTO, error) {
	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, shared.ErrNotFound
	}

	if err := dish.ChangePrice(price); err != nil {
		return nil, err
	}
	if err := s.dishRepo.Save(ctx, dish); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, dish.GetDomainEvents())
	dish.ClearDomainEvents()

	dto := toDishDTO(dish)
	return &dto, nil
}

// SetDishActive puts a dish on or off the orderable menu
func (s *MenuService) SetDishActive(ctx context.Context, dishID uuid.UUID, active bool) (*DishDTO, error) {
	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, shared.ErrNotFound
	}

	if active {
		err = dish.Activate()
	} else {
		err = dish.Deactivate()
	}
	if err != nil {
		return nil, err
	}

	if err := s.dishRepo.Save(ctx, dish); err != nil {
		return nil, err
	}

	dto := toDishDTO(dish)
	return &dto, nil
}

// GetDish returns one dish
func (s *MenuService) GetDish(ctx context.Context, dishID uuid.UUID) (*DishDTO, error) {
	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, shared.ErrNotFound
	}

	dto := toDishDTO(dish)
	return &dto, nil
}

// ListDishes returns dishes matching the filter, optionally only the active menu
func (s *MenuService) ListDishes(ctx context.Context, filter shared.Filter, activeOnly bool) ([]DishDTO, error) {
	var dishes []catalog.Dish
	var err error
	if activeOnly {
		dishes, err = s.dishRepo.FindActive(ctx, filter)
	} else {
		dishes, err = s.dishRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]DishDTO, 0, len(dishes))
	for i := range dishes {
		dtos = append(dtos, toDishDTO(&dishes[i]))
	}
	return dtos, nil
}

// SetRecipeLine creates or updates the line linking a dish to an ingredient.
// The (dish, ingredient) pair is unique, so a second call for the same pair
// updates the existing line.
func (s *MenuService) SetRecipeLine(ctx context.Context, req SetRecipeLineRequest) (*RecipeLineDTO, error) {
	dish, err := s.dishRepo.FindByID(ctx, req.DishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, shared.ErrNotFound
	}

	ingredient, err := s.ingredientRepo.FindByID(ctx, req.IngredientID)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, shared.NewDomainError("NOT_FOUND",
			fmt.Sprintf("Ingredient %s is not enrolled in stock", req.IngredientID))
	}

	lines, err := s.recipeRepo.FindByDish(ctx, req.DishID)
	if err != nil {
		return nil, err
	}

	var line *catalog.RecipeLine
	for i := range lines {
		if lines[i].IngredientID == req.IngredientID {
			line = &lines[i]
			break
		}
	}

	if line != nil {
		if err := line.UpdateQuantity(req.QuantityPerUnit); err != nil {
			return nil, err
		}
		line.UpdateNote(req.Note)
		line.Unit = req.Unit
	} else {
		line, err = catalog.NewRecipeLine(req.DishID, req.IngredientID, req.QuantityPerUnit, req.Unit, req.Note)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recipeRepo.Save(ctx, line); err != nil {
		return nil, err
	}

	dto := toRecipeLineDTO(line, s.ingredientName(ctx, ingredient))
	return &dto, nil
}

// RemoveRecipeLine removes one ingredient from a dish's recipe
func (s *MenuService) RemoveRecipeLine(ctx context.Context, lineID uuid.UUID) error {
	line, err := s.recipeRepo.FindByID(ctx, lineID)
	if err != nil {
		return err
	}
	if line == nil {
		return shared.ErrNotFound
	}
	return s.recipeRepo.Delete(ctx, lineID)
}

// ResolveRecipe returns the full recipe of a dish with ingredient names
func (s *MenuService) ResolveRecipe(ctx context.Context, dishID uuid.UUID) (*RecipeDTO, error) {
	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, shared.ErrNotFound
	}

	lines, err := s.recipeRepo.FindByDish(ctx, dishID)
	if err != nil {
		return nil, err
	}

	recipe := &RecipeDTO{
		DishID:   dish.ID,
		DishName: dish.Name,
		Lines:    make([]RecipeLineDTO, 0, len(lines)),
	}
	for i := range lines {
		name := ""
		if ingredient, err := s.ingredientRepo.FindByID(ctx, lines[i].IngredientID); err == nil && ingredient != nil {
			name = s.ingredientName(ctx, ingredient)
		}
		recipe.Lines = append(recipe.Lines, toRecipeLineDTO(&lines[i], name))
	}
	return recipe, nil
}

// CheckAvailability answers whether quantity units of a dish can be prepared
// from current stock. It never mutates stock and reports every shortfall, not
// just the first. Recipe lines whose unit differs from the stock unit are
// compared numerically and logged as warnings.
func (s *MenuService) CheckAvailability(ctx context.Context, dishID uuid.UUID, quantity int) (*inventory.AvailabilityResult, error) {
	dish, err := s.dishRepo.FindByID(ctx, dishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, shared.ErrNotFound
	}

	lines, err := s.recipeRepo.FindByDish(ctx, dishID)
	if err != nil {
		return nil, err
	}

	stocks, err := s.stockViews(ctx, lines)
	if err != nil {
		return nil, err
	}

	result, err := s.checker.Check(lines, stocks, quantity)
	if err != nil {
		return nil, err
	}

	for _, warning := range result.UnitWarnings {
		s.logger.Warn("recipe unit differs from stock unit",
			zap.String("dish_id", dishID.String()),
			zap.String("ingredient_id", warning.IngredientID.String()),
			zap.String("recipe_unit", warning.RecipeUnit),
			zap.String("stock_unit", warning.StockUnit))
	}

	return result, nil
}

// stockViews loads the ingredients a recipe references together with their
// product names and stock units
func (s *MenuService) stockViews(ctx context.Context, lines []catalog.RecipeLine) (map[uuid.UUID]inventory.StockView, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for i := range lines {
		ids = append(ids, lines[i].IngredientID)
	}
	if len(ids) == 0 {
		return map[uuid.UUID]inventory.StockView{}, nil
	}

	ingredients, err := s.ingredientRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make(map[uuid.UUID]inventory.StockView, len(ingredients))
	for i := range ingredients {
		view := inventory.StockView{Ingredient: &ingredients[i]}
		if product, err := s.productRepo.FindByID(ctx, ingredients[i].ProductID); err == nil && product != nil {
			view.ProductName = product.Name
			view.StockUnit = product.Unit
		}
		views[ingredients[i].ID] = view
	}
	return views, nil
}

func (s *MenuService) ingredientName(ctx context.Context, ingredient *inventory.Ingredient) string {
	product, err := s.productRepo.FindByID(ctx, ingredient.ProductID)
	if err != nil || product == nil {
		return ""
	}
	return product.Name
}

func (s *MenuService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
