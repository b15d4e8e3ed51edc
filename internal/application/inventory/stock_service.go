package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// ApplyChange is the stock mutation engine core: one signed quantity change to
// one ingredient plus its ledger entry, executed against repositories that are
// already inside a transaction. The locking read serializes every concurrent
// mutation of the same ingredient; the caller's transaction boundary decides
// when the lock is released.
//
// It is exported so other services (order fulfillment) can run deductions
// inside their own transaction together with their own writes.
func ApplyChange(ctx context.Context, repos MutationRepos, req StockChangeRequest) (decimal.Decimal, error) {
	if req.IngredientID == uuid.Nil {
		return decimal.Zero, shared.NewDomainError("VALIDATION", "Ingredient ID is required")
	}
	if req.Amount.IsNegative() {
		return decimal.Zero, shared.NewDomainError("VALIDATION", "Amount cannot be negative")
	}
	if req.Amount.IsZero() && req.MovementType != inventory.MovementTypeInitialStock {
		return decimal.Zero, shared.NewDomainError("VALIDATION", "Amount must be positive")
	}
	if !req.MovementType.IsValid() {
		return decimal.Zero, shared.NewDomainError("VALIDATION", "Invalid movement type")
	}

	ingredient, err := repos.IngredientRepo().FindByIDForUpdate(ctx, req.IngredientID)
	if err != nil {
		return decimal.Zero, err
	}
	if ingredient == nil {
		return decimal.Zero, shared.ErrNotFound
	}

	before := ingredient.AvailableQuantity
	delta := req.Amount

	if req.IsDeduction {
		if ingredient.AvailableQuantity.LessThan(req.Amount) {
			return decimal.Zero, inventory.NewInsufficientStockError(
				ingredient.ID, "", req.Amount, ingredient.AvailableQuantity)
		}
		if err := ingredient.Decrease(req.Amount); err != nil {
			return decimal.Zero, err
		}
		delta = req.Amount.Neg()
	} else if req.Amount.IsPositive() {
		if err := ingredient.Increase(req.Amount); err != nil {
			return decimal.Zero, err
		}
	}

	if err := repos.IngredientRepo().Save(ctx, ingredient); err != nil {
		return decimal.Zero, err
	}

	movement, err := inventory.NewStockMovement(
		ingredient.ID,
		req.MovementType,
		delta,
		before,
		ingredient.AvailableQuantity,
		req.Reason,
	)
	if err != nil {
		return decimal.Zero, err
	}
	if req.OriginRef != nil {
		movement.WithOriginRef(*req.OriginRef)
	}
	if req.ActorID != nil {
		movement.WithActor(*req.ActorID)
	}

	if err := repos.MovementRepo().Append(ctx, movement); err != nil {
		return decimal.Zero, err
	}

	return ingredient.AvailableQuantity, nil
}

// StockService handles kitchen stock operations: ingredient enrollment,
// receipts, adjustments, waste, and ledger queries. Every mutation goes
// through the mutation engine inside a transaction scope.
type StockService struct {
	txScope             TransactionScope
	ingredientRepo      inventory.IngredientRepository
	movementRepo        inventory.StockMovementRepository
	productRepo         catalog.ProductRepository
	eventPublisher      shared.EventPublisher
	logger              *zap.Logger
	historyDefaultLimit int
}

// NewStockService creates a new StockService
func NewStockService(
	txScope TransactionScope,
	ingredientRepo inventory.IngredientRepository,
	movementRepo inventory.StockMovementRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		txScope:        txScope,
		ingredientRepo: ingredientRepo,
		movementRepo:   movementRepo,
		productRepo:    productRepo,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetHistoryDefaultLimit sets the page size used by ledger queries that do
// not specify one
func (s *StockService) SetHistoryDefaultLimit(limit int) {
	s.historyDefaultLimit = limit
}

// Apply runs one stock change through the mutation engine in its own
// transaction and returns the resulting quantity.
func (s *StockService) Apply(ctx context.Context, req StockChangeRequest) (decimal.Decimal, error) {
	var newQuantity decimal.Decimal

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var applyErr error
		newQuantity, applyErr = ApplyChange(ctx, repos, req)
		return applyErr
	})
	if err != nil {
		return decimal.Zero, err
	}

	s.notifyIfBelowMinimum(ctx, req.IngredientID, newQuantity)

	return newQuantity, nil
}

// EnrollIngredient marks a product as usable in the kitchen: it creates the
// ingredient row and its opening-balance ledger entry in one transaction.
func (s *StockService) EnrollIngredient(ctx context.Context, req EnrollIngredientRequest) (*IngredientDTO, error) {
	if req.InitialQuantity.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION", "Initial quantity cannot be negative")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, shared.ErrNotFound
	}

	var ingredient *inventory.Ingredient

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		exists, err := repos.IngredientRepo().ExistsByProduct(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if exists {
			return shared.ErrAlreadyExists
		}

		ingredient, err = inventory.NewIngredient(req.ProductID, req.InitialQuantity)
		if err != nil {
			return err
		}
		ingredient.AddDomainEvent(inventory.NewIngredientEnrolledEvent(ingredient))

		if err := repos.IngredientRepo().Save(ctx, ingredient); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(
			ingredient.ID,
			inventory.MovementTypeInitialStock,
			req.InitialQuantity,
			decimal.Zero,
			req.InitialQuantity,
			"Opening balance",
		)
		if err != nil {
			return err
		}
		if req.ActorID != nil {
			movement.WithActor(*req.ActorID)
		}

		return repos.MovementRepo().Append(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ingredient.GetDomainEvents())
	ingredient.ClearDomainEvents()

	s.logger.Info("ingredient enrolled",
		zap.String("ingredient_id", ingredient.ID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("initial_quantity", req.InitialQuantity.String()))

	return &IngredientDTO{
		ID:                ingredient.ID,
		ProductID:         product.ID,
		ProductName:       product.Name,
		Unit:              product.Unit,
		AvailableQuantity: ingredient.AvailableQuantity,
		MinStock:          product.MinStock,
		LastUpdated:       ingredient.LastUpdated,
	}, nil
}

// Receive records a supplier delivery adding stock
func (s *StockService) Receive(ctx context.Context, ingredientID uuid.UUID, quantity decimal.Decimal, reason string, actorID *uuid.UUID) (decimal.Decimal, error) {
	return s.Apply(ctx, StockChangeRequest{
		IngredientID: ingredientID,
		Amount:       quantity,
		IsDeduction:  false,
		MovementType: inventory.MovementTypeReceipt,
		Reason:       reason,
		ActorID:      actorID,
	})
}

// Adjust records a manual correction in either direction
func (s *StockService) Adjust(ctx context.Context, ingredientID uuid.UUID, quantity decimal.Decimal, isDeduction bool, reason string, actorID *uuid.UUID) (decimal.Decimal, error) {
	if reason == "" {
		return decimal.Zero, shared.NewDomainError("VALIDATION", "An adjustment requires a reason")
	}
	return s.Apply(ctx, StockChangeRequest{
		IngredientID: ingredientID,
		Amount:       quantity,
		IsDeduction:  isDeduction,
		MovementType: inventory.MovementTypeManualAdjustment,
		Reason:       reason,
		ActorID:      actorID,
	})
}

// RecordWaste deducts spoiled or discarded stock
func (s *StockService) RecordWaste(ctx context.Context, ingredientID uuid.UUID, quantity decimal.Decimal, reason string, actorID *uuid.UUID) (decimal.Decimal, error) {
	return s.Apply(ctx, StockChangeRequest{
		IngredientID: ingredientID,
		Amount:       quantity,
		IsDeduction:  true,
		MovementType: inventory.MovementTypeWaste,
		Reason:       reason,
		ActorID:      actorID,
	})
}

// GetIngredient returns one ingredient joined with its product
func (s *StockService) GetIngredient(ctx context.Context, ingredientID uuid.UUID) (*IngredientDTO, error) {
	ingredient, err := s.ingredientRepo.FindByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ingredient == nil {
		return nil, shared.ErrNotFound
	}

	return s.toIngredientDTO(ctx, ingredient)
}

// ListIngredients returns all ingredients joined with their products
func (s *StockService) ListIngredients(ctx context.Context, filter shared.Filter) ([]IngredientDTO, error) {
	ingredients, err := s.ingredientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]IngredientDTO, 0, len(ingredients))
	for i := range ingredients {
		dto, err := s.toIngredientDTO(ctx, &ingredients[i])
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}
	return dtos, nil
}

// MovementHistory returns ledger entries matching the request, newest first
func (s *StockService) MovementHistory(ctx context.Context, req MovementHistoryRequest) ([]MovementDTO, error) {
	if req.Limit == 0 {
		req.Limit = s.historyDefaultLimit
	}
	movements, err := s.movementRepo.FindByFilter(ctx, inventory.MovementFilter{
		IngredientID: req.IngredientID,
		MovementType: req.MovementType,
		From:         req.From,
		To:           req.To,
		Limit:        req.Limit,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]MovementDTO, 0, len(movements))
	for i := range movements {
		dtos = append(dtos, toMovementDTO(&movements[i]))
	}
	return dtos, nil
}

// LowStock returns the ingredients at or below their product's minimum level
func (s *StockService) LowStock(ctx context.Context) ([]LowStockItem, error) {
	ingredients, err := s.ingredientRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	items := make([]LowStockItem, 0)
	for i := range ingredients {
		product, err := s.productRepo.FindByID(ctx, ingredients[i].ProductID)
		if errors.Is(err, shared.ErrNotFound) {
			// dangling ingredient; without its product there is no minimum
			continue
		}
		if err != nil {
			return nil, err
		}
		if ingredients[i].IsBelowMinimum(product.MinStock) {
			items = append(items, LowStockItem{
				IngredientID: ingredients[i].ID,
				ProductID:    product.ID,
				ProductName:  product.Name,
				Unit:         product.Unit,
				Available:    ingredients[i].AvailableQuantity,
				Minimum:      product.MinStock,
			})
		}
	}
	return items, nil
}

func (s *StockService) toIngredientDTO(ctx context.Context, ingredient *inventory.Ingredient) (*IngredientDTO, error) {
	product, err := s.productRepo.FindByID(ctx, ingredient.ProductID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	dto := &IngredientDTO{
		ID:                ingredient.ID,
		ProductID:         ingredient.ProductID,
		AvailableQuantity: ingredient.AvailableQuantity,
		LastUpdated:       ingredient.LastUpdated,
	}
	if product != nil {
		dto.ProductName = product.Name
		dto.Unit = product.Unit
		dto.MinStock = product.MinStock
	}
	return dto, nil
}

// notifyIfBelowMinimum emits a low-stock event when a committed mutation left
// the ingredient at or below its product minimum. Errors here only get logged;
// the mutation itself already committed.
func (s *StockService) notifyIfBelowMinimum(ctx context.Context, ingredientID uuid.UUID, newQuantity decimal.Decimal) {
	ingredient, err := s.ingredientRepo.FindByID(ctx, ingredientID)
	if err != nil || ingredient == nil {
		return
	}
	product, err := s.productRepo.FindByID(ctx, ingredient.ProductID)
	if err != nil || product == nil {
		return
	}
	if !newQuantity.LessThanOrEqual(product.MinStock) {
		return
	}

	s.logger.Warn("stock at or below minimum",
		zap.String("ingredient_id", ingredientID.String()),
		zap.String("product", product.Name),
		zap.String("available", newQuantity.String()),
		zap.String("minimum", product.MinStock.String()))

	s.publishEvents(ctx, []shared.DomainEvent{
		inventory.NewStockBelowMinimumEvent(ingredient, product.MinStock),
	})
}

func (s *StockService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
}
