package dining

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appinv "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// OrderService drives the order fulfillment state machine. Every multi-step
// operation (recipe-wide deduction plus item status, order creation plus table
// occupancy, order finalization plus table release) runs inside one
// transaction scope and is all-or-nothing.
type OrderService struct {
	txScope        TransactionScope
	orderRepo      dining.OrderRepository
	itemRepo       dining.OrderItemRepository
	tableRepo      dining.TableRepository
	dishRepo       catalog.DishRepository
	productRepo    catalog.ProductRepository
	ingredientRepo inventory.IngredientRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	orderRepo dining.OrderRepository,
	itemRepo dining.OrderItemRepository,
	tableRepo dining.TableRepository,
	dishRepo catalog.DishRepository,
	productRepo catalog.ProductRepository,
	ingredientRepo inventory.IngredientRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		txScope:        txScope,
		orderRepo:      orderRepo,
		itemRepo:       itemRepo,
		tableRepo:      tableRepo,
		dishRepo:       dishRepo,
		productRepo:    productRepo,
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// OpenOrder opens a new order and occupies its table in one transaction.
// A table occupancy update affecting zero rows is logged as a warning but does
// not abort the order.
func (s *OrderService) OpenOrder(ctx context.Context, req OpenOrderRequest) (*OrderDTO, error) {
	var order *dining.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		table, err := repos.TableRepo().FindByID(ctx, req.TableID)
		if err != nil {
			return err
		}
		if table == nil {
			return shared.ErrNotFound
		}

		order, err = dining.NewOrder(req.TableID, req.WaiterID, req.PartySize)
		if err != nil {
			return err
		}
		if req.CustomerID != nil {
			order.SetCustomer(*req.CustomerID)
		}

		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		rows, err := repos.TableRepo().UpdateStatus(ctx, req.TableID, dining.TableStatusFree, dining.TableStatusOccupied)
		if err != nil {
			return err
		}
		if rows == 0 {
			s.logger.Warn("table was not free when order opened",
				zap.String("table_id", req.TableID.String()),
				zap.String("order_id", order.ID.String()))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishAndClear(ctx, order)

	dto := toOrderDTO(order, false)
	return &dto, nil
}

// AddItem adds a dish line to an open order, snapshotting the current menu price
func (s *OrderService) AddItem(ctx context.Context, req AddItemRequest) (*OrderItemDTO, error) {
	dish, err := s.dishRepo.FindByID(ctx, req.DishID)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, shared.ErrNotFound
	}
	if !dish.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Dish is not on the active menu")
	}

	var item *dining.OrderItem

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDWithItems(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.ErrNotFound
		}

		item, err = order.AddItem(dish.ID, req.Quantity, dish.Price, req.Note)
		if err != nil {
			return err
		}

		return repos.ItemRepo().Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	dto := toOrderItemDTO(item, dish.Name)
	return &dto, nil
}

// StartPreparing moves one order item from pending to preparing. The whole
// recipe deduction, the ledger entries, the item status update and the order
// status update commit in a single transaction; an insufficient ingredient
// rolls everything back and reports the exact shortfall. Requesting the
// transition on an item already preparing is a no-op that succeeds without
// any write.
func (s *OrderService) StartPreparing(ctx context.Context, itemID uuid.UUID, actorID *uuid.UUID) error {
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return shared.ErrNotFound
		}
		if item.Status == dining.OrderItemStatusPreparing {
			return nil
		}
		if !item.Status.CanTransitionTo(dining.OrderItemStatusPreparing) {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot start preparing an item in %s status", item.Status))
		}

		lines, err := repos.RecipeRepo().FindByDish(ctx, item.DishID)
		if err != nil {
			return err
		}

		// A dish with no recipe lines has nothing to deduct and succeeds
		// unconditionally.
		qty := decimal.NewFromInt(int64(item.Quantity))
		for i := range lines {
			_, err := appinv.ApplyChange(ctx, repos, appinv.StockChangeRequest{
				IngredientID: lines[i].IngredientID,
				Amount:       lines[i].QuantityPerUnit.Mul(qty),
				IsDeduction:  true,
				MovementType: inventory.MovementTypeOrderConsumption,
				Reason:       fmt.Sprintf("Preparation of order item %s", item.ID),
				OriginRef:    &item.ID,
				ActorID:      actorID,
			})
			if err != nil {
				return err
			}
		}

		if err := item.TransitionTo(dining.OrderItemStatusPreparing); err != nil {
			return err
		}
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}

		return s.syncOrderStatus(ctx, repos, item.OrderID)
	})
	if err != nil {
		return s.enrichShortfall(ctx, err)
	}
	return nil
}

// MarkReady moves a preparing item to ready. When every remaining item of the
// order is ready the order itself becomes ready to serve.
func (s *OrderService) MarkReady(ctx context.Context, itemID uuid.UUID) error {
	return s.transitionItem(ctx, itemID, dining.OrderItemStatusReady)
}

// MarkDelivered moves a ready item to delivered. When every remaining item of
// the order is delivered the order itself becomes served.
func (s *OrderService) MarkDelivered(ctx context.Context, itemID uuid.UUID) error {
	return s.transitionItem(ctx, itemID, dining.OrderItemStatusDelivered)
}

func (s *OrderService) transitionItem(ctx context.Context, itemID uuid.UUID, target dining.OrderItemStatus) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return shared.ErrNotFound
		}
		if item.Status == target {
			return nil
		}

		if err := item.TransitionTo(target); err != nil {
			return err
		}
		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}

		return s.syncOrderStatus(ctx, repos, item.OrderID)
	})
}

// CancelItem cancels a pending or preparing item. Cancelling an item already
// in preparation re-adds every ingredient deducted for it, in the same
// transaction as the cancellation, by reversing its own ledger entries.
func (s *OrderService) CancelItem(ctx context.Context, itemID uuid.UUID, actorID *uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return shared.ErrNotFound
		}
		if item.Status == dining.OrderItemStatusCancelled {
			return nil
		}
		if !item.Status.CanTransitionTo(dining.OrderItemStatusCancelled) {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot cancel an item in %s status", item.Status))
		}

		if item.Status == dining.OrderItemStatusPreparing {
			if err := s.restockItem(ctx, repos, item, actorID); err != nil {
				return err
			}
		}

		if err := item.TransitionTo(dining.OrderItemStatusCancelled); err != nil {
			return err
		}
		return repos.ItemRepo().Save(ctx, item)
	})
}

// restockItem reverses the consumption ledger entries recorded for the item,
// so the restock matches exactly what was deducted even if the recipe changed
// in the meantime.
func (s *OrderService) restockItem(ctx context.Context, repos TransactionalRepositories, item *dining.OrderItem, actorID *uuid.UUID) error {
	movements, err := repos.MovementRepo().FindByOriginRef(ctx, item.ID)
	if err != nil {
		return err
	}

	for i := range movements {
		m := &movements[i]
		if m.MovementType != inventory.MovementTypeOrderConsumption || !m.IsDeduction() {
			continue
		}
		_, err := appinv.ApplyChange(ctx, repos, appinv.StockChangeRequest{
			IngredientID: m.IngredientID,
			Amount:       m.QuantityDelta.Neg(),
			IsDeduction:  false,
			MovementType: inventory.MovementTypeCancelRestock,
			Reason:       fmt.Sprintf("Cancellation of order item %s", item.ID),
			OriginRef:    &item.ID,
			ActorID:      actorID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// SendToKitchen starts preparation of every pending item of an order. Each
// item transitions in its own independent transaction: the batch stops at the
// first failure and reports which items committed, which failed, and which
// were never attempted. Earlier successes are not undone.
func (s *OrderService) SendToKitchen(ctx context.Context, orderID uuid.UUID, actorID *uuid.UUID) (*SendToKitchenResult, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}

	pending := make([]uuid.UUID, 0, len(order.Items))
	for i := range order.Items {
		if order.Items[i].Status == dining.OrderItemStatusPending {
			pending = append(pending, order.Items[i].ID)
		}
	}

	result := &SendToKitchenResult{Committed: make([]uuid.UUID, 0, len(pending))}

	for i, itemID := range pending {
		if err := s.StartPreparing(ctx, itemID, actorID); err != nil {
			result.Failed = &ItemFailure{ItemID: itemID, Reason: err.Error()}
			result.NotAttempted = pending[i+1:]
			s.logger.Warn("kitchen batch stopped at failing item",
				zap.String("order_id", orderID.String()),
				zap.String("item_id", itemID.String()),
				zap.Int("committed", len(result.Committed)),
				zap.Error(err))
			break
		}
		result.Committed = append(result.Committed, itemID)
	}

	return result, nil
}

// TransitionOrder moves an order to the target status. A transition into a
// terminal status frees the order's table in the same transaction; billing
// stores the order total computed from its item price snapshots. Requesting
// the current status is a no-op that succeeds without any write.
func (s *OrderService) TransitionOrder(ctx context.Context, orderID uuid.UUID, target dining.OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("VALIDATION", fmt.Sprintf("Unknown order status %q", target))
	}

	var order *dining.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByIDWithItems(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return shared.ErrNotFound
		}
		if order.Status == target {
			return nil
		}

		if err := order.TransitionTo(target); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}

		if target.IsTerminal() {
			rows, err := repos.TableRepo().UpdateStatus(ctx, order.TableID, dining.TableStatusOccupied, dining.TableStatusFree)
			if err != nil {
				return err
			}
			if rows == 0 {
				s.logger.Warn("table was not occupied when order closed",
					zap.String("table_id", order.TableID.String()),
					zap.String("order_id", order.ID.String()))
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.publishAndClear(ctx, order)
	return nil
}

// BillOrder closes an order as billed and stores its total
func (s *OrderService) BillOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.TransitionOrder(ctx, orderID, dining.OrderStatusBilled)
}

// CancelOrder closes an order as cancelled
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return s.TransitionOrder(ctx, orderID, dining.OrderStatusCancelled)
}

// GetOrder returns one order with its item lines
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.ErrNotFound
	}

	dto := toOrderDTO(order, true)
	return &dto, nil
}

// KitchenQueue returns the pending and preparing items across all open
// orders, oldest request first
func (s *OrderService) KitchenQueue(ctx context.Context) ([]KitchenQueueEntry, error) {
	items, err := s.itemRepo.FindKitchenQueue(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]KitchenQueueEntry, 0, len(items))
	for i := range items {
		entry := KitchenQueueEntry{
			ItemID:      items[i].ID,
			OrderID:     items[i].OrderID,
			DishID:      items[i].DishID,
			Quantity:    items[i].Quantity,
			Status:      items[i].Status,
			Note:        items[i].Note,
			RequestedAt: items[i].RequestedAt,
		}
		if dish, err := s.dishRepo.FindByID(ctx, items[i].DishID); err == nil && dish != nil {
			entry.DishName = dish.Name
		}
		if order, err := s.orderRepo.FindByID(ctx, items[i].OrderID); err == nil && order != nil {
			entry.TableID = order.TableID
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ActiveOrders summarizes every non-terminal order grouped by status
func (s *OrderService) ActiveOrders(ctx context.Context) (*ActiveOrdersSummary, error) {
	counts, err := s.orderRepo.CountActiveByStatus(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ActiveOrdersSummary{
		Counts: counts,
		Orders: make([]OrderDTO, 0, len(orders)),
	}
	for i := range orders {
		summary.Orders = append(summary.Orders, toOrderDTO(&orders[i], false))
	}
	return summary, nil
}

// OrderHistory returns closed and open orders matching the filter, newest first
func (s *OrderService) OrderHistory(ctx context.Context, req OrderHistoryRequest) ([]OrderDTO, error) {
	orders, err := s.orderRepo.FindHistory(ctx, dining.OrderHistoryFilter{
		TableID:  req.TableID,
		WaiterID: req.WaiterID,
		Status:   req.Status,
		From:     req.From,
		To:       req.To,
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, toOrderDTO(&orders[i], false))
	}
	return dtos, nil
}

// syncOrderStatus derives the order status from its items after an item
// transition, inside the same transaction
func (s *OrderService) syncOrderStatus(ctx context.Context, repos TransactionalRepositories, orderID uuid.UUID) error {
	order, err := repos.OrderRepo().FindByID(ctx, orderID)
	if err != nil || order == nil {
		return err
	}

	items, err := repos.ItemRepo().FindByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	var target dining.OrderStatus
	switch {
	case order.Status == dining.OrderStatusOpen && anyItemIn(items, dining.OrderItemStatusPreparing):
		target = dining.OrderStatusInPreparation
	case order.Status == dining.OrderStatusInPreparation && allItemsAtLeast(items, dining.OrderItemStatusReady):
		target = dining.OrderStatusReadyToServe
	case order.Status == dining.OrderStatusReadyToServe && allItemsAtLeast(items, dining.OrderItemStatusDelivered):
		target = dining.OrderStatusServed
	default:
		return nil
	}

	if err := order.TransitionTo(target); err != nil {
		return err
	}
	return repos.OrderRepo().Save(ctx, order)
}

func anyItemIn(items []dining.OrderItem, status dining.OrderItemStatus) bool {
	for i := range items {
		if items[i].Status == status {
			return true
		}
	}
	return false
}

// allItemsAtLeast reports whether every non-cancelled item reached the given
// stage of the pending-preparing-ready-delivered ladder
func allItemsAtLeast(items []dining.OrderItem, status dining.OrderItemStatus) bool {
	rank := map[dining.OrderItemStatus]int{
		dining.OrderItemStatusPending:   0,
		dining.OrderItemStatusPreparing: 1,
		dining.OrderItemStatusReady:     2,
		dining.OrderItemStatusDelivered: 3,
	}
	want := rank[status]

	counted := 0
	for i := range items {
		if items[i].Status == dining.OrderItemStatusCancelled {
			continue
		}
		counted++
		if rank[items[i].Status] < want {
			return false
		}
	}
	return counted > 0
}

// enrichShortfall fills in the product name on an insufficient-stock failure
// so the user-facing message names the ingredient, not just its ID
func (s *OrderService) enrichShortfall(ctx context.Context, err error) error {
	var stockErr *inventory.InsufficientStockError
	if !errors.As(err, &stockErr) || stockErr.Name != "" {
		return err
	}

	ingredient, lookupErr := s.ingredientRepo.FindByID(ctx, stockErr.IngredientID)
	if lookupErr != nil || ingredient == nil {
		return err
	}
	product, lookupErr := s.productRepo.FindByID(ctx, ingredient.ProductID)
	if lookupErr != nil || product == nil {
		return err
	}

	stockErr.Name = product.Name
	return err
}

func (s *OrderService) publishAndClear(ctx context.Context, order *dining.Order) {
	if order == nil || s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish domain events", zap.Error(err))
	}
	order.ClearDomainEvents()
}
