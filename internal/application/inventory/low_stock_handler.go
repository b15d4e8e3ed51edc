package inventory

import (
	"context"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockHandler logs a structured warning whenever a committed stock
// mutation leaves an ingredient at or below its product minimum. It is the
// default subscriber for low-stock events; alerting integrations can register
// alongside it on the same bus.
type LowStockHandler struct {
	logger *zap.Logger
}

// NewLowStockHandler creates a new LowStockHandler.
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{logger: logger}
}

// Handle processes a low-stock event.
func (h *LowStockHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	lowStock, ok := event.(*inventory.StockBelowMinimumEvent)
	if !ok {
		return nil
	}

	h.logger.Warn("ingredient stock at or below minimum",
		zap.String("ingredient_id", lowStock.IngredientID.String()),
		zap.String("product_id", lowStock.ProductID.String()),
		zap.String("available", lowStock.Available.String()),
		zap.String("minimum", lowStock.Minimum.String()),
	)
	return nil
}

// EventTypes returns the event types this handler subscribes to.
func (h *LowStockHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowMinimum}
}

// Ensure LowStockHandler implements EventHandler
var _ shared.EventHandler = (*LowStockHandler)(nil)
