package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	diningapp "github.com/resto/backend/internal/application/dining"
	"github.com/resto/backend/internal/domain/dining"
)

// OrderHandler handles order lifecycle API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *diningapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *diningapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// OpenOrderRequest represents a request to open an order on a table
type OpenOrderRequest struct {
	TableID    string  `json:"table_id" binding:"required,uuid"`
	WaiterID   string  `json:"waiter_id" binding:"required,uuid"`
	CustomerID *string `json:"customer_id" binding:"omitempty,uuid"`
	PartySize  int     `json:"party_size" binding:"required,gt=0"`
}

// AddItemRequest represents a request to add a dish line to an order
type AddItemRequest struct {
	DishID   string `json:"dish_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Note     string `json:"note" binding:"max=500"`
}

// Open opens a new order and occupies the table
func (h *OrderHandler) Open(c *gin.Context) {
	var req OpenOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		h.BadRequest(c, "Invalid table ID format")
		return
	}
	waiterID, err := uuid.Parse(req.WaiterID)
	if err != nil {
		h.BadRequest(c, "Invalid waiter ID format")
		return
	}

	appReq := diningapp.OpenOrderRequest{
		TableID:   tableID,
		WaiterID:  waiterID,
		PartySize: req.PartySize,
	}
	if req.CustomerID != nil && *req.CustomerID != "" {
		customerID, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		appReq.CustomerID = &customerID
	}

	order, err := h.orderService.OpenOrder(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// Get returns one order with its items
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// AddItem adds a dish line to an open order, snapshotting the current price
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dishID, err := uuid.Parse(req.DishID)
	if err != nil {
		h.BadRequest(c, "Invalid dish ID format")
		return
	}

	item, err := h.orderService.AddItem(c.Request.Context(), diningapp.AddItemRequest{
		OrderID:  orderID,
		DishID:   dishID,
		Quantity: req.Quantity,
		Note:     req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// SendToKitchen starts preparation of every pending item on the order. Items
// transition one at a time; the response reports partial progress when an
// item fails.
func (h *OrderHandler) SendToKitchen(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.SendToKitchen(c.Request.Context(), orderID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// StartPreparingItem deducts the item's recipe from stock and moves it to
// preparing, atomically
func (h *OrderHandler) StartPreparingItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.orderService.StartPreparing(c.Request.Context(), itemID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkItemReady moves a preparing item to ready
func (h *OrderHandler) MarkItemReady(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.orderService.MarkReady(c.Request.Context(), itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkItemDelivered moves a ready item to delivered
func (h *OrderHandler) MarkItemDelivered(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.orderService.MarkDelivered(c.Request.Context(), itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CancelItem cancels a pending or preparing item, restocking any consumed
// ingredients
func (h *OrderHandler) CancelItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.orderService.CancelItem(c.Request.Context(), itemID, actorID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Bill closes a served order and frees its table
func (h *OrderHandler) Bill(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.BillOrder(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Cancel cancels a non-terminal order and frees its table
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// KitchenQueue returns pending and preparing items in request order
func (h *OrderHandler) KitchenQueue(c *gin.Context) {
	entries, err := h.orderService.KitchenQueue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// Active returns the non-terminal orders grouped by status
func (h *OrderHandler) Active(c *gin.Context) {
	summary, err := h.orderService.ActiveOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// History returns closed and open orders matching the query filters
func (h *OrderHandler) History(c *gin.Context) {
	req := diningapp.OrderHistoryRequest{}

	if raw := c.Query("table_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid table ID format")
			return
		}
		req.TableID = &id
	}
	if raw := c.Query("waiter_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid waiter ID format")
			return
		}
		req.WaiterID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status := dining.OrderStatus(raw)
		if !status.IsValid() {
			h.BadRequest(c, "Unknown order status")
			return
		}
		req.Status = &status
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid 'from' timestamp, expected RFC3339")
			return
		}
		req.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "Invalid 'to' timestamp, expected RFC3339")
			return
		}
		req.To = &to
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		req.Limit = limit
	}

	orders, err := h.orderService.OrderHistory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}
