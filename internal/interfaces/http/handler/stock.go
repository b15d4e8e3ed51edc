package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	invapp "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/interfaces/http/dto"
)

// StockHandler handles ingredient stock API endpoints
type StockHandler struct {
	BaseHandler
	stockService *invapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *invapp.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
	}
}

// EnrollIngredientRequest registers a product as a tracked kitchen ingredient
type EnrollIngredientRequest struct {
	ProductID       string  `json:"product_id" binding:"required,uuid"`
	InitialQuantity float64 `json:"initial_quantity" binding:"omitempty,min=0"`
}

// StockQuantityRequest carries a positive quantity and an optional free-text reason
type StockQuantityRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Reason   string  `json:"reason" binding:"max=500"`
}

// AdjustStockRequest corrects a count after physical recount
type AdjustStockRequest struct {
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	IsDeduction bool    `json:"is_deduction"`
	Reason      string  `json:"reason" binding:"required,max=500"`
}

// StockLevelResponse reports the quantity on hand after a mutation
type StockLevelResponse struct {
	IngredientID string  `json:"ingredient_id"`
	Available    float64 `json:"available"`
}

// Enroll registers a product as an ingredient with its opening stock
func (h *StockHandler) Enroll(c *gin.Context) {
	var req EnrollIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	ingredient, err := h.stockService.EnrollIngredient(c.Request.Context(), invapp.EnrollIngredientRequest{
		ProductID:       productID,
		InitialQuantity: toDecimal(req.InitialQuantity),
		ActorID:         actorID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ingredient)
}

// GetIngredient returns one ingredient with its current stock level
func (h *StockHandler) GetIngredient(c *gin.Context) {
	ingredientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	ingredient, err := h.stockService.GetIngredient(c.Request.Context(), ingredientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ingredient)
}

// ListIngredients returns the stock levels of all enrolled ingredients
func (h *StockHandler) ListIngredients(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ingredients, err := h.stockService.ListIngredients(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ingredients)
}

// Receive records a goods receipt for one ingredient
func (h *StockHandler) Receive(c *gin.Context) {
	h.applyQuantityChange(c, func(ingredientID uuid.UUID, req StockQuantityRequest, actorID *uuid.UUID) (StockLevelResponse, error) {
		newLevel, err := h.stockService.Receive(c.Request.Context(), ingredientID, toDecimal(req.Quantity), req.Reason, actorID)
		if err != nil {
			return StockLevelResponse{}, err
		}
		available, _ := newLevel.Float64()
		return StockLevelResponse{IngredientID: ingredientID.String(), Available: available}, nil
	})
}

// Waste records spoilage or breakage for one ingredient
func (h *StockHandler) Waste(c *gin.Context) {
	h.applyQuantityChange(c, func(ingredientID uuid.UUID, req StockQuantityRequest, actorID *uuid.UUID) (StockLevelResponse, error) {
		newLevel, err := h.stockService.RecordWaste(c.Request.Context(), ingredientID, toDecimal(req.Quantity), req.Reason, actorID)
		if err != nil {
			return StockLevelResponse{}, err
		}
		available, _ := newLevel.Float64()
		return StockLevelResponse{IngredientID: ingredientID.String(), Available: available}, nil
	})
}

// Adjust records a manual correction in either direction
func (h *StockHandler) Adjust(c *gin.Context) {
	ingredientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	newLevel, err := h.stockService.Adjust(c.Request.Context(), ingredientID,
		toDecimal(req.Quantity), req.IsDeduction, req.Reason, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	available, _ := newLevel.Float64()
	h.Success(c, StockLevelResponse{IngredientID: ingredientID.String(), Available: available})
}

// Movements returns the ledger history, optionally narrowed by query parameters
func (h *StockHandler) Movements(c *gin.Context) {
	req := invapp.MovementHistoryRequest{}

	if raw := c.Query("ingredient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid ingredient ID format")
			return
		}
		req.IngredientID = &id
	}
	if raw := c.Query("movement_type"); raw != "" {
		movementType := inventory.MovementType(raw)
		if !movementType.IsValid() {
			h.BadRequest(c, "Unknown movement type")
			return
		}
		req.MovementType = &movementType
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

	movements, err := h.stockService.MovementHistory(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// IngredientMovements returns the ledger history of one ingredient
func (h *StockHandler) IngredientMovements(c *gin.Context) {
	ingredientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	movements, err := h.stockService.MovementHistory(c.Request.Context(), invapp.MovementHistoryRequest{
		IngredientID: &ingredientID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// LowStock lists ingredients at or below their product's minimum stock
func (h *StockHandler) LowStock(c *gin.Context) {
	items, err := h.stockService.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

func (h *StockHandler) applyQuantityChange(
	c *gin.Context,
	apply func(uuid.UUID, StockQuantityRequest, *uuid.UUID) (StockLevelResponse, error),
) {
	ingredientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	var req StockQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := getActorID(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := apply(ingredientID, req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
