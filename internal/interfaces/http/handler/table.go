package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	diningapp "github.com/resto/backend/internal/application/dining"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/interfaces/http/dto"
)

// TableHandler handles floor plan API endpoints
type TableHandler struct {
	BaseHandler
	tableService *diningapp.TableService
}

// NewTableHandler creates a new TableHandler
func NewTableHandler(tableService *diningapp.TableService) *TableHandler {
	return &TableHandler{
		tableService: tableService,
	}
}

// RegisterTableRequest represents a request to add a table
type RegisterTableRequest struct {
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Location string `json:"location" binding:"max=100"`
	LayoutX  int    `json:"layout_x"`
	LayoutY  int    `json:"layout_y"`
}

// UpdateLayoutRequest represents a request to move a table on the floor plan
type UpdateLayoutRequest struct {
	LayoutX int `json:"layout_x"`
	LayoutY int `json:"layout_y"`
}

// SetTableStatusRequest represents a manual table status change
type SetTableStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=free reserved maintenance"`
}

// Register adds a new table to the floor plan
func (h *TableHandler) Register(c *gin.Context) {
	var req RegisterTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	table, err := h.tableService.RegisterTable(c.Request.Context(), diningapp.RegisterTableRequest{
		Capacity: req.Capacity,
		Location: req.Location,
		LayoutX:  req.LayoutX,
		LayoutY:  req.LayoutY,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, table)
}

// Get returns one table
func (h *TableHandler) Get(c *gin.Context) {
	tableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	table, err := h.tableService.GetTable(c.Request.Context(), tableID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, table)
}

// List returns the floor plan
func (h *TableHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := toFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if location := c.Query("location"); location != "" {
		filter.Filters["location"] = location
	}

	tables, err := h.tableService.ListTables(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tables)
}

// UpdateLayout moves a table on the floor plan
func (h *TableHandler) UpdateLayout(c *gin.Context) {
	tableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	var req UpdateLayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	table, err := h.tableService.UpdateLayout(c.Request.Context(), tableID, req.LayoutX, req.LayoutY)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, table)
}

// SetStatus applies a manual status change (reserve, maintenance, free)
func (h *TableHandler) SetStatus(c *gin.Context) {
	tableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	var req SetTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	table, err := h.tableService.SetStatus(c.Request.Context(), tableID, dining.TableStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, table)
}
