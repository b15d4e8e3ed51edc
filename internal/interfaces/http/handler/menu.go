package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/resto/backend/internal/application/catalog"
	"github.com/resto/backend/internal/interfaces/http/dto"
)

// MenuHandler handles product, dish, and recipe API endpoints
type MenuHandler struct {
	BaseHandler
	menuService *catalogapp.MenuService
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(menuService *catalogapp.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=200"`
	Unit       string  `json:"unit" binding:"required,min=1,max=20"`
	UnitCost   float64 `json:"unit_cost" binding:"omitempty,min=0"`
	Perishable bool    `json:"perishable"`
	MinStock   float64 `json:"min_stock" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=200"`
	Unit       string  `json:"unit" binding:"required,min=1,max=20"`
	UnitCost   float64 `json:"unit_cost" binding:"omitempty,min=0"`
	Perishable bool    `json:"perishable"`
	MinStock   float64 `json:"min_stock" binding:"omitempty,min=0"`
}

// CreateProduct registers a new purchasable product
func (h *MenuHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.menuService.CreateProduct(c.Request.Context(), catalogapp.CreateProductRequest{
		Name:       req.Name,
		Unit:       req.Unit,
		UnitCost:   toDecimal(req.UnitCost),
		Perishable: req.Perishable,
		MinStock:   toDecimal(req.MinStock),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// UpdateProduct updates an existing product
func (h *MenuHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.menuService.UpdateProduct(c.Request.Context(), catalogapp.UpdateProductRequest{
		ProductID:  productID,
		Name:       req.Name,
		Unit:       req.Unit,
		UnitCost:   toDecimal(req.UnitCost),
		Perishable: req.Perishable,
		MinStock:   toDecimal(req.MinStock),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetProduct returns one product
func (h *MenuHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.menuService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// ListProducts returns products with optional search and pagination
func (h *MenuHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.menuService.ListProducts(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// CreateDishRequest represents a request to add a dish to the menu
type CreateDishRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

// UpdateDishRequest represents a request to update a dish's details
type UpdateDishRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// ChangeDishPriceRequest represents a request to reprice a dish
type ChangeDishPriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// SetDishActiveRequest toggles a dish's menu visibility
type SetDishActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// CreateDish adds a new dish to the menu
func (h *MenuHandler) CreateDish(c *gin.Context) {
	var req CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dish, err := h.menuService.CreateDish(c.Request.Context(), catalogapp.CreateDishRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       toDecimal(req.Price),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dish)
}

// UpdateDish updates a dish's name and description
func (h *MenuHandler) UpdateDish(c *gin.Context) {
	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dish ID format")
		return
	}

	var req UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dish, err := h.menuService.UpdateDish(c.Request.Context(), catalogapp.UpdateDishRequest{
		DishID:      dishID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dish)
}

// ChangeDishPrice reprices a dish. Existing order lines keep their snapshot.
func (h *MenuHandler) ChangeDishPrice(c *gin.Context) {
	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dish ID format")
		return
	}

	var req ChangeDishPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dish, err := h.menuService.ChangeDishPrice(c.Request.Context(), dishID, toDecimal(req.Price))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dish)
}

// SetDishActive shows or hides a dish on the menu
func (h *MenuHandler) SetDishActive(c *gin.Context) {
	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dish ID format")
		return
	}

	var req SetDishActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	dish, err := h.menuService.SetDishActive(c.Request.Context(), dishID, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dish)
}

// GetDish returns one dish
func (h *MenuHandler) GetDish(c *gin.Context) {
	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dish ID format")
		return
	}

	dish, err := h.menuService.GetDish(c.Request.Context(), dishID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dish)
}

// ListDishes returns the menu; ?active_only=true hides deactivated dishes
func (h *MenuHandler) ListDishes(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	activeOnly := c.Query("active_only") == "true"

	dishes, err := h.menuService.ListDishes(c.Request.Context(), toFilter(req), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dishes)
}

// SetRecipeLineRequest represents a request to link a dish to one ingredient
type SetRecipeLineRequest struct {
	IngredientID    string  `json:"ingredient_id" binding:"required,uuid"`
	QuantityPerUnit float64 `json:"quantity_per_unit" binding:"required,gt=0"`
	Unit            string  `json:"unit" binding:"required,min=1,max=20"`
	Note            string  `json:"note" binding:"max=500"`
}

// SetRecipeLine creates or updates the recipe line for a dish-ingredient pair
func (h *MenuHandler) SetRecipeLine(c *gin.Context) {
	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dish ID format")
		return
	}

	var req SetRecipeLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	ingredientID, err := uuid.Parse(req.IngredientID)
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	line, err := h.menuService.SetRecipeLine(c.Request.Context(), catalogapp.SetRecipeLineRequest{
		DishID:          dishID,
		IngredientID:    ingredientID,
		QuantityPerUnit: toDecimal(req.QuantityPerUnit),
		Unit:            req.Unit,
		Note:            req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, line)
}

// RemoveRecipeLine deletes one recipe line
func (h *MenuHandler) RemoveRecipeLine(c *gin.Context) {
	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe line ID format")
		return
	}

	if err := h.menuService.RemoveRecipeLine(c.Request.Context(), lineID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetRecipe returns the full recipe of a dish
func (h *MenuHandler) GetRecipe(c *gin.Context) {
	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dish ID format")
		return
	}

	recipe, err := h.menuService.ResolveRecipe(c.Request.Context(), dishID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, recipe)
}

// CheckAvailability reports whether a dish can be prepared at the requested
// quantity given current stock. Read-only; never reserves anything.
func (h *MenuHandler) CheckAvailability(c *gin.Context) {
	dishID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid dish ID format")
		return
	}

	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		quantity, err = strconv.Atoi(raw)
		if err != nil || quantity <= 0 {
			h.BadRequest(c, "Quantity must be a positive integer")
			return
		}
	}

	result, err := h.menuService.CheckAvailability(c.Request.Context(), dishID, quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
