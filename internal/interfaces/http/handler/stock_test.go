package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	invapp "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/domain/catalog"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type stockHandlerMocks struct {
	ingredientRepo *MockIngredientRepository
	movementRepo   *MockStockMovementRepository
	productRepo    *MockProductRepository
}

func setupStockHandler() (*StockHandler, *stockHandlerMocks) {
	m := &stockHandlerMocks{
		ingredientRepo: new(MockIngredientRepository),
		movementRepo:   new(MockStockMovementRepository),
		productRepo:    new(MockProductRepository),
	}
	scope := invapp.NewNoOpTransactionScope(m.ingredientRepo, m.movementRepo)
	service := invapp.NewStockService(scope, m.ingredientRepo, m.movementRepo, m.productRepo, zap.NewNop())
	return NewStockHandler(service), m
}

func createTestProduct(t *testing.T, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "kg", decimal.NewFromInt(2))
	require.NoError(t, err)
	return product
}

func createTestIngredient(t *testing.T, productID uuid.UUID, quantity int64) *inventory.Ingredient {
	t.Helper()
	ingredient, err := inventory.NewIngredient(productID, decimal.NewFromInt(quantity))
	require.NoError(t, err)
	return ingredient
}

func TestStockHandler_Enroll_Success(t *testing.T) {
	handler, m := setupStockHandler()

	product := createTestProduct(t, "Flour")

	m.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	m.ingredientRepo.On("ExistsByProduct", mock.Anything, product.ID).Return(false, nil)
	m.ingredientRepo.On("Save", mock.Anything, mock.AnythingOfType("*inventory.Ingredient")).Return(nil)
	m.movementRepo.On("Append", mock.Anything, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

	router := setupTestRouter()
	router.POST("/ingredients", handler.Enroll)

	body, _ := json.Marshal(EnrollIngredientRequest{
		ProductID:       product.ID.String(),
		InitialQuantity: 25,
	})
	req := httptest.NewRequest(http.MethodPost, "/ingredients", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	m.ingredientRepo.AssertExpectations(t)
	m.movementRepo.AssertExpectations(t)
}

func TestStockHandler_Enroll_AlreadyEnrolled(t *testing.T) {
	handler, m := setupStockHandler()

	product := createTestProduct(t, "Flour")

	m.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	m.ingredientRepo.On("ExistsByProduct", mock.Anything, product.ID).Return(true, nil)

	router := setupTestRouter()
	router.POST("/ingredients", handler.Enroll)

	body, _ := json.Marshal(EnrollIngredientRequest{ProductID: product.ID.String()})
	req := httptest.NewRequest(http.MethodPost, "/ingredients", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStockHandler_Enroll_UnknownProduct(t *testing.T) {
	handler, m := setupStockHandler()

	productID := uuid.New()
	m.productRepo.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.POST("/ingredients", handler.Enroll)

	body, _ := json.Marshal(EnrollIngredientRequest{ProductID: productID.String()})
	req := httptest.NewRequest(http.MethodPost, "/ingredients", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStockHandler_Enroll_InvalidJSON(t *testing.T) {
	handler, _ := setupStockHandler()

	router := setupTestRouter()
	router.POST("/ingredients", handler.Enroll)

	req := httptest.NewRequest(http.MethodPost, "/ingredients", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockHandler_Receive_Success(t *testing.T) {
	handler, m := setupStockHandler()

	product := createTestProduct(t, "Flour")
	ingredient := createTestIngredient(t, product.ID, 10)

	m.ingredientRepo.On("FindByIDForUpdate", mock.Anything, ingredient.ID).Return(ingredient, nil)
	m.ingredientRepo.On("Save", mock.Anything, ingredient).Return(nil)
	m.movementRepo.On("Append", mock.Anything, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)
	m.ingredientRepo.On("FindByID", mock.Anything, ingredient.ID).Return(ingredient, nil)
	m.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	router := setupTestRouter()
	router.POST("/ingredients/:id/receive", handler.Receive)

	body, _ := json.Marshal(StockQuantityRequest{Quantity: 5, Reason: "Morning delivery"})
	req := httptest.NewRequest(http.MethodPost, "/ingredients/"+ingredient.ID.String()+"/receive", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(15), data["available"])
	m.movementRepo.AssertExpectations(t)
}

func TestStockHandler_Waste_InsufficientStock(t *testing.T) {
	handler, m := setupStockHandler()

	product := createTestProduct(t, "Flour")
	ingredient := createTestIngredient(t, product.ID, 2)

	m.ingredientRepo.On("FindByIDForUpdate", mock.Anything, ingredient.ID).Return(ingredient, nil)

	router := setupTestRouter()
	router.POST("/ingredients/:id/waste", handler.Waste)

	body, _ := json.Marshal(StockQuantityRequest{Quantity: 5, Reason: "Dropped"})
	req := httptest.NewRequest(http.MethodPost, "/ingredients/"+ingredient.ID.String()+"/waste", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]interface{})
	assert.Equal(t, "ERR_INSUFFICIENT_STOCK", errInfo["code"])
	m.ingredientRepo.AssertNotCalled(t, "Save")
}

func TestStockHandler_Adjust_RequiresReason(t *testing.T) {
	handler, _ := setupStockHandler()

	router := setupTestRouter()
	router.POST("/ingredients/:id/adjust", handler.Adjust)

	body, _ := json.Marshal(AdjustStockRequest{Quantity: 3, IsDeduction: true})
	req := httptest.NewRequest(http.MethodPost, "/ingredients/"+uuid.NewString()+"/adjust", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// The binding rejects a missing reason before the service is reached
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockHandler_Adjust_InvalidActorHeader(t *testing.T) {
	handler, _ := setupStockHandler()

	router := setupTestRouter()
	router.POST("/ingredients/:id/adjust", handler.Adjust)

	body, _ := json.Marshal(AdjustStockRequest{Quantity: 3, Reason: "Recount"})
	req := httptest.NewRequest(http.MethodPost, "/ingredients/"+uuid.NewString()+"/adjust", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ActorIDHeader, "not-a-uuid")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockHandler_GetIngredient_NotFound(t *testing.T) {
	handler, m := setupStockHandler()

	ingredientID := uuid.New()
	m.ingredientRepo.On("FindByID", mock.Anything, ingredientID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/ingredients/:id", handler.GetIngredient)

	req := httptest.NewRequest(http.MethodGet, "/ingredients/"+ingredientID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStockHandler_Movements_UnknownMovementType(t *testing.T) {
	handler, _ := setupStockHandler()

	router := setupTestRouter()
	router.GET("/movements", handler.Movements)

	req := httptest.NewRequest(http.MethodGet, "/movements?movement_type=TELEPORTED", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStockHandler_Movements_Success(t *testing.T) {
	handler, m := setupStockHandler()

	ingredientID := uuid.New()
	movement, err := inventory.NewStockMovement(ingredientID, inventory.MovementTypeReceipt,
		decimal.NewFromInt(5), decimal.NewFromInt(10), decimal.NewFromInt(15), "Delivery")
	require.NoError(t, err)

	m.movementRepo.On("FindByFilter", mock.Anything, mock.AnythingOfType("inventory.MovementFilter")).
		Return([]inventory.StockMovement{*movement}, nil)

	router := setupTestRouter()
	router.GET("/movements", handler.Movements)

	req := httptest.NewRequest(http.MethodGet, "/movements?ingredient_id="+ingredientID.String()+"&limit=10", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.movementRepo.AssertExpectations(t)
}
