package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/resto/backend/internal/application/catalog"
	diningapp "github.com/resto/backend/internal/application/dining"
	inventoryapp "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/infrastructure/config"
	"github.com/resto/backend/internal/infrastructure/event"
	"github.com/resto/backend/internal/infrastructure/logger"
	"github.com/resto/backend/internal/infrastructure/persistence"
	"github.com/resto/backend/internal/interfaces/http/handler"
	"github.com/resto/backend/internal/interfaces/http/middleware"
	"github.com/resto/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Restaurant Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	dishRepo := persistence.NewGormDishRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeLineRepository(db.DB)
	ingredientRepo := persistence.NewGormIngredientRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	tableRepo := persistence.NewGormTableRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	orderItemRepo := persistence.NewGormOrderItemRepository(db.DB)

	// Initialize transaction scopes
	stockTxScope := persistence.NewGormStockTransactionScope(db.DB)
	orderTxScope := persistence.NewGormOrderTransactionScope(db.DB)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	if cfg.Stock.LowStockLogEnabled {
		lowStockHandler := inventoryapp.NewLowStockHandler(log)
		eventBus.Subscribe(lowStockHandler)
		log.Info("Low stock alerting enabled",
			zap.Strings("event_types", lowStockHandler.EventTypes()),
		)
	}

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	stockService := inventoryapp.NewStockService(stockTxScope, ingredientRepo, movementRepo, productRepo, log)
	stockService.SetHistoryDefaultLimit(cfg.Stock.MovementHistoryLimit)
	menuService := catalogapp.NewMenuService(productRepo, dishRepo, recipeRepo, ingredientRepo, log)
	orderService := diningapp.NewOrderService(orderTxScope, orderRepo, orderItemRepo, tableRepo, dishRepo, productRepo, ingredientRepo, log)
	tableService := diningapp.NewTableService(tableRepo, log)

	// Inject event bus into services that publish events
	stockService.SetEventPublisher(eventBus)
	menuService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	// Initialize handlers
	stockHandler := handler.NewStockHandler(stockService)
	menuHandler := handler.NewMenuHandler(menuService)
	orderHandler := handler.NewOrderHandler(orderService)
	tableHandler := handler.NewTableHandler(tableService)
	systemHandler := handler.NewSystemHandler(db)

	// Set gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Menu domain (products, dishes, recipes)
	menuRoutes := router.NewDomainGroup("menu", "/menu")
	menuRoutes.POST("/products", menuHandler.CreateProduct)
	menuRoutes.GET("/products", menuHandler.ListProducts)
	menuRoutes.GET("/products/:id", menuHandler.GetProduct)
	menuRoutes.PUT("/products/:id", menuHandler.UpdateProduct)
	menuRoutes.POST("/dishes", menuHandler.CreateDish)
	menuRoutes.GET("/dishes", menuHandler.ListDishes)
	menuRoutes.GET("/dishes/:id", menuHandler.GetDish)
	menuRoutes.PUT("/dishes/:id", menuHandler.UpdateDish)
	menuRoutes.PUT("/dishes/:id/price", menuHandler.ChangeDishPrice)
	menuRoutes.PUT("/dishes/:id/active", menuHandler.SetDishActive)
	menuRoutes.PUT("/dishes/:id/recipe", menuHandler.SetRecipeLine)
	menuRoutes.GET("/dishes/:id/recipe", menuHandler.GetRecipe)
	menuRoutes.GET("/dishes/:id/availability", menuHandler.CheckAvailability)
	menuRoutes.DELETE("/recipe-lines/:line_id", menuHandler.RemoveRecipeLine)

	// Inventory domain (ingredients, stock ledger)
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/ingredients", stockHandler.Enroll)
	inventoryRoutes.GET("/ingredients", stockHandler.ListIngredients)
	inventoryRoutes.GET("/ingredients/:id", stockHandler.GetIngredient)
	inventoryRoutes.POST("/ingredients/:id/receive", stockHandler.Receive)
	inventoryRoutes.POST("/ingredients/:id/waste", stockHandler.Waste)
	inventoryRoutes.POST("/ingredients/:id/adjust", stockHandler.Adjust)
	inventoryRoutes.GET("/ingredients/:id/movements", stockHandler.IngredientMovements)
	inventoryRoutes.GET("/movements", stockHandler.Movements)
	inventoryRoutes.GET("/low-stock", stockHandler.LowStock)

	// Order domain (order lifecycle, kitchen flow)
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("", orderHandler.Open)
	orderRoutes.GET("/active", orderHandler.Active)
	orderRoutes.GET("/history", orderHandler.History)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.POST("/:id/items", orderHandler.AddItem)
	orderRoutes.POST("/:id/send", orderHandler.SendToKitchen)
	orderRoutes.POST("/:id/bill", orderHandler.Bill)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.POST("/items/:item_id/prepare", orderHandler.StartPreparingItem)
	orderRoutes.POST("/items/:item_id/ready", orderHandler.MarkItemReady)
	orderRoutes.POST("/items/:item_id/deliver", orderHandler.MarkItemDelivered)
	orderRoutes.DELETE("/items/:item_id", orderHandler.CancelItem)

	// Kitchen work queue
	kitchenRoutes := router.NewDomainGroup("kitchen", "/kitchen")
	kitchenRoutes.GET("/queue", orderHandler.KitchenQueue)

	// Dining floor plan
	tableRoutes := router.NewDomainGroup("tables", "/tables")
	tableRoutes.POST("", tableHandler.Register)
	tableRoutes.GET("", tableHandler.List)
	tableRoutes.GET("/:id", tableHandler.Get)
	tableRoutes.PUT("/:id/layout", tableHandler.UpdateLayout)
	tableRoutes.PUT("/:id/status", tableHandler.SetStatus)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/health", systemHandler.Health)

	r.Register(menuRoutes).
		Register(inventoryRoutes).
		Register(orderRoutes).
		Register(kitchenRoutes).
		Register(tableRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
