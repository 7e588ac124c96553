package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"restomart/internal/analytics"
	"restomart/internal/caching"
	"restomart/internal/handlers"
	"restomart/internal/jobs/background"
	"restomart/internal/middleware"
	"restomart/internal/models"
	"restomart/internal/repositories"
	"restomart/internal/services"
	"restomart/pkg/database"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
)

const dishPhotoBucket = "dish-photos"

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.Connect(ctx, databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: Using generated JWT secret")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	minioUseSSL := os.Getenv("MINIO_USE_SSL") == "true"

	minioSvc, err := services.NewMinioService(minioEndpoint, minioAccessKey, minioSecretKey, minioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, dishPhotoBucket); err != nil {
		log.Printf("WARN: cannot ensure dish photo bucket: %v", err)
	}

	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Services. Each transaction-owning service takes the pool and opens its
	// own transactions.
	orderSvc := services.NewOrderService(pool)
	bookingSvc := services.NewBookingService(pool)
	inventorySvc := services.NewInventoryService(pool, cacheSvc)
	catalogSvc := services.NewCatalogService(pool, cacheSvc, minioSvc, dishPhotoBucket)
	authSvc := services.NewAuthService(pool, jwtSecret, 24*time.Hour)
	analyticsSvc := analytics.NewAnalyticsService(pool, cacheSvc)

	// Handlers
	orderHandlers := handlers.NewOrderHandlers(orderSvc)
	bookingHandlers := handlers.NewBookingHandlers(bookingSvc)
	dishHandlers := handlers.NewDishHandlers(catalogSvc)
	productHandlers := handlers.NewProductHandlers(inventorySvc)
	tableHandlers := handlers.NewTableHandlers(repositories.NewTableRepo(pool))
	guestHandlers := handlers.NewGuestHandlers(repositories.NewGuestRepo(pool))
	waiterHandlers := handlers.NewWaiterHandlers(repositories.NewWaiterRepo(pool))
	supplierHandlers := handlers.NewSupplierHandlers(repositories.NewSupplierRepo(pool))
	reportHandlers := handlers.NewReportHandlers(analyticsSvc)
	authHandlers := handlers.NewAuthHandlers(authSvc)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Background jobs
	scheduler := background.NewJobScheduler(analyticsSvc, repositories.NewProductRepo(pool))
	if err := scheduler.Start(); err != nil {
		log.Printf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Public routes
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.POST("/auth/login", authHandlers.Login)

	// Authenticated routes
	api := e.Group("/api/v1", middleware.JWT(jwtSecret)...)
	admin := api.Group("", middleware.RequireRole(models.RoleAdmin))

	api.GET("/auth/me", authHandlers.Me)
	admin.POST("/auth/register", authHandlers.Register)

	// Menu
	api.GET("/dishes", dishHandlers.ListDishes)
	api.GET("/dishes/:id", dishHandlers.GetDish)
	api.GET("/dishes/:id/recipe", dishHandlers.GetRecipe)
	api.GET("/dishes/:id/photo-url", dishHandlers.GetPhotoURL)
	admin.POST("/dishes", dishHandlers.CreateDish)
	admin.PUT("/dishes/:id", dishHandlers.UpdateDish)
	admin.DELETE("/dishes/:id", dishHandlers.DeleteDish)
	admin.PUT("/dishes/:id/recipe", dishHandlers.ReplaceRecipe)
	admin.POST("/dishes/:id/photo", dishHandlers.UploadPhoto)

	// Inventory
	api.GET("/products", productHandlers.ListProducts)
	api.GET("/products/expiring", productHandlers.ListExpiring)
	api.GET("/products/low-stock", productHandlers.ListLowStock)
	api.GET("/products/:id", productHandlers.GetProduct)
	admin.POST("/products", productHandlers.CreateProduct)
	admin.PUT("/products/:id", productHandlers.UpdateProduct)
	admin.DELETE("/products/:id", productHandlers.DeleteProduct)
	admin.POST("/products/:id/restock", productHandlers.RestockProduct)

	// Tables and bookings
	api.GET("/tables", tableHandlers.ListTables)
	api.GET("/tables/free", bookingHandlers.FindFreeTables)
	api.GET("/tables/:id", tableHandlers.GetTable)
	admin.POST("/tables", tableHandlers.CreateTable)
	admin.PUT("/tables/:id", tableHandlers.UpdateTable)
	admin.DELETE("/tables/:id", tableHandlers.DeleteTable)

	api.GET("/bookings", bookingHandlers.ListBookings)
	api.GET("/bookings/:id", bookingHandlers.GetBooking)
	api.POST("/bookings", bookingHandlers.CreateBooking)
	api.PUT("/bookings/:id", bookingHandlers.UpdateBooking)
	api.DELETE("/bookings/:id", bookingHandlers.DeleteBooking)

	// People
	api.GET("/guests", guestHandlers.ListGuests)
	api.GET("/guests/:id", guestHandlers.GetGuest)
	api.POST("/guests", guestHandlers.CreateGuest)
	api.PUT("/guests/:id", guestHandlers.UpdateGuest)
	admin.DELETE("/guests/:id", guestHandlers.DeleteGuest)

	api.GET("/waiters", waiterHandlers.ListWaiters)
	api.GET("/waiters/:id", waiterHandlers.GetWaiter)
	admin.POST("/waiters", waiterHandlers.CreateWaiter)
	admin.PUT("/waiters/:id", waiterHandlers.UpdateWaiter)
	admin.DELETE("/waiters/:id", waiterHandlers.DeleteWaiter)

	api.GET("/suppliers", supplierHandlers.ListSuppliers)
	api.GET("/suppliers/:id", supplierHandlers.GetSupplier)
	admin.POST("/suppliers", supplierHandlers.CreateSupplier)
	admin.PUT("/suppliers/:id", supplierHandlers.UpdateSupplier)
	admin.DELETE("/suppliers/:id", supplierHandlers.DeleteSupplier)

	// Orders
	api.GET("/orders", orderHandlers.ListOrders)
	api.GET("/orders/search", orderHandlers.SearchOrders)
	api.GET("/orders/:id", orderHandlers.GetOrder)
	api.POST("/orders", orderHandlers.CreateOrder)
	admin.DELETE("/orders/:id", orderHandlers.DeleteOrder)
	api.GET("/orders/:id/items", orderHandlers.ListOrderItems)
	api.POST("/orders/:id/items", orderHandlers.AddOrderItem)
	api.PUT("/orders/:id/items/:dish_id", orderHandlers.UpdateOrderItem)
	api.DELETE("/orders/:id/items/:dish_id", orderHandlers.RemoveOrderItem)
	api.POST("/orders/:id/consume", orderHandlers.ConsumeOrder)
	api.POST("/orders/:id/pay", orderHandlers.PayOrder)
	api.POST("/orders/:id/cancel", orderHandlers.CancelOrder)

	// Reports
	admin.GET("/reports/revenue", reportHandlers.Revenue)
	admin.GET("/reports/dish-sales", reportHandlers.DishSales)
	admin.GET("/reports/guest-statistics", reportHandlers.GuestStatistics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}
