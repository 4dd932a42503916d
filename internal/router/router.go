// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stoktrack/stok-backend/internal/config"
	"github.com/stoktrack/stok-backend/internal/handlers"
	"github.com/stoktrack/stok-backend/internal/middleware"
	"github.com/stoktrack/stok-backend/internal/services"
	"github.com/stoktrack/stok-backend/internal/tenant"
	"github.com/stoktrack/stok-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	provisioner := tenant.NewProvisioner(cfg.Database.BusyTimeout)

	authService := services.NewAuthService(db, cfg, provisioner)
	attributeService := services.NewAttributeService()
	visibilityService := services.NewVisibilityService()
	catalogService := services.NewCatalogService(attributeService)
	inventoryService := services.NewInventoryService()
	exportService := services.NewExportService(attributeService, visibilityService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, attributeService, visibilityService)
	productHandler := handlers.NewProductHandler(catalogService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Everything below operates on the caller's stock store.
		store := v1.Group("")
		store.Use(middleware.AuthRequired(), middleware.TenantStore(authService, provisioner))
		{
			// Catalog column routes
			catalog := store.Group("/catalog")
			{
				catalog.GET("/columns", catalogHandler.ListColumns)
				catalog.POST("/columns", catalogHandler.DefineColumn)
				catalog.PUT("/columns/rename", catalogHandler.RenameColumn)
				catalog.PUT("/columns/:name/options", catalogHandler.SetColumnOptions)
				catalog.PUT("/columns/:name/visibility", catalogHandler.SetColumnVisibility)
				catalog.GET("/visibility", catalogHandler.GetVisibility)
			}

			// Product routes
			products := store.Group("/products")
			{
				products.GET("", productHandler.ListProducts)
				products.POST("", productHandler.CreateProduct)
				products.GET("/:id", productHandler.GetProduct)
				products.PUT("/:id", productHandler.UpdateProduct)
				products.DELETE("/:id", productHandler.DeleteProduct)
			}

			// Inventory routes
			inventory := store.Group("/inventory")
			{
				inventory.GET("", inventoryHandler.ListInventory)
				inventory.POST("", inventoryHandler.UpsertInventory)
				inventory.DELETE("/:id", inventoryHandler.DeleteInventory)
				inventory.GET("/locations", inventoryHandler.ListLocations)
			}

			// Export routes
			export := store.Group("/export")
			export.Use(middleware.ExportRateLimit())
			{
				export.GET("/xlsx", exportHandler.ExportXLSX)
			}
		}
	}

	return r
}
