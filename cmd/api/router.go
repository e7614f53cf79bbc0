package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pos-admin-gateway/internal/shared/middleware"
	"pos-admin-gateway/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupCartRoutes(v1, c)
		setupTransactionRoutes(v1, c)
		setupDashboardRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)
	}
}

// ========================================
// CATALOG ROUTES
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.AuthMiddleware(c.JWTManager)

	categories := v1.Group("/categories", authRequired)
	{
		categories.GET("", c.CatalogHandler.ListCategories)
		categories.POST("", c.CatalogHandler.CreateCategory)
		categories.DELETE("/:id", c.CatalogHandler.DeleteCategory)
	}

	tags := v1.Group("/tags", authRequired)
	{
		tags.GET("", c.CatalogHandler.ListTags)
		tags.POST("", c.CatalogHandler.CreateTag)
		tags.DELETE("/:id", c.CatalogHandler.DeleteTag)
	}

	products := v1.Group("/products", authRequired)
	{
		products.GET("", c.CatalogHandler.ListProducts)
		products.GET("/import-template", c.ImportHandler.DownloadTemplate)
		products.GET("/:id", c.CatalogHandler.GetProduct)
		products.POST("", c.CatalogHandler.CreateProduct)
		products.POST("/bulk-import", c.ImportHandler.ImportProducts)
		products.DELETE("/:id", c.CatalogHandler.DeleteProduct)
	}

	customers := v1.Group("/customers", authRequired)
	{
		customers.GET("", c.CatalogHandler.ListCustomers)
		customers.POST("", c.CatalogHandler.CreateCustomer)
		customers.DELETE("/:id", c.CatalogHandler.DeleteCustomer)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cart := v1.Group("/cart")
	cart.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PATCH("/items/:product_id", c.CartHandler.AdjustQuantity)
		cart.DELETE("/items/:product_id", c.CartHandler.RemoveItem)
		cart.PUT("/customer", c.CartHandler.SetCustomer)
		cart.PUT("/payment-method", c.CartHandler.SetPaymentMethod)
		cart.POST("/checkout", c.CartHandler.Checkout)
	}
}

// ========================================
// TRANSACTION ROUTES
// ========================================
func setupTransactionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	transactions := v1.Group("/transactions")
	transactions.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		transactions.GET("", c.TransactionHandler.ListTransactions)
		transactions.GET("/:id", c.TransactionHandler.GetTransaction)
	}
}

// ========================================
// DASHBOARD ROUTES
// ========================================
func setupDashboardRoutes(v1 *gin.RouterGroup, c *container.Container) {
	dashboard := v1.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		dashboard.GET("/summary", c.DashboardHandler.GetSummary)
		dashboard.GET("/sales-chart", c.DashboardHandler.GetSalesChart)
		dashboard.GET("/top-products", c.DashboardHandler.GetTopProducts)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		redisStatus := "disabled"
		if appCtx.Redis != nil {
			redisStatus = "ok"

			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Redis.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"redis":    redisStatus,
			"upstream": appCtx.Config.Upstream.BaseURL,
		}

		c.JSON(http.StatusOK, health)
	}
}
