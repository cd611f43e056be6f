package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/handlers"
	"github.com/jafarshop/storefront/internal/api/middleware"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/images"
	"github.com/jafarshop/storefront/internal/metrics"
	"github.com/jafarshop/storefront/internal/repository"
)

// NewRouter creates and configures the Gin router. store may be nil, in which
// case image uploads fail with an internal error.
func NewRouter(cfg *config.Config, repos *repository.Repositories, store images.Store, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(m.Middleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Storefront routes (public)
		v1.GET("/products", handlers.HandleListProducts(cfg, repos, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(cfg, repos, logger))
		v1.GET("/countries", handlers.HandleListCountries(repos, logger))
		v1.GET("/countries/:code/shipping-methods", handlers.HandleShippingMethods(repos, logger))
		v1.GET("/vendors/:id", handlers.HandleGetVendor(repos, logger))
		v1.GET("/vendors/:id/products", handlers.HandleGetVendorProducts(cfg, repos, logger))
		v1.POST("/cart/quote", handlers.HandleCartQuote(cfg, repos, logger))
		v1.POST("/checkout", handlers.HandleCheckout(cfg, repos, m, logger))
		v1.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))

		// Vendor dashboard routes (require authentication)
		vendorRoutes := v1.Group("/vendor")
		vendorRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			vendorRoutes.GET("/products", handlers.HandleVendorDashboardProducts(cfg, repos, logger))
		}

		// Admin routes; product writes are open to the owning vendor, the
		// rest require the admin role (enforced by the services)
		adminRoutes := v1.Group("/admin")
		adminRoutes.Use(middleware.AuthMiddleware(repos, logger))
		{
			adminRoutes.POST("/products", handlers.HandleCreateProduct(repos, logger))
			adminRoutes.PATCH("/products/:id", handlers.HandleUpdateProduct(repos, logger))
			adminRoutes.POST("/products/:id/images", handlers.HandleUploadProductImage(repos, store, logger))
			adminRoutes.PUT("/countries/:code", handlers.HandleUpsertCountry(repos, logger))
			adminRoutes.GET("/orders", handlers.HandleListOrders(repos, logger))
			adminRoutes.GET("/orders/:id", handlers.HandleGetOrderDetail(repos, logger))
			adminRoutes.POST("/orders/:id/process", handlers.HandleProcessOrder(repos, logger))
			adminRoutes.POST("/orders/:id/ship", handlers.HandleShipOrder(repos, logger))
			adminRoutes.POST("/orders/:id/deliver", handlers.HandleDeliverOrder(repos, logger))
			adminRoutes.POST("/orders/:id/cancel", handlers.HandleCancelOrder(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
