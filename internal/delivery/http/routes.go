package http

import (
	"github.com/gin-gonic/gin"
	"github.com/storefront/backend/config"
	"github.com/storefront/backend/internal/domain"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	authenticated := AuthMiddleware(cfg.Auth.JWTSecret)
	adminOnly := RequireRole(domain.RoleAdmin)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handler.HealthCheck)

		products := v1.Group("/products")
		{
			products.GET("", handler.ListProducts)
			products.GET("/search", handler.SearchProducts)
			products.GET("/:id", handler.GetProduct)
			products.POST("/:id/reviews", authenticated, handler.CreateReview)

			products.POST("", authenticated, adminOnly, handler.CreateProduct)
			products.PUT("/:id", authenticated, adminOnly, handler.UpdateProduct)
			products.DELETE("/cache", authenticated, adminOnly, handler.InvalidateCatalogCache)
			products.DELETE("/:id", authenticated, adminOnly, handler.DeleteProduct)
		}
	}

	return router
}
