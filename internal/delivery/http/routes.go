package http

import (
	"github.com/gin-gonic/gin"
	"github.com/papercheck/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.POST("/validations", handler.Validate)

		extractions := v1.Group("/extractions")
		{
			extractions.POST("", handler.Extract)
			extractions.GET("/:id", handler.GetExtraction)
			extractions.POST("/:id/validations", handler.ValidateExtraction)
		}
	}

	return router
}
