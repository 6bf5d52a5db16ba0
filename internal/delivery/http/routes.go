package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pricelens/backend/config"
)

// MetricsExporter observes HTTP traffic and serves the scrape endpoint.
type MetricsExporter interface {
	HTTPObserver
	Handler() http.Handler
}

// SetupRouter creates and configures the Gin router. metrics may be nil.
func SetupRouter(cfg *config.Config, handler *Handler, log zerolog.Logger, metrics MetricsExporter) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	var observer HTTPObserver
	if metrics != nil {
		observer = metrics
	}

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(log))
	router.Use(LoggerMiddleware(log, observer))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.POST("/agent", handler.Ask)
		v1.GET("/catalog/:reference", handler.GetCatalogItem)
	}

	return router
}
