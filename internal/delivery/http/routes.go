package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gearcheck/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, log *zap.Logger, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check and metrics endpoints
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Checklist API
	api := router.Group("/api")
	{
		api.GET("/status", handler.Status)
		api.GET("/checklist", handler.GetChecklist)
		api.POST("/update-item", handler.UpdateItem)
		api.POST("/analyze", handler.Analyze)
		api.GET("/export", handler.Export)
		api.GET("/export-csv", handler.ExportCSV)
		api.GET("/report", handler.Report)
		api.POST("/load-state", handler.LoadState)
		api.POST("/clear", handler.Clear)
	}

	return router
}
