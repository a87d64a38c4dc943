package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/pulsegrow-api/api/admin"
	"github.com/killallgit/pulsegrow-api/api/channels"
	"github.com/killallgit/pulsegrow-api/api/health"
	"github.com/killallgit/pulsegrow-api/api/types"
	"github.com/killallgit/pulsegrow-api/api/version"
	"github.com/killallgit/pulsegrow-api/api/videos"
	_ "github.com/killallgit/pulsegrow-api/docs/swagger"
	"github.com/killallgit/pulsegrow-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, cfg *config.Config, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Monitoring.Enabled && deps.Metrics != nil {
		path := cfg.Monitoring.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, deps.Metrics.Handler())
	}

	engine.NoRoute(NotFoundHandler())

	readMiddleware := passThrough
	analyzeMiddleware := passThrough
	if limits := cfg.RateLimiting; limits.Enabled {
		readMiddleware = PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "read", limits.ReadRPS, limits.ReadBurst)
		analyzeMiddleware = PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "analyze", limits.AnalyzeRPS, limits.AnalyzeBurst)
	}

	// Every /api route counts against the read limit; analyze routes are
	// additionally held to the analyze limit
	apiGroup := engine.Group("/api", readMiddleware)
	channels.RegisterRoutes(apiGroup, deps, analyzeMiddleware)
	videos.RegisterRoutes(apiGroup, deps, analyzeMiddleware)
	admin.RegisterRoutes(apiGroup, deps)

	return nil
}

func passThrough(c *gin.Context) {
	c.Next()
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
