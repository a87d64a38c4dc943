package channels

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/pulsegrow-api/api/types"
)

// RegisterRoutes registers channel routes. analyzeMiddleware guards the
// endpoint that calls the YouTube API.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, analyzeMiddleware gin.HandlerFunc) {
	// POST /api/channel/:id/analyze - sync metadata and queue deep analysis
	router.POST("/channel/:id/analyze", analyzeMiddleware, PostAnalyze(deps))

	router.GET("/channel/:id", GetChannel(deps))
	router.GET("/channel/:id/videos", GetVideos(deps))
	router.GET("/channel/:id/insights", GetInsights(deps))
	router.GET("/channels", GetAll(deps))
}
