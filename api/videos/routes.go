package videos

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/pulsegrow-api/api/types"
)

// RegisterRoutes registers video routes. analyzeMiddleware guards the
// endpoint that calls the YouTube API and the classifier.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, analyzeMiddleware gin.HandlerFunc) {
	router.GET("/video/:id", GetVideo(deps))
	router.GET("/video/:id/summary", GetSummary(deps))

	// POST /api/video/:id/analyze - server-sent progress stream
	router.POST("/video/:id/analyze", analyzeMiddleware, PostAnalyze(deps))
}
