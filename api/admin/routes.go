package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/pulsegrow-api/api/types"
)

// RegisterRoutes registers admin routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	adminGroup := router.Group("/admin")
	{
		adminGroup.GET("/stats", GetStats(deps))
		adminGroup.DELETE("/reset", DeleteReset(deps))
	}
}
