package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/pulsegrow-api/api/types"
)

const (
	dbHealthy       = "healthy"
	dbUnhealthy     = "unhealthy"
	dbNotConfigured = "not configured"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Service status with database connectivity. Returns 503 when the database is unreachable.
// @Tags         system
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Failure      503 {object} types.HealthResponse
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := types.HealthResponse{
			Status:    types.StatusOK,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Database:  getDatabaseStatus(deps),
		}

		code := http.StatusOK
		if response.Database["status"] == dbUnhealthy {
			response.Status = types.StatusError
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, response)
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) map[string]interface{} {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return map[string]interface{}{"status": dbNotConfigured}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return map[string]interface{}{"status": dbUnhealthy, "error": err.Error()}
	}

	return map[string]interface{}{"status": dbHealthy}
}
