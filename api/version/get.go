package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/pulsegrow-api/api/types"
)

// AppName is reported by the version endpoint
const AppName = "PulseGrow API"

// Get handles version requests
// @Summary      Build information
// @Tags         system
// @Produce      json
// @Success      200 {object} types.VersionResponse
// @Router       /version [get]
func Get(build types.BuildInfo) gin.HandlerFunc {
	response := types.VersionResponse{
		Name:      AppName,
		Version:   build.Version,
		GitCommit: build.GitCommit,
		BuildTime: build.BuildTime,
		Status:    "running",
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, response)
	}
}
