package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/pulsegrow-api/api/types"
	apperrors "github.com/killallgit/pulsegrow-api/pkg/errors"
)

// GetStats returns system-wide totals
// @Summary      System statistics
// @Description  Channel, video and comment counts with the mean sentiment of all videos.
// @Tags         admin
// @Produce      json
// @Success      200 {object} admin.Stats
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/admin/stats [get]
func GetStats(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := deps.AdminService.Stats(c.Request.Context())
		if err != nil {
			types.SendError(c, apperrors.DatabaseError("stats", err))
			return
		}
		types.SendSuccess(c, stats)
	}
}

// DeleteReset deletes all stored data
// @Summary      Reset database
// @Description  Deletes every comment, video and channel in one transaction.
// @Tags         admin
// @Produce      json
// @Success      200 {object} types.ResetResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/admin/reset [delete]
func DeleteReset(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.AdminService.Reset(c.Request.Context()); err != nil {
			types.SendError(c, apperrors.DatabaseError("reset", err))
			return
		}
		types.SendSuccess(c, types.ResetResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "database reset"},
		})
	}
}
