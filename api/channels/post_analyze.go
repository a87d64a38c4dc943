package channels

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/killallgit/pulsegrow-api/api/types"
	"github.com/killallgit/pulsegrow-api/pkg/logging"
)

// PostAnalyze runs the two-phase channel workflow
// @Summary      Analyze a channel
// @Description  Syncs the channel and its most recent videos, then analyzes each video's comments in the background.
// @Description  Returns once the metadata is stored; poll the videos endpoint to follow the analysis.
// @Tags         channels
// @Produce      json
// @Param        id path string true "Channel id (UC...), @handle, or URL-escaped channel URL" example(@mkbhd)
// @Success      200 {object} types.ChannelAnalyzeResponse "Channel synced, videos queued"
// @Failure      400 {object} types.ErrorResponse "Invalid channel reference"
// @Failure      404 {object} types.ErrorResponse "Channel not found on YouTube"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} types.ErrorResponse "Sync failed"
// @Router       /api/channel/{id}/analyze [post]
func PostAnalyze(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("id")

		result, err := deps.ChannelService.AnalyzeChannel(c.Request.Context(), ref)
		if err != nil {
			logging.OrNop(deps.Logger).Warn("Channel analysis failed", zap.String("ref", ref), zap.Error(err))
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.ChannelAnalyzeResponse{
			Status:       types.StatusAnalyzed,
			ChannelID:    result.ChannelID,
			ChannelTitle: result.ChannelTitle,
			HealthScore:  result.HealthScore,
			VideosQueued: result.VideosQueued,
		})
	}
}
