package videos

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/pulsegrow-api/api/types"
)

// GetVideo returns a video with its aggregates
// @Summary      Get video detail
// @Description  Stored video with sentiment distribution, lexicon vs classifier comparison and insights.
// @Tags         videos
// @Produce      json
// @Param        id path string true "Video id"
// @Success      200 {object} videos.Detail
// @Failure      404 {object} types.ErrorResponse "Video not synced"
// @Router       /api/video/{id} [get]
func GetVideo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := deps.VideoService.GetVideoDetail(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, detail)
	}
}

// GetSummary summarizes the most liked comments
// @Summary      Top comment summary
// @Description  Summary of the 50 most liked comments, written by the classifier when configured
// @Description  and by rule-based aggregation otherwise.
// @Tags         videos
// @Produce      json
// @Param        id path string true "Video id"
// @Success      200 {object} sentiment.Summary
// @Failure      404 {object} types.ErrorResponse "Video not synced"
// @Router       /api/video/{id}/summary [get]
func GetSummary(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := deps.VideoService.SummarizeTopComments(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, summary)
	}
}
