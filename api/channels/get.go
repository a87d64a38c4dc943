package channels

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/pulsegrow-api/api/types"
)

// GetChannel returns a stored channel
// @Summary      Get channel
// @Description  Returns the stored channel with its health score in [-1, 1].
// @Tags         channels
// @Produce      json
// @Param        id path string true "Channel id"
// @Success      200 {object} types.ChannelResponse
// @Failure      404 {object} types.ErrorResponse "Channel not analyzed yet"
// @Router       /api/channel/{id} [get]
func GetChannel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		channel, err := deps.ChannelService.GetChannel(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.ChannelResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Channel:      channel,
		})
	}
}

// GetVideos lists a channel's videos
// @Summary      List channel videos
// @Description  Videos newest first. Completed videos include their sentiment distribution and insights.
// @Tags         channels
// @Produce      json
// @Param        id path string true "Channel id"
// @Success      200 {object} types.VideosResponse
// @Failure      404 {object} types.ErrorResponse "Channel not analyzed yet"
// @Router       /api/channel/{id}/videos [get]
func GetVideos(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("id")
		views, err := deps.ChannelService.ListVideos(c.Request.Context(), channelID)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.VideosResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			ChannelID:    channelID,
			Videos:       views,
			Count:        len(views),
		})
	}
}

// GetInsights returns the channel roll-up
// @Summary      Channel insights
// @Description  Trend, emoji usage, top topics and recommendations over the latest analyzed videos.
// @Tags         channels
// @Produce      json
// @Param        id path string true "Channel id"
// @Success      200 {object} types.ChannelInsightsResponse
// @Failure      404 {object} types.ErrorResponse "Channel not analyzed yet"
// @Router       /api/channel/{id}/insights [get]
func GetInsights(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		channelID := c.Param("id")
		insights, err := deps.ChannelService.GetInsights(c.Request.Context(), channelID)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.ChannelInsightsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			ChannelID:    channelID,
			Insights:     insights,
		})
	}
}

// GetAll lists every analyzed channel
// @Summary      List channels
// @Tags         channels
// @Produce      json
// @Success      200 {object} types.ChannelsResponse
// @Router       /api/channels [get]
func GetAll(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		channels, err := deps.ChannelService.ListChannels(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.ChannelsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Channels:     channels,
			Count:        len(channels),
		})
	}
}
