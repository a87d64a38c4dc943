package videos

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/killallgit/pulsegrow-api/api/types"
	"github.com/killallgit/pulsegrow-api/internal/models"
	videoService "github.com/killallgit/pulsegrow-api/internal/services/videos"
	"github.com/killallgit/pulsegrow-api/pkg/logging"
)

// PostAnalyze analyzes a video and streams progress as server-sent events
// @Summary      Analyze a video
// @Description  Streams `message` events `{"status":"processing","progress":p,"total":t}` after every batch, then one
// @Description  terminal event: `{"status":"completed",...}` with the aggregates or `{"status":"error","message":...}`.
// @Tags         videos
// @Produce      text/event-stream
// @Param        id path string true "Video id"
// @Param        max_comments query int false "Comments to analyze, capped by the configured ceiling" default(500)
// @Success      200 {object} types.ProgressEvent "Event stream"
// @Failure      400 {object} types.ErrorResponse "Invalid max_comments"
// @Failure      404 {object} types.ErrorResponse "Video not synced"
// @Failure      429 {object} types.ErrorResponse "Rate limit exceeded"
// @Router       /api/video/{id}/analyze [post]
func PostAnalyze(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxComments, ok := types.ParseOptionalIntQuery(c, "max_comments", deps.DefaultMaxComments)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		videoID := c.Param("id")
		if _, err := deps.VideoService.GetVideo(ctx, videoID); err != nil {
			types.SendError(c, err)
			return
		}

		events := make(chan types.ProgressEvent, 8)
		go func() {
			defer close(events)
			send := func(ev types.ProgressEvent) {
				select {
				case events <- ev:
				case <-ctx.Done():
				}
			}

			result, err := deps.VideoService.AnalyzeVideo(ctx, videoID, maxComments, func(p videoService.Progress) {
				send(types.ProgressEvent{Status: types.StatusProcessing, Progress: p.Processed, Total: p.Total})
			})
			if err != nil {
				logging.OrNop(deps.Logger).Warn("Video analysis stream ended with error",
					zap.String("video_id", videoID), zap.Error(err))
				send(types.ProgressEvent{Status: types.StatusError, Message: err.Error()})
				return
			}
			send(types.ProgressEvent{
				Status:   types.StatusCompleted,
				Progress: result.Outcome.Processed,
				Total:    result.Outcome.Total,
				Result:   result,
			})
		}()

		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")

		c.Stream(func(io.Writer) bool {
			ev, ok := <-events
			if !ok {
				return false
			}
			c.SSEvent("message", ev)
			return !models.AnalysisStatus(ev.Status).IsTerminal()
		})
	}
}
