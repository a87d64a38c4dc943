package types

import (
	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/aggregate"
	"github.com/killallgit/pulsegrow-api/internal/services/channels"
	"github.com/killallgit/pulsegrow-api/internal/services/videos"
)

// Status constants for API responses
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusAnalyzed   = "analyzed"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ChannelAnalyzeResponse is returned once the channel metadata is synced
type ChannelAnalyzeResponse struct {
	Status       string  `json:"status"`
	ChannelID    string  `json:"channel_id"`
	ChannelTitle string  `json:"channel_title"`
	HealthScore  float64 `json:"health_score"`
	VideosQueued int     `json:"videos_queued"`
}

// ChannelResponse wraps a single channel
type ChannelResponse struct {
	BaseResponse
	Channel *models.Channel `json:"channel"`
}

// ChannelsResponse lists channels
type ChannelsResponse struct {
	BaseResponse
	Channels []models.Channel `json:"channels"`
	Count    int              `json:"count"`
}

// VideosResponse lists a channel's videos
type VideosResponse struct {
	BaseResponse
	ChannelID string               `json:"channel_id"`
	Videos    []channels.VideoView `json:"videos"`
	Count     int                  `json:"count"`
}

// ChannelInsightsResponse wraps the channel roll-up
type ChannelInsightsResponse struct {
	BaseResponse
	ChannelID string                     `json:"channel_id"`
	Insights  *aggregate.ChannelInsights `json:"insights"`
}

// ProgressEvent is one server-sent event of a video analysis stream. The
// completed event inlines the analysis result; the error event carries
// Message.
type ProgressEvent struct {
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Total    int    `json:"total"`
	Message  string `json:"message,omitempty"`
	*videos.Result
}

// ResetResponse confirms an admin reset
type ResetResponse struct {
	BaseResponse
}

// VersionResponse describes the running build
type VersionResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	Status    string `json:"status"`
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Database  map[string]interface{} `json:"database"`
}
