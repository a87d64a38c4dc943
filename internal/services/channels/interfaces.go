package channels

import (
	"context"

	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/videos"
)

// Repository is the persistence the channel workflow needs
type Repository interface {
	UpsertChannel(ctx context.Context, channel *models.Channel) error
	QueueVideos(ctx context.Context, videos []models.Video) error
	FailVideos(ctx context.Context, ids []string, message string) (int64, error)
	GetChannel(ctx context.Context, id string) (*models.Channel, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	ListVideos(ctx context.Context, channelID string) ([]models.Video, error)
	CommentsByVideo(ctx context.Context, videoIDs []string) (map[string][]models.Comment, error)
}

// VideoAnalyzer runs the per-video analysis for the deep analysis phase
type VideoAnalyzer interface {
	Analyze(ctx context.Context, req videos.AnalyzeRequest) (*videos.Result, error)
	RefreshChannelHealth(ctx context.Context, channelID string, touch bool) (float64, error)
}
