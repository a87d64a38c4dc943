package videos

import (
	"context"
	"time"

	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/analysis"
)

// Repository is the persistence the video service needs
type Repository interface {
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	SetVideoStatus(ctx context.Context, id string, status models.AnalysisStatus, message string) error
	FailVideos(ctx context.Context, ids []string, message string) (int64, error)
	CompleteVideo(ctx context.Context, id string, score float64, at time.Time) error
	SaveComments(ctx context.Context, comments []models.Comment) error
	VideoComments(ctx context.Context, videoID string) ([]models.Comment, error)
	ChannelComments(ctx context.Context, channelID string) ([]models.Comment, error)
	UpdateChannelHealth(ctx context.Context, id string, score float64, lastUpdated *time.Time) error
}

// Runner executes one orchestrated comment analysis
type Runner interface {
	Run(ctx context.Context, req analysis.Request, sink analysis.Sink) (*analysis.Outcome, error)
	Limit(requested int) int
}
