package admin

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/aggregate"
	"github.com/killallgit/pulsegrow-api/internal/services/store"
)

// Repository is the persistence the admin endpoints need
type Repository interface {
	Counts(ctx context.Context) (store.Counts, error)
	ListAllVideos(ctx context.Context) ([]models.Video, error)
	Reset(ctx context.Context) error
}

// Stats are the system-wide totals
type Stats struct {
	TotalChannels          int64   `json:"total_channels"`
	TotalVideos            int64   `json:"total_videos"`
	TotalComments          int64   `json:"total_comments"`
	GlobalSentimentAverage float64 `json:"global_sentiment_average"`
}

type Service struct {
	repository Repository
	logger     *zap.Logger
}

func NewService(repository Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repository: repository, logger: logger}
}

// Stats returns row counts and the mean video sentiment
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.repository.Counts(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := s.repository.ListAllVideos(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalChannels:          counts.Channels,
		TotalVideos:            counts.Videos,
		TotalComments:          counts.Comments,
		GlobalSentimentAverage: aggregate.GlobalAverage(videos),
	}, nil
}

// Reset deletes every comment, video and channel. Nothing is deleted when
// any step fails.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.repository.Reset(ctx); err != nil {
		return fmt.Errorf("resetting database: %w", err)
	}
	s.logger.Warn("Database reset")
	return nil
}
