package channels

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/aggregate"
	"github.com/killallgit/pulsegrow-api/internal/services/store"
	"github.com/killallgit/pulsegrow-api/internal/services/videos"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
)

// Config controls the two-phase channel workflow
type Config struct {
	RecentVideos     int
	CommentsPerVideo int
	Workers          int
	AnalysisTimeout  time.Duration
}

func (c *Config) applyDefaults() {
	if c.RecentVideos <= 0 || c.RecentVideos > 50 {
		c.RecentVideos = 10
	}
	if c.CommentsPerVideo <= 0 {
		c.CommentsPerVideo = 50
	}
	if c.Workers <= 0 {
		c.Workers = 5
	}
	if c.AnalysisTimeout <= 0 {
		c.AnalysisTimeout = 10 * time.Minute
	}
}

// SyncResult is returned once the metadata phase has committed
type SyncResult struct {
	ChannelID    string  `json:"channel_id"`
	ChannelTitle string  `json:"channel_title"`
	HealthScore  float64 `json:"health_score"`
	VideosQueued int     `json:"videos_queued"`
}

// VideoView is a stored video with its aggregates once it is analyzed
type VideoView struct {
	models.Video
	Distribution *aggregate.Distribution  `json:"distribution,omitempty"`
	Insights     *aggregate.VideoInsights `json:"insights,omitempty"`
}

// Service runs the channel workflow: a synchronous metadata sync followed
// by deep analysis of the recent videos in the background
type Service struct {
	repository Repository
	source     youtube.Source
	videos     VideoAnalyzer
	config     Config
	logger     *zap.Logger

	wg sync.WaitGroup
}

// NewService creates a channel service
func NewService(repository Repository, source youtube.Source, analyzer VideoAnalyzer, cfg Config, logger *zap.Logger) *Service {
	cfg.applyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repository: repository,
		source:     source,
		videos:     analyzer,
		config:     cfg,
		logger:     logger,
	}
}

// ResolveChannel looks up a channel id, @handle or channel URL
func (s *Service) ResolveChannel(ctx context.Context, ref string) (*youtube.ChannelInfo, error) {
	if _, err := youtube.ParseChannelRef(ref); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}

	info, err := s.source.GetChannel(ctx, ref)
	switch {
	case errors.Is(err, youtube.ErrNotFound):
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, ref)
	case errors.Is(err, youtube.ErrInvalidReference):
		return nil, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	case err != nil:
		return nil, fmt.Errorf("resolving channel %s: %w", ref, err)
	}
	return info, nil
}

// AnalyzeChannel syncs channel and recent video metadata, then queues the
// videos for deep analysis. It returns after the metadata is committed;
// the analysis keeps running after ctx is canceled.
func (s *Service) AnalyzeChannel(ctx context.Context, ref string) (*SyncResult, error) {
	info, err := s.ResolveChannel(ctx, ref)
	if err != nil {
		return nil, err
	}

	channel := &models.Channel{
		ID:           info.ID,
		Title:        info.Title,
		ThumbnailURL: info.ThumbnailURL,
	}
	if err := s.repository.UpsertChannel(ctx, channel); err != nil {
		return nil, err
	}

	recent, err := s.source.GetRecentVideos(ctx, info.ID, s.config.RecentVideos)
	switch {
	case err == nil:
	case errors.Is(err, youtube.ErrNotFound):
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, ref)
	case ctx.Err() != nil:
		return nil, fmt.Errorf("fetching recent videos for %s: %w", info.ID, err)
	default:
		s.logger.Warn("Recent video fetch failed, syncing no videos",
			zap.String("channel_id", info.ID), zap.Error(err))
		recent = nil
	}

	queued := make([]models.Video, len(recent))
	ids := make([]string, len(recent))
	for i, v := range recent {
		queued[i] = models.Video{
			ID:           v.ID,
			ChannelID:    info.ID,
			Title:        v.Title,
			ThumbnailURL: v.ThumbnailURL,
			PublishedAt:  v.PublishedAt,
			ViewCount:    v.ViewCount,
			LikeCount:    v.LikeCount,
			CommentCount: v.CommentCount,
		}
		ids[i] = v.ID
	}
	if err := s.repository.QueueVideos(ctx, queued); err != nil {
		return nil, err
	}

	health, err := s.videos.RefreshChannelHealth(ctx, info.ID, false)
	if err != nil {
		s.failVideos(ctx, ids, fmt.Sprintf("channel sync failed: %v", err))
		return nil, err
	}

	s.logger.Info("Channel synced, starting deep analysis",
		zap.String("channel_id", info.ID),
		zap.Int("videos", len(ids)))
	s.startDeepAnalysis(ctx, info.ID, ids)

	return &SyncResult{
		ChannelID:    info.ID,
		ChannelTitle: info.Title,
		HealthScore:  health,
		VideosQueued: len(ids),
	}, nil
}

// Wait blocks until all background analyses have finished
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) startDeepAnalysis(ctx context.Context, channelID string, videoIDs []string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Panic in channel analysis",
					zap.String("channel_id", channelID), zap.Any("panic", r))
			}
		}()

		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.AnalysisTimeout)
		defer cancel()

		g := new(errgroup.Group)
		g.SetLimit(s.config.Workers)
		for _, id := range videoIDs {
			g.Go(func() error {
				s.analyzeVideo(bgCtx, id)
				return nil
			})
		}
		_ = g.Wait()

		// the analysis deadline may have passed, the roll-up still runs
		refreshCtx, cancelRefresh := context.WithTimeout(context.WithoutCancel(bgCtx), 30*time.Second)
		defer cancelRefresh()
		if bgCtx.Err() != nil {
			s.failVideos(refreshCtx, videoIDs, "channel analysis did not finish: "+bgCtx.Err().Error())
		}
		health, err := s.videos.RefreshChannelHealth(refreshCtx, channelID, true)
		if err != nil {
			s.logger.Error("Failed to update channel health",
				zap.String("channel_id", channelID), zap.Error(err))
			return
		}
		s.logger.Info("Channel analysis finished",
			zap.String("channel_id", channelID),
			zap.Float64("health_score", health))
	}()
}

func (s *Service) analyzeVideo(ctx context.Context, videoID string) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic analyzing channel video",
				zap.String("video_id", videoID), zap.Any("panic", r))
			err = fmt.Errorf("analysis panicked: %v", r)
		}
		if err != nil {
			s.logger.Warn("Video analysis failed",
				zap.String("video_id", videoID), zap.Error(err))
			s.failVideos(ctx, []string{videoID}, err.Error())
		}
	}()

	_, err = s.videos.Analyze(ctx, videos.AnalyzeRequest{
		VideoID:            videoID,
		MaxComments:        s.config.CommentsPerVideo,
		Order:              youtube.OrderRelevance,
		SkipChannelRefresh: true,
	})
}

// failVideos moves videos that are still processing to error. It writes on
// a context detached from ctx's cancellation.
func (s *Service) failVideos(ctx context.Context, ids []string, message string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	n, err := s.repository.FailVideos(ctx, ids, message)
	if err != nil {
		s.logger.Error("Failed to record analysis error",
			zap.Strings("video_ids", ids), zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Warn("Videos left unfinished marked as error",
			zap.Int64("videos", n), zap.String("reason", message))
	}
}

// GetChannel returns a stored channel
func (s *Service) GetChannel(ctx context.Context, id string) (*models.Channel, error) {
	channel, err := s.repository.GetChannel(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, id)
		}
		return nil, err
	}
	return channel, nil
}

// ListChannels returns every stored channel
func (s *Service) ListChannels(ctx context.Context) ([]models.Channel, error) {
	return s.repository.ListChannels(ctx)
}

// ListVideos returns a channel's videos, newest first. Completed videos
// carry their distribution and insights.
func (s *Service) ListVideos(ctx context.Context, channelID string) ([]VideoView, error) {
	if _, err := s.GetChannel(ctx, channelID); err != nil {
		return nil, err
	}
	stored, err := s.repository.ListVideos(ctx, channelID)
	if err != nil {
		return nil, err
	}

	var completed []string
	for _, v := range stored {
		if v.AnalysisStatus == models.AnalysisCompleted {
			completed = append(completed, v.ID)
		}
	}
	byVideo, err := s.repository.CommentsByVideo(ctx, completed)
	if err != nil {
		return nil, err
	}

	views := make([]VideoView, len(stored))
	for i, v := range stored {
		views[i] = VideoView{Video: v}
		if v.AnalysisStatus != models.AnalysisCompleted {
			continue
		}
		comments := byVideo[v.ID]
		distribution := aggregate.SentimentDistribution(comments)
		insights := aggregate.Insights(comments)
		views[i].Distribution = &distribution
		views[i].Insights = &insights
	}
	return views, nil
}

// GetInsights rolls up the channel's latest analyzed videos
func (s *Service) GetInsights(ctx context.Context, channelID string) (*aggregate.ChannelInsights, error) {
	if _, err := s.GetChannel(ctx, channelID); err != nil {
		return nil, err
	}
	stored, err := s.repository.ListVideos(ctx, channelID)
	if err != nil {
		return nil, err
	}

	recent := aggregate.LatestCompleted(stored, aggregate.ChannelWindow)
	ids := make([]string, len(recent))
	for i, v := range recent {
		ids[i] = v.ID
	}
	byVideo, err := s.repository.CommentsByVideo(ctx, ids)
	if err != nil {
		return nil, err
	}

	insights := aggregate.ChannelRollup(stored, byVideo)
	return &insights, nil
}
