package videos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/killallgit/pulsegrow-api/internal/metrics"
	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/aggregate"
	"github.com/killallgit/pulsegrow-api/internal/services/analysis"
	"github.com/killallgit/pulsegrow-api/internal/services/sentiment"
	"github.com/killallgit/pulsegrow-api/internal/services/store"
)

// Option is a functional option for configuring the service
type Option func(*Service)

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records terminal video statuses
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSummarizer enables classifier-written top comment summaries
func WithSummarizer(summarizer sentiment.Summarizer) Option {
	return func(s *Service) {
		s.summarizer = summarizer
	}
}

// Service runs and reads per-video analyses
type Service struct {
	repository Repository
	runner     Runner
	summarizer sentiment.Summarizer
	logger     *zap.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

// NewService creates a video service
func NewService(repository Repository, runner Runner, opts ...Option) *Service {
	s := &Service{
		repository: repository,
		runner:     runner,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeVideo fetches, scores and stores up to maxComments comments of a
// synced video, reporting progress after every batch
func (s *Service) AnalyzeVideo(ctx context.Context, videoID string, maxComments int, progress func(Progress)) (*Result, error) {
	return s.Analyze(ctx, AnalyzeRequest{
		VideoID:     videoID,
		MaxComments: maxComments,
		Progress:    progress,
	})
}

// Analyze runs one video analysis. Whatever happens after the video is
// found, it ends in completed or error.
func (s *Service) Analyze(ctx context.Context, req AnalyzeRequest) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic analyzing video", zap.String("video_id", req.VideoID), zap.Any("panic", r))
			result, err = nil, fmt.Errorf("analysis of %s panicked: %v", req.VideoID, r)
		}
		if err != nil && !errors.Is(err, ErrVideoNotFound) {
			s.markFailed(ctx, req.VideoID, err)
		}
	}()

	video, err := s.getVideo(ctx, req.VideoID)
	if err != nil {
		return nil, err
	}

	if err := s.repository.SetVideoStatus(ctx, video.ID, models.AnalysisProcessing, ""); err != nil {
		return nil, err
	}

	sink := &storeSink{repository: s.repository, progress: req.Progress}
	outcome, err := s.runner.Run(ctx, analysis.Request{
		VideoID:     video.ID,
		MaxComments: req.MaxComments,
		Order:       req.Order,
	}, sink)
	if err != nil {
		return nil, err
	}

	comments, err := s.repository.VideoComments(ctx, video.ID)
	if err != nil {
		return nil, err
	}

	score := aggregate.VideoScore(comments)
	analyzedAt := s.now().UTC()
	if err := s.repository.CompleteVideo(ctx, video.ID, score, analyzedAt); err != nil {
		return nil, err
	}
	s.metrics.ObserveVideo(string(models.AnalysisCompleted))

	video.SentimentScore = score
	video.AnalysisStatus = models.AnalysisCompleted
	video.AnalysisError = ""
	video.AnalyzedAt = &analyzedAt

	var health float64
	if !req.SkipChannelRefresh {
		health, err = s.RefreshChannelHealth(ctx, video.ChannelID, false)
		if err != nil {
			s.logger.Warn("Failed to refresh channel health",
				zap.String("channel_id", video.ChannelID), zap.Error(err))
			err = nil
		}
	}

	s.logger.Info("Video analysis completed",
		zap.String("video_id", video.ID),
		zap.Int("comments", len(comments)),
		zap.Float64("score", score))

	return &Result{
		Video:                video,
		Insights:             aggregate.Insights(comments),
		Distribution:         aggregate.SentimentDistribution(comments),
		Comparison:           aggregate.Compare(comments),
		HealthScore:          health,
		AnalyzedCommentCount: len(comments),
		Outcome:              *outcome,
	}, nil
}

// RefreshChannelHealth recomputes a channel's health score over all of its
// stored comments. touch also stamps last_updated.
func (s *Service) RefreshChannelHealth(ctx context.Context, channelID string, touch bool) (float64, error) {
	comments, err := s.repository.ChannelComments(ctx, channelID)
	if err != nil {
		return 0, err
	}
	health := aggregate.HealthScore(comments)

	var lastUpdated *time.Time
	if touch {
		now := s.now().UTC()
		lastUpdated = &now
	}
	if err := s.repository.UpdateChannelHealth(ctx, channelID, health, lastUpdated); err != nil {
		return 0, err
	}
	return health, nil
}

// GetVideoDetail returns a stored video with its aggregates
func (s *Service) GetVideoDetail(ctx context.Context, videoID string) (*Detail, error) {
	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repository.VideoComments(ctx, video.ID)
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		Video:                video,
		Distribution:         aggregate.SentimentDistribution(comments),
		Comparison:           aggregate.Compare(comments),
		AnalyzedCommentCount: len(comments),
	}
	if video.AnalysisStatus == models.AnalysisCompleted {
		insights := aggregate.Insights(comments)
		detail.Insights = &insights
	}
	return detail, nil
}

// SummarizeTopComments summarizes the most liked comments of a video. The
// rule-based summary is used without a classifier or when it fails.
func (s *Service) SummarizeTopComments(ctx context.Context, videoID string) (*sentiment.Summary, error) {
	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repository.VideoComments(ctx, video.ID)
	if err != nil {
		return nil, err
	}
	top := aggregate.TopComments(comments, aggregate.TopCommentCount)

	if s.summarizer != nil && len(top) > 0 {
		input := make([]sentiment.SummaryComment, len(top))
		for i, c := range top {
			input[i] = sentiment.SummaryComment{Text: c.Text, Author: c.Author, LikeCount: c.LikeCount}
		}
		summary, err := s.summarizer.Summarize(ctx, input)
		if err == nil {
			return summary, nil
		}
		s.logger.Warn("Classifier summary failed, using rule-based summary",
			zap.String("video_id", video.ID), zap.Error(err))
	}
	return aggregate.FallbackSummary(top), nil
}

func (s *Service) getVideo(ctx context.Context, videoID string) (*models.Video, error) {
	video, err := s.repository.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
		}
		return nil, err
	}
	return video, nil
}

// markFailed moves a processing video to error on a context that outlives
// a canceled or expired request
func (s *Service) markFailed(ctx context.Context, videoID string, cause error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	n, err := s.repository.FailVideos(ctx, []string{videoID}, cause.Error())
	if err != nil {
		s.logger.Error("Failed to record analysis error",
			zap.String("video_id", videoID), zap.Error(err))
	}
	if n > 0 {
		s.metrics.ObserveVideo(string(models.AnalysisError))
	}
	s.logger.Warn("Video analysis failed", zap.String("video_id", videoID), zap.Error(cause))
}

// storeSink commits scored batches through the repository
type storeSink struct {
	repository Repository
	progress   func(Progress)
}

func (k *storeSink) CommitBatch(ctx context.Context, _ string, comments []models.Comment) error {
	return k.repository.SaveComments(ctx, comments)
}

func (k *storeSink) Progress(processed, total int) {
	if k.progress != nil {
		k.progress(Progress{Processed: processed, Total: total})
	}
}

// GetVideo returns a stored video
func (s *Service) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	return s.getVideo(ctx, videoID)
}
