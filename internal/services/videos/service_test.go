package videos

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/pulsegrow-api/internal/database"
	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/analysis"
	"github.com/killallgit/pulsegrow-api/internal/services/sentiment"
	"github.com/killallgit/pulsegrow-api/internal/services/store"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
)

type fakeSource struct {
	comments map[string][]youtube.CommentInfo
	err      error
}

func (f *fakeSource) GetChannel(context.Context, string) (*youtube.ChannelInfo, error) {
	return nil, youtube.ErrNotFound
}

func (f *fakeSource) GetRecentVideos(context.Context, string, int) ([]youtube.VideoInfo, error) {
	return nil, nil
}

func (f *fakeSource) GetComments(_ context.Context, videoID string, limit int, _ youtube.Order) ([]youtube.CommentInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	comments := f.comments[videoID]
	if len(comments) > limit {
		comments = comments[:limit]
	}
	return comments, nil
}

type fakeSummarizer struct {
	summary *sentiment.Summary
	err     error
	got     []sentiment.SummaryComment
}

func (f *fakeSummarizer) Summarize(_ context.Context, comments []sentiment.SummaryComment) (*sentiment.Summary, error) {
	f.got = comments
	return f.summary, f.err
}

func makeComments(videoID string, texts ...string) []youtube.CommentInfo {
	out := make([]youtube.CommentInfo, len(texts))
	for i, text := range texts {
		out[i] = youtube.CommentInfo{
			ID:        fmt.Sprintf("%s_c%d", videoID, i),
			VideoID:   videoID,
			Text:      text,
			Author:    "viewer",
			LikeCount: int64(i),
		}
	}
	return out
}

func setupTestService(t *testing.T, source youtube.Source, opts ...Option) (*Service, *store.Repository) {
	t.Helper()
	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(nil, models.AllModels()...))
	t.Cleanup(func() { _ = db.Close() })

	repo := store.NewRepository(db.DB)
	ctx := context.Background()
	require.NoError(t, repo.UpsertChannel(ctx, &models.Channel{ID: "UC1", Title: "Demo"}))
	require.NoError(t, repo.QueueVideos(ctx, []models.Video{
		{ID: "v1", ChannelID: "UC1", Title: "First"},
		{ID: "v2", ChannelID: "UC1", Title: "Second"},
	}))

	runner := analysis.New(source, sentiment.NewScorer(), analysis.Config{BatchSize: 2, Workers: 2})
	return NewService(repo, runner, opts...), repo
}

func TestService_AnalyzeVideo(t *testing.T) {
	source := &fakeSource{comments: map[string][]youtube.CommentInfo{
		"v1": makeComments("v1", "semma video", "mass editing", "kevalam audio", "very good"),
	}}
	svc, repo := setupTestService(t, source)

	var mu sync.Mutex
	var events []Progress
	result, err := svc.AnalyzeVideo(context.Background(), "v1", 0, func(p Progress) {
		mu.Lock()
		events = append(events, p)
		mu.Unlock()
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.AnalyzedCommentCount)
	assert.Equal(t, analysis.Outcome{Processed: 4, Total: 4}, result.Outcome)
	assert.Equal(t, models.AnalysisCompleted, result.Video.AnalysisStatus)
	require.NotNil(t, result.Comparison)
	assert.InDelta(t, 1.0, result.Distribution.Positive+result.Distribution.Neutral+result.Distribution.Negative, 1e-9)

	require.Len(t, events, 2)
	assert.Equal(t, Progress{Processed: 4, Total: 4}, events[1])

	video, err := repo.GetVideo(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisCompleted, video.AnalysisStatus)
	assert.NotNil(t, video.AnalyzedAt)
	assert.InDelta(t, result.Video.SentimentScore, video.SentimentScore, 1e-9)

	channel, err := repo.GetChannel(context.Background(), "UC1")
	require.NoError(t, err)
	assert.InDelta(t, result.HealthScore, channel.HealthScore, 1e-9)
	assert.Nil(t, channel.LastUpdated)
}

func TestService_AnalyzeVideoRerunOverwrites(t *testing.T) {
	source := &fakeSource{comments: map[string][]youtube.CommentInfo{
		"v1": makeComments("v1", "semma", "mid"),
	}}
	svc, repo := setupTestService(t, source)
	ctx := context.Background()

	_, err := svc.AnalyzeVideo(ctx, "v1", 0, nil)
	require.NoError(t, err)
	_, err = svc.AnalyzeVideo(ctx, "v1", 0, nil)
	require.NoError(t, err)

	comments, err := repo.VideoComments(ctx, "v1")
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestService_AnalyzeVideoNotFound(t *testing.T) {
	svc, _ := setupTestService(t, &fakeSource{})

	_, err := svc.AnalyzeVideo(context.Background(), "missing", 0, nil)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestService_AnalyzeVideoFetchFailure(t *testing.T) {
	svc, repo := setupTestService(t, &fakeSource{err: errors.New("quota exceeded")})

	result, err := svc.AnalyzeVideo(context.Background(), "v1", 0, nil)
	require.NoError(t, err)
	assert.Zero(t, result.AnalyzedCommentCount)

	video, err := repo.GetVideo(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisCompleted, video.AnalysisStatus)
	assert.Zero(t, video.SentimentScore)
}

func TestService_AnalyzeVideoUnknownToSource(t *testing.T) {
	svc, repo := setupTestService(t, &fakeSource{err: youtube.ErrNotFound})

	_, err := svc.AnalyzeVideo(context.Background(), "v1", 0, nil)
	require.ErrorIs(t, err, youtube.ErrNotFound)

	video, err := repo.GetVideo(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisError, video.AnalysisStatus)
	assert.Contains(t, video.AnalysisError, "not found")
}

func TestService_AnalyzeExpiredContext(t *testing.T) {
	svc, repo := setupTestService(t, &fakeSource{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	_, err := svc.Analyze(ctx, AnalyzeRequest{VideoID: "v1"})
	require.ErrorIs(t, err, context.DeadlineExceeded)

	video, err := repo.GetVideo(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisError, video.AnalysisStatus)
	assert.NotEmpty(t, video.AnalysisError)
}

// cancelingSource cancels the request while comments are being fetched
type cancelingSource struct {
	fakeSource
	cancel context.CancelFunc
}

func (c *cancelingSource) GetComments(ctx context.Context, _ string, _ int, _ youtube.Order) ([]youtube.CommentInfo, error) {
	c.cancel()
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestService_AnalyzeVideoCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc, repo := setupTestService(t, &cancelingSource{cancel: cancel})

	_, err := svc.AnalyzeVideo(ctx, "v1", 0, nil)
	require.ErrorIs(t, err, context.Canceled)

	video, err := repo.GetVideo(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisError, video.AnalysisStatus)
}

func TestService_AnalyzeSkipsChannelRefresh(t *testing.T) {
	source := &fakeSource{comments: map[string][]youtube.CommentInfo{
		"v1": makeComments("v1", "semma", "goated"),
	}}
	svc, repo := setupTestService(t, source)

	result, err := svc.Analyze(context.Background(), AnalyzeRequest{VideoID: "v1", SkipChannelRefresh: true})
	require.NoError(t, err)
	assert.Zero(t, result.HealthScore)

	channel, err := repo.GetChannel(context.Background(), "UC1")
	require.NoError(t, err)
	assert.Zero(t, channel.HealthScore)

	health, err := svc.RefreshChannelHealth(context.Background(), "UC1", true)
	require.NoError(t, err)
	assert.Greater(t, health, 0.0)

	channel, err = repo.GetChannel(context.Background(), "UC1")
	require.NoError(t, err)
	assert.InDelta(t, health, channel.HealthScore, 1e-9)
	assert.NotNil(t, channel.LastUpdated)
}

func TestService_GetVideoDetail(t *testing.T) {
	source := &fakeSource{comments: map[string][]youtube.CommentInfo{
		"v1": makeComments("v1", "semma", "kevalam"),
	}}
	svc, _ := setupTestService(t, source)
	ctx := context.Background()

	detail, err := svc.GetVideoDetail(ctx, "v2")
	require.NoError(t, err)
	assert.Nil(t, detail.Comparison)
	assert.Nil(t, detail.Insights)
	assert.Zero(t, detail.AnalyzedCommentCount)

	_, err = svc.AnalyzeVideo(ctx, "v1", 0, nil)
	require.NoError(t, err)

	detail, err = svc.GetVideoDetail(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, 2, detail.AnalyzedCommentCount)
	require.NotNil(t, detail.Comparison)
	require.NotNil(t, detail.Insights)
	assert.InDelta(t, 0.5, detail.Distribution.Positive, 1e-9)

	_, err = svc.GetVideoDetail(ctx, "missing")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestService_SummarizeTopComments(t *testing.T) {
	source := &fakeSource{comments: map[string][]youtube.CommentInfo{
		"v1": makeComments("v1", "semma", "kevalam", "mass"),
	}}

	t.Run("rule-based without a summarizer", func(t *testing.T) {
		svc, _ := setupTestService(t, source)
		_, err := svc.AnalyzeVideo(context.Background(), "v1", 0, nil)
		require.NoError(t, err)

		summary, err := svc.SummarizeTopComments(context.Background(), "v1")
		require.NoError(t, err)
		assert.Equal(t, models.SourceLexicon, summary.Source)
	})

	t.Run("classifier summary", func(t *testing.T) {
		summarizer := &fakeSummarizer{summary: &sentiment.Summary{SentimentSummary: "Loved it", Source: models.SourceClassifier}}
		svc, _ := setupTestService(t, source, WithSummarizer(summarizer))
		_, err := svc.AnalyzeVideo(context.Background(), "v1", 0, nil)
		require.NoError(t, err)

		summary, err := svc.SummarizeTopComments(context.Background(), "v1")
		require.NoError(t, err)
		assert.Equal(t, "Loved it", summary.SentimentSummary)
		require.Len(t, summarizer.got, 3)
		assert.Equal(t, int64(2), summarizer.got[0].LikeCount)
	})

	t.Run("classifier failure falls back", func(t *testing.T) {
		summarizer := &fakeSummarizer{err: sentiment.ErrNoJSONObject}
		svc, _ := setupTestService(t, source, WithSummarizer(summarizer))
		_, err := svc.AnalyzeVideo(context.Background(), "v1", 0, nil)
		require.NoError(t, err)

		summary, err := svc.SummarizeTopComments(context.Background(), "v1")
		require.NoError(t, err)
		assert.Equal(t, models.SourceLexicon, summary.Source)
	})

	t.Run("unknown video", func(t *testing.T) {
		svc, _ := setupTestService(t, source)
		_, err := svc.SummarizeTopComments(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrVideoNotFound)
	})
}

func TestService_MarkFailed(t *testing.T) {
	svc, repo := setupTestService(t, &fakeSource{})
	ctx := context.Background()

	svc.markFailed(ctx, "v2", errors.New("boom"))

	video, err := repo.GetVideo(ctx, "v2")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisError, video.AnalysisStatus)
	assert.Equal(t, "boom", video.AnalysisError)

	// a finished analysis is never overwritten
	require.NoError(t, repo.CompleteVideo(ctx, "v1", 0.5, time.Now().UTC()))
	svc.markFailed(ctx, "v1", errors.New("late"))

	video, err = repo.GetVideo(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisCompleted, video.AnalysisStatus)
}
