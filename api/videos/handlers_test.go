package videos

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/pulsegrow-api/api/types"
	"github.com/killallgit/pulsegrow-api/internal/database"
	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/analysis"
	"github.com/killallgit/pulsegrow-api/internal/services/sentiment"
	"github.com/killallgit/pulsegrow-api/internal/services/store"
	videoService "github.com/killallgit/pulsegrow-api/internal/services/videos"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
)

const demoVideoID = "Ks-_Mh1QhMc"

func setupTestServer(t *testing.T) (*httptest.Server, *store.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(nil, models.AllModels()...))
	t.Cleanup(func() { _ = db.Close() })

	repo := store.NewRepository(db.DB)
	ctx := context.Background()
	require.NoError(t, repo.UpsertChannel(ctx, &models.Channel{ID: "UCdemo", Title: "Demo"}))
	require.NoError(t, repo.QueueVideos(ctx, []models.Video{{ID: demoVideoID, ChannelID: "UCdemo", Title: "Demo"}}))

	runner := analysis.New(youtube.NewDemoSource(), sentiment.NewScorer(), analysis.Config{BatchSize: 3, Workers: 2})
	deps := &types.Dependencies{
		DB:                 db,
		VideoService:       videoService.NewService(repo, runner),
		DefaultMaxComments: 500,
	}

	router := gin.New()
	RegisterRoutes(router.Group("/api"), deps, func(c *gin.Context) { c.Next() })
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, repo
}

// readEvents collects the data frames of an event stream
func readEvents(t *testing.T, resp *http.Response) []types.ProgressEvent {
	t.Helper()
	var events []types.ProgressEvent
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			assert.Equal(t, "message", strings.TrimSpace(strings.TrimPrefix(line, "event:")))
			continue
		}
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		var ev types.ProgressEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, "data:"))), &ev))
		events = append(events, ev)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestPostAnalyzeStream(t *testing.T) {
	srv, repo := setupTestServer(t)

	resp, err := http.Post(srv.URL+"/api/video/"+demoVideoID+"/analyze", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := readEvents(t, resp)
	require.Len(t, events, 4)

	last := 0
	for _, ev := range events[:3] {
		assert.Equal(t, types.StatusProcessing, ev.Status)
		assert.Equal(t, 8, ev.Total)
		assert.Greater(t, ev.Progress, last)
		last = ev.Progress
	}
	assert.Equal(t, 8, last)

	done := events[3]
	assert.Equal(t, types.StatusCompleted, done.Status)
	require.NotNil(t, done.Result)
	assert.Equal(t, 8, done.AnalyzedCommentCount)
	require.NotNil(t, done.Video)
	assert.Equal(t, models.AnalysisCompleted, done.Video.AnalysisStatus)

	video, err := repo.GetVideo(context.Background(), demoVideoID)
	require.NoError(t, err)
	assert.Equal(t, models.AnalysisCompleted, video.AnalysisStatus)
}

func TestPostAnalyzeMaxComments(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, err := http.Post(srv.URL+"/api/video/"+demoVideoID+"/analyze?max_comments=2", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	events := readEvents(t, resp)
	require.Len(t, events, 2)
	assert.Equal(t, types.ProgressEvent{Status: types.StatusProcessing, Progress: 2, Total: 2}, events[0])
	assert.Equal(t, 2, events[1].AnalyzedCommentCount)
}

func TestPostAnalyzeErrors(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, err := http.Post(srv.URL+"/api/video/unknown/analyze", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/video/"+demoVideoID+"/analyze?max_comments=many", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetVideoAndSummary(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, err := http.Get(srv.URL + "/api/video/" + demoVideoID)
	require.NoError(t, err)
	var before videoService.Detail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&before))
	resp.Body.Close()
	assert.Zero(t, before.AnalyzedCommentCount)
	assert.Nil(t, before.Comparison)

	resp, err = http.Post(srv.URL+"/api/video/"+demoVideoID+"/analyze", "application/json", nil)
	require.NoError(t, err)
	readEvents(t, resp)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/video/" + demoVideoID)
	require.NoError(t, err)
	var after videoService.Detail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&after))
	resp.Body.Close()
	assert.Equal(t, 8, after.AnalyzedCommentCount)
	assert.NotNil(t, after.Comparison)
	assert.NotNil(t, after.Insights)

	resp, err = http.Get(srv.URL + "/api/video/" + demoVideoID + "/summary")
	require.NoError(t, err)
	var summary sentiment.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	resp.Body.Close()
	assert.Equal(t, models.SourceLexicon, summary.Source)
	assert.NotEmpty(t, summary.SentimentSummary)

	resp, err = http.Get(srv.URL + "/api/video/unknown/summary")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
