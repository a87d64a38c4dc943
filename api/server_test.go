package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/pulsegrow-api/api/types"
	"github.com/killallgit/pulsegrow-api/internal/database"
	"github.com/killallgit/pulsegrow-api/internal/metrics"
	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/admin"
	"github.com/killallgit/pulsegrow-api/internal/services/analysis"
	"github.com/killallgit/pulsegrow-api/internal/services/channels"
	"github.com/killallgit/pulsegrow-api/internal/services/sentiment"
	"github.com/killallgit/pulsegrow-api/internal/services/store"
	"github.com/killallgit/pulsegrow-api/internal/services/videos"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
	"github.com/killallgit/pulsegrow-api/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		RateLimiting: config.RateLimitConfig{
			Enabled:      true,
			ReadRPS:      100,
			ReadBurst:    100,
			AnalyzeRPS:   1,
			AnalyzeBurst: 1,
		},
		Monitoring: config.MonitoringConfig{Enabled: true, MetricsPath: "/metrics"},
	}
}

func setupServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(nil, models.AllModels()...))
	t.Cleanup(func() { _ = db.Close() })

	repo := store.NewRepository(db.DB)
	source := youtube.NewDemoSource()
	videoService := videos.NewService(repo, analysis.New(source, sentiment.NewScorer(), analysis.Config{}))
	channelService := channels.NewService(repo, source, videoService, channels.Config{}, nil)
	t.Cleanup(channelService.Wait)

	server := NewServer(cfg)
	server.SetDependencies(&types.Dependencies{
		DB:             db,
		ChannelService: channelService,
		VideoService:   videoService,
		AdminService:   admin.NewService(repo, nil),
		Metrics:        metrics.New(),
		Build:          types.BuildInfo{Version: "test"},
	})
	require.NoError(t, server.Initialize())
	t.Cleanup(func() { _ = server.Shutdown(context.Background()) })
	return server
}

func serve(s *Server, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestServerRoutes(t *testing.T) {
	server := setupServer(t, testConfig())

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"version", http.MethodGet, "/version", http.StatusOK},
		{"root", http.MethodGet, "/", http.StatusOK},
		{"docs redirect", http.MethodGet, "/docs", http.StatusMovedPermanently},
		{"channels", http.MethodGet, "/api/channels", http.StatusOK},
		{"missing channel", http.MethodGet, "/api/channel/UCnone", http.StatusNotFound},
		{"missing video", http.MethodGet, "/api/video/none", http.StatusNotFound},
		{"stats", http.MethodGet, "/api/admin/stats", http.StatusOK},
		{"reset", http.MethodDelete, "/api/admin/reset", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nothing", http.StatusNotFound},
		{"preflight", http.MethodOptions, "/api/channels", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(server, tt.method, tt.path)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestServerNotFoundBody(t *testing.T) {
	server := setupServer(t, testConfig())

	w := serve(server, http.MethodGet, "/nowhere")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "/nowhere", body["path"])
}

func TestServerMetrics(t *testing.T) {
	server := setupServer(t, testConfig())

	serve(server, http.MethodGet, "/api/channels")
	w := serve(server, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/api/channels"`)
}

func TestServerMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Monitoring.Enabled = false
	server := setupServer(t, cfg)

	w := serve(server, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServerAnalyzeRateLimit(t *testing.T) {
	server := setupServer(t, testConfig())

	first := serve(server, http.MethodPost, "/api/video/none/analyze")
	assert.Equal(t, http.StatusNotFound, first.Code)

	second := serve(server, http.MethodPost, "/api/video/none/analyze")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, "API_RATE_LIMIT", body.Code)
	assert.Equal(t, types.StatusError, body.Status)

	// reads have their own budget
	read := serve(server, http.MethodGet, "/api/channels")
	assert.Equal(t, http.StatusOK, read.Code)
}

func TestServerRateLimitDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimiting.Enabled = false
	server := setupServer(t, cfg)

	for i := 0; i < 3; i++ {
		w := serve(server, http.MethodPost, "/api/video/none/analyze")
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestServerAnalyzeEscapedChannelURL(t *testing.T) {
	server := setupServer(t, testConfig())

	w := serve(server, http.MethodPost, "/api/channel/https:%2F%2Fwww.youtube.com%2Fchannel%2FUCdemo/analyze")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "UCdemo", body["channel_id"])

	w = serve(server, http.MethodGet, "/api/channel/UCdemo")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServerShutdownTwice(t *testing.T) {
	server := setupServer(t, testConfig())

	assert.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, server.Shutdown(context.Background()))
}
