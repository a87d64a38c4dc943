package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/killallgit/pulsegrow-api/api"
	"github.com/killallgit/pulsegrow-api/api/types"
	"github.com/killallgit/pulsegrow-api/internal/database"
	"github.com/killallgit/pulsegrow-api/internal/metrics"
	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/admin"
	"github.com/killallgit/pulsegrow-api/internal/services/analysis"
	"github.com/killallgit/pulsegrow-api/internal/services/cache"
	"github.com/killallgit/pulsegrow-api/internal/services/channels"
	"github.com/killallgit/pulsegrow-api/internal/services/cleanup"
	"github.com/killallgit/pulsegrow-api/internal/services/sentiment"
	"github.com/killallgit/pulsegrow-api/internal/services/store"
	"github.com/killallgit/pulsegrow-api/internal/services/videos"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
	"github.com/killallgit/pulsegrow-api/pkg/config"
)

const lookupCacheCapacity = 1024

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the PulseGrow API server with the configured settings.

Without a YouTube API key the server serves a demo channel. Without a
classifier API key comments are scored by the lexicon alone.

Example:
  pulsegrow-api serve
  pulsegrow-api serve --port 9090
  pulsegrow-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

// application holds the wired services and what must be released on exit
type application struct {
	deps     *types.Dependencies
	channels *channels.Service
	cleanup  *cleanup.Service
	closers  []func() error
}

func (a *application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// newApplication opens the database and wires every service
func newApplication(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*application, error) {
	app := &application{}

	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, db.Close)

	if err := db.AutoMigrate(logger, models.AllModels()...); err != nil {
		_ = app.Close()
		return nil, err
	}

	m := metrics.New()

	lookups := cache.NewMemoryCache(lookupCacheCapacity)
	app.closers = append(app.closers, func() error { lookups.Stop(); return nil })

	source, err := youtube.NewSource(ctx, youtube.Config{
		APIKey:      cfg.YouTube.APIKey,
		Timeout:     cfg.YouTube.Timeout,
		PageSize:    cfg.YouTube.PageSize,
		MaxComments: cfg.YouTube.MaxComments,
		CacheTTL:    cfg.YouTube.LookupCacheTTL,
	}, lookups, logger.Named("youtube"))
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("creating YouTube source: %w", err)
	}

	scorerOpts := []sentiment.ScorerOption{
		sentiment.WithLogger(logger.Named("sentiment")),
		sentiment.WithMetrics(m),
	}
	videoOpts := []videos.Option{
		videos.WithLogger(logger.Named("videos")),
		videos.WithMetrics(m),
	}

	gemini, err := sentiment.NewGemini(ctx, sentiment.GeminiConfig{
		APIKey:            cfg.Classifier.APIKey,
		Model:             cfg.Classifier.Model,
		Timeout:           cfg.Classifier.Timeout,
		RequestsPerMinute: cfg.Classifier.RequestsPerMinute,
		Temperature:       cfg.Classifier.Temperature,
	}, logger.Named("classifier"))
	switch {
	case errors.Is(err, sentiment.ErrClassifierDisabled):
		logger.Warn("No classifier API key configured, scoring with the lexicon only")
	case err != nil:
		_ = app.Close()
		return nil, fmt.Errorf("creating classifier: %w", err)
	default:
		app.closers = append(app.closers, gemini.Close)
		scorerOpts = append(scorerOpts, sentiment.WithClassifier(gemini))
		videoOpts = append(videoOpts, videos.WithSummarizer(gemini))
		logger.Info("Classifier enabled", zap.String("model", gemini.Model()))
	}

	runner := analysis.New(source, sentiment.NewScorer(scorerOpts...), analysis.Config{
		Mode:               cfg.Analysis.Mode,
		BatchSize:          cfg.Analysis.BatchSize,
		Workers:            cfg.Analysis.Workers,
		BatchDelay:         cfg.Analysis.BatchDelay,
		DefaultMaxComments: cfg.Analysis.DefaultMaxComments,
		MaxCommentsCeiling: cfg.Analysis.MaxCommentsCeiling,
	}, analysis.WithLogger(logger.Named("analysis")), analysis.WithMetrics(m))

	repo := store.NewRepository(db.DB)
	videoService := videos.NewService(repo, runner, videoOpts...)
	app.channels = channels.NewService(repo, source, videoService, channels.Config{
		RecentVideos:     cfg.Channels.RecentVideos,
		CommentsPerVideo: cfg.Channels.CommentsPerVideo,
		Workers:          cfg.Channels.Workers,
		AnalysisTimeout:  cfg.Channels.AnalysisTimeout,
	}, logger.Named("channels"))

	app.cleanup = cleanup.NewService(repo, cfg.Analysis.StaleAfter, cfg.Analysis.RecoveryInterval, logger.Named("cleanup"))

	app.deps = &types.Dependencies{
		DB:                 db,
		ChannelService:     app.channels,
		VideoService:       videoService,
		AdminService:       admin.NewService(repo, logger.Named("admin")),
		Metrics:            m,
		Logger:             logger,
		DefaultMaxComments: runner.Config().DefaultMaxComments,
		Build:              buildInfo(),
	}
	return app, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger, err := newLogger(cmd, cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to release resources", zap.Error(err))
		}
	}()

	// analyses interrupted by the previous run are failed before serving
	app.cleanup.Start(ctx)
	defer app.cleanup.Stop()

	server := api.NewServer(cfg)
	server.SetDependencies(app.deps)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("initializing server: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	logger.Info("Server is ready to handle requests",
		zap.String("address", cfg.Server.Address()),
		zap.String("version", Version))

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server")
	case err = <-serverErr:
		logger.Error("Server stopped unexpectedly", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("Server forced to shutdown", zap.Error(shutdownErr))
	}
	waitForAnalyses(shutdownCtx, app.channels, logger)

	logger.Info("Server gracefully stopped")
	return err
}

// waitForAnalyses waits for background channel analyses until ctx expires
func waitForAnalyses(ctx context.Context, svc *channels.Service, logger *zap.Logger) {
	done := make(chan struct{})
	go func() {
		svc.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("Background analyses still running at shutdown")
	}
}
