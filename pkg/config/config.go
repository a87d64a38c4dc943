package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	apperrors "github.com/killallgit/pulsegrow-api/pkg/errors"
)

const (
	// ModeParallel scores batches on a bounded worker pool
	ModeParallel = "parallel"
	// ModeSequential scores batches one at a time with a fixed delay
	ModeSequential = "sequential"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load("./config/settings.yaml")
	})
	return initErr
}

// load reads defaults, environment overrides and the optional settings file
func load(configPath string) error {
	setDefaults()

	viper.SetEnvPrefix("PULSEGROW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath = filepath.Clean(configPath)
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configPath); !os.IsNotExist(statErr) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeConfigInvalid, "invalid configuration")
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	mode := viper.GetString("analysis.mode")
	if mode != ModeParallel && mode != ModeSequential {
		return fmt.Errorf("invalid analysis mode %q (want %s or %s)", mode, ModeParallel, ModeSequential)
	}

	if err := validateAPIKeys(); err != nil {
		return err
	}

	if err := validateRecovery(viper.GetDuration("analysis.stale_after"), viper.GetDuration("channels.analysis_timeout")); err != nil {
		return err
	}

	// Auto-correct sizes that would stall the pipeline
	if viper.GetInt("analysis.batch_size") <= 0 {
		viper.Set("analysis.batch_size", 30)
	}
	if viper.GetInt("analysis.workers") <= 0 {
		viper.Set("analysis.workers", 5)
	}
	if viper.GetInt("channels.workers") <= 0 {
		viper.Set("channels.workers", 5)
	}
	if viper.GetInt("channels.recent_videos") <= 0 || viper.GetInt("channels.recent_videos") > 50 {
		viper.Set("channels.recent_videos", 10)
	}
	if viper.GetInt("analysis.max_comments_ceiling") <= 0 {
		viper.Set("analysis.max_comments_ceiling", 500)
	}

	return nil
}

// validateAPIKeys rejects placeholder keys in production. Empty keys are
// allowed: they select demo data and lexicon-only scoring.
func validateAPIKeys() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
	}

	keys := map[string]string{
		"YouTube API key":    viper.GetString("youtube.api_key"),
		"classifier API key": viper.GetString("classifier.api_key"),
	}
	for name, value := range keys {
		for _, placeholder := range placeholders {
			if value != placeholder {
				continue
			}
			if isProduction {
				return fmt.Errorf("invalid %s: cannot use placeholder values in production", name)
			}
			fmt.Printf("Warning: %s is using a placeholder value\n", name)
		}
	}

	return nil
}

// validateRecovery rejects a stale cutoff the stale-analysis sweep would hit
// while channel analyses are still within their deadline
func validateRecovery(staleAfter, analysisTimeout time.Duration) error {
	if staleAfter > 0 && analysisTimeout > 0 && staleAfter <= analysisTimeout {
		return fmt.Errorf("analysis.stale_after (%s) must exceed channels.analysis_timeout (%s)", staleAfter, analysisTimeout)
	}
	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Analysis.Mode {
	case "":
		c.Analysis.Mode = ModeParallel
	case ModeParallel, ModeSequential:
	default:
		return fmt.Errorf("invalid analysis mode %q", c.Analysis.Mode)
	}

	if err := validateRecovery(c.Analysis.StaleAfter, c.Channels.AnalysisTimeout); err != nil {
		return err
	}

	if c.Analysis.BatchSize <= 0 {
		c.Analysis.BatchSize = 30
	}
	if c.Analysis.Workers <= 0 {
		c.Analysis.Workers = 5
	}
	if c.Channels.Workers <= 0 {
		c.Channels.Workers = 5
	}
	if c.Channels.RecentVideos <= 0 {
		c.Channels.RecentVideos = 10
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	// Video analysis streams progress for minutes, so no write deadline
	viper.SetDefault("server.write_timeout", 0)
	viper.SetDefault("server.shutdown_timeout", 15*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/pulsegrow.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", time.Hour)
	viper.SetDefault("database.verbose", false)

	// YouTube defaults
	viper.SetDefault("youtube.api_key", "")
	viper.SetDefault("youtube.timeout", 15*time.Second)
	viper.SetDefault("youtube.page_size", 100)
	viper.SetDefault("youtube.max_comments", 500)
	viper.SetDefault("youtube.lookup_cache_ttl", 6*time.Hour)

	// Classifier defaults
	viper.SetDefault("classifier.api_key", "")
	viper.SetDefault("classifier.model", "gemini-2.0-flash")
	viper.SetDefault("classifier.timeout", 30*time.Second)
	viper.SetDefault("classifier.requests_per_minute", 15)
	viper.SetDefault("classifier.temperature", 0.2)

	// Analysis defaults
	viper.SetDefault("analysis.mode", ModeParallel)
	viper.SetDefault("analysis.batch_size", 30)
	viper.SetDefault("analysis.workers", 5)
	viper.SetDefault("analysis.batch_delay", 4500*time.Millisecond)
	viper.SetDefault("analysis.default_max_comments", 500)
	viper.SetDefault("analysis.max_comments_ceiling", 500)
	viper.SetDefault("analysis.stale_after", 30*time.Minute)
	viper.SetDefault("analysis.recovery_interval", 5*time.Minute)

	// Channel workflow defaults
	viper.SetDefault("channels.recent_videos", 10)
	viper.SetDefault("channels.comments_per_video", 50)
	viper.SetDefault("channels.workers", 5)
	viper.SetDefault("channels.analysis_timeout", 10*time.Minute)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.read_rps", 10)
	viper.SetDefault("rate_limiting.read_burst", 20)
	viper.SetDefault("rate_limiting.analyze_rps", 1)
	viper.SetDefault("rate_limiting.analyze_burst", 3)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.json", false)

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)
	viper.SetDefault("monitoring.metrics_path", "/metrics")
}
