package config

import (
	"net"
	"strconv"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Environment  string           `mapstructure:"environment"`
	Server       ServerConfig     `mapstructure:"server"`
	Database     DatabaseConfig   `mapstructure:"database"`
	YouTube      YouTubeConfig    `mapstructure:"youtube"`
	Classifier   ClassifierConfig `mapstructure:"classifier"`
	Analysis     AnalysisConfig   `mapstructure:"analysis"`
	Channels     ChannelsConfig   `mapstructure:"channels"`
	RateLimiting RateLimitConfig  `mapstructure:"rate_limiting"`
	Logging      LoggingConfig    `mapstructure:"logging"`
	Monitoring   MonitoringConfig `mapstructure:"monitoring"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// Address returns the listen address
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path               string        `mapstructure:"path"`
	MaxConnections     int           `mapstructure:"max_connections"`
	MaxIdleConnections int           `mapstructure:"max_idle_connections"`
	ConnMaxLifetime    time.Duration `mapstructure:"connection_max_lifetime"`
	Verbose            bool          `mapstructure:"verbose"`
}

// YouTubeConfig contains YouTube Data API settings. An empty APIKey
// switches the source adapter to demo data.
type YouTubeConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	Timeout        time.Duration `mapstructure:"timeout"`
	PageSize       int64         `mapstructure:"page_size"`
	MaxComments    int           `mapstructure:"max_comments"`
	LookupCacheTTL time.Duration `mapstructure:"lookup_cache_ttl"`
}

// ClassifierConfig contains generative classifier settings. An empty
// APIKey disables the classifier and leaves the lexicon authoritative.
type ClassifierConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Temperature       float32       `mapstructure:"temperature"`
}

// AnalysisConfig controls the batch orchestrator
type AnalysisConfig struct {
	Mode               string        `mapstructure:"mode"`
	BatchSize          int           `mapstructure:"batch_size"`
	Workers            int           `mapstructure:"workers"`
	BatchDelay         time.Duration `mapstructure:"batch_delay"`
	DefaultMaxComments int           `mapstructure:"default_max_comments"`
	MaxCommentsCeiling int           `mapstructure:"max_comments_ceiling"`
	StaleAfter         time.Duration `mapstructure:"stale_after"`
	RecoveryInterval   time.Duration `mapstructure:"recovery_interval"`
}

// ChannelsConfig controls the two-phase channel workflow
type ChannelsConfig struct {
	RecentVideos     int           `mapstructure:"recent_videos"`
	CommentsPerVideo int           `mapstructure:"comments_per_video"`
	Workers          int           `mapstructure:"workers"`
	AnalysisTimeout  time.Duration `mapstructure:"analysis_timeout"`
}

// RateLimitConfig contains per-client API rate limits
type RateLimitConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	ReadRPS      int  `mapstructure:"read_rps"`
	ReadBurst    int  `mapstructure:"read_burst"`
	AnalyzeRPS   int  `mapstructure:"analyze_rps"`
	AnalyzeBurst int  `mapstructure:"analyze_burst"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// MonitoringConfig contains metrics settings
type MonitoringConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	MetricsPath string `mapstructure:"metrics_path"`
}
