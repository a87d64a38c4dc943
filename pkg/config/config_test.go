package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/killallgit/pulsegrow-api/pkg/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "settings file overrides defaults",
			content: `
server:
  port: 8080
analysis:
  batch_size: 10
`,
			check: func(t *testing.T) {
				assert.Equal(t, 8080, GetInt("server.port"))
				assert.Equal(t, 10, GetInt("analysis.batch_size"))
				assert.Equal(t, 5, GetInt("analysis.workers"))
			},
		},
		{
			name: "environment variable override",
			env:  map[string]string{"PULSEGROW_SERVER_PORT": "9090"},
			check: func(t *testing.T) {
				assert.Equal(t, 9090, GetInt("server.port"))
			},
		},
		{
			name: "missing settings file uses defaults",
			check: func(t *testing.T) {
				assert.Equal(t, 8000, GetInt("server.port"))
				assert.Equal(t, ModeParallel, GetString("analysis.mode"))
				assert.Equal(t, 4500*time.Millisecond, GetDuration("analysis.batch_delay"))
				assert.Equal(t, 50, GetInt("channels.comments_per_video"))
			},
		},
		{
			name: "non-positive batch size is corrected",
			content: `
analysis:
  batch_size: 0
  workers: -1
`,
			check: func(t *testing.T) {
				assert.Equal(t, 30, GetInt("analysis.batch_size"))
				assert.Equal(t, 5, GetInt("analysis.workers"))
			},
		},
		{
			name: "unknown analysis mode is rejected",
			content: `
analysis:
  mode: turbo
`,
			wantErr: true,
		},
		{
			name: "stale cutoff inside the channel deadline is rejected",
			content: `
analysis:
  stale_after: 5m
channels:
  analysis_timeout: 10m
`,
			wantErr: true,
		},
		{
			name:    "placeholder key rejected in production",
			env:     map[string]string{"PULSEGROW_ENVIRONMENT": "production", "PULSEGROW_YOUTUBE_API_KEY": "changeme"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)

			path := filepath.Join(t.TempDir(), "settings.yaml")
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := load(path)
			if tt.wantErr {
				assert.True(t, apperrors.Is(err, apperrors.ErrCodeConfigInvalid), "got %v", err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	require.NoError(t, load(filepath.Join(t.TempDir(), "missing.yaml")))

	cfg, err := GetConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "./data/pulsegrow.db", cfg.Database.Path)
	assert.Equal(t, 30, cfg.Analysis.BatchSize)
	assert.Equal(t, 10, cfg.Channels.RecentVideos)
	assert.Equal(t, 15, cfg.Classifier.RequestsPerMinute)
	assert.Empty(t, cfg.YouTube.APIKey)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  &Config{Server: ServerConfig{Host: "localhost", Port: 8080}},
			wantErr: false,
		},
		{
			name:    "invalid port",
			config:  &Config{Server: ServerConfig{Host: "localhost", Port: 0}},
			wantErr: true,
		},
		{
			name: "invalid mode",
			config: &Config{
				Server:   ServerConfig{Port: 8080},
				Analysis: AnalysisConfig{Mode: "turbo"},
			},
			wantErr: true,
		},
		{
			name: "stale cutoff not after channel deadline",
			config: &Config{
				Server:   ServerConfig{Port: 8080},
				Analysis: AnalysisConfig{StaleAfter: 10 * time.Minute},
				Channels: ChannelsConfig{AnalysisTimeout: 10 * time.Minute},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, ModeParallel, tt.config.Analysis.Mode)
			assert.Equal(t, 30, tt.config.Analysis.BatchSize)
			assert.Equal(t, 5, tt.config.Analysis.Workers)
		})
	}
}
