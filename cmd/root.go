package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/killallgit/pulsegrow-api/pkg/config"
	"github.com/killallgit/pulsegrow-api/pkg/logging"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pulsegrow-api",
	Short: "PulseGrow API server",
	Long: `PulseGrow API - comment sentiment analytics for YouTube creators

The server syncs a channel's recent videos, scores their comments with a
multilingual lexicon and an optional generative classifier, and serves
per-video and per-channel sentiment aggregates.

Features:
  • Channel sync with background deep analysis
  • Per-video analysis with streamed progress
  • Lexicon vs classifier comparison
  • Rule-based or classifier-written comment summaries`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error); overrides config")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs; overrides config")
}

// loadConfig initializes the configuration for commands that need it
func loadConfig() (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}
	cfg, err := config.GetConfig()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from config, letting the persistent
// flags override it
func newLogger(cmd *cobra.Command, cfg config.LoggingConfig) (*zap.Logger, error) {
	level := cfg.Level
	if flag := cmd.Flag("log-level"); flag != nil && flag.Changed {
		level = flag.Value.String()
	}
	jsonLogs := cfg.JSON
	if flag := cmd.Flag("json-logs"); flag != nil && flag.Changed {
		jsonLogs = flag.Value.String() == "true"
	}
	return logging.New(level, jsonLogs)
}
