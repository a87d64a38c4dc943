package analysis

import (
	"context"
	"time"

	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/sentiment"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
)

const (
	ModeParallel   = "parallel"
	ModeSequential = "sequential"
)

// Request describes one video analysis run
type Request struct {
	VideoID     string
	MaxComments int
	Order       youtube.Order
}

// Outcome summarizes a finished run. Processed counts comments whose batch
// was committed; FailedBatches counts batches that could not be stored.
type Outcome struct {
	Processed     int `json:"processed"`
	Total         int `json:"total"`
	FailedBatches int `json:"failed_batches"`
}

// Sink receives the results of a run. CommitBatch is called from worker
// goroutines, possibly concurrently; Progress calls are serialized and
// processed is strictly increasing.
type Sink interface {
	CommitBatch(ctx context.Context, videoID string, comments []models.Comment) error
	Progress(processed, total int)
}

// BatchScorer is the part of the sentiment scorer the orchestrator uses
type BatchScorer interface {
	ScoreBatch(ctx context.Context, inputs []sentiment.Input) []sentiment.Result
	LexiconBatch(inputs []sentiment.Input) []sentiment.Result
	HasClassifier() bool
}

// Config controls batching and concurrency
type Config struct {
	Mode               string
	BatchSize          int
	Workers            int
	BatchDelay         time.Duration
	DefaultMaxComments int
	MaxCommentsCeiling int
}

func (c *Config) applyDefaults() {
	if c.Mode != ModeSequential {
		c.Mode = ModeParallel
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 30
	}
	if c.Workers <= 0 {
		c.Workers = 5
	}
	if c.BatchDelay < 0 {
		c.BatchDelay = 0
	}
	if c.MaxCommentsCeiling <= 0 {
		c.MaxCommentsCeiling = 500
	}
	if c.DefaultMaxComments <= 0 || c.DefaultMaxComments > c.MaxCommentsCeiling {
		c.DefaultMaxComments = c.MaxCommentsCeiling
	}
}
