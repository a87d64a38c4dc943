package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/killallgit/pulsegrow-api/internal/metrics"
	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/sentiment"
	"github.com/killallgit/pulsegrow-api/internal/services/youtube"
)

// Option is a functional option for configuring the orchestrator
type Option func(*Orchestrator)

// WithLogger sets the orchestrator logger
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records batch outcomes
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// Orchestrator fetches a video's comments, scores them in fixed-size
// batches and hands each scored batch to a Sink
type Orchestrator struct {
	source  youtube.Source
	scorer  BatchScorer
	config  Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	sleep   func(ctx context.Context, d time.Duration) error
}

// New creates an orchestrator
func New(source youtube.Source, scorer BatchScorer, cfg Config, opts ...Option) *Orchestrator {
	cfg.applyDefaults()
	o := &Orchestrator{
		source: source,
		scorer: scorer,
		config: cfg,
		logger: zap.NewNop(),
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Config returns the effective configuration
func (o *Orchestrator) Config() Config {
	return o.config
}

// Limit clamps a requested comment count to the configured ceiling. Zero or
// negative requests use the default.
func (o *Orchestrator) Limit(requested int) int {
	if requested <= 0 {
		return o.config.DefaultMaxComments
	}
	return min(requested, o.config.MaxCommentsCeiling)
}

// Run analyzes one video. It returns only after every batch has finished.
// Batch-level failures are absorbed and a failed comment fetch is treated
// as an empty comment set. An error is returned only when the video is
// unknown to the source or ctx is canceled.
func (o *Orchestrator) Run(ctx context.Context, req Request, sink Sink) (*Outcome, error) {
	order := req.Order
	if order == "" {
		order = youtube.OrderTime
	}
	limit := o.Limit(req.MaxComments)

	comments, err := o.source.GetComments(ctx, req.VideoID, limit, order)
	switch {
	case err == nil:
	case ctx.Err() != nil, errors.Is(err, youtube.ErrNotFound):
		return nil, fmt.Errorf("failed to fetch comments for %s: %w", req.VideoID, err)
	default:
		o.logger.Warn("Comment fetch failed, analyzing no comments",
			zap.String("video_id", req.VideoID), zap.Error(err))
		comments = nil
	}
	if len(comments) > limit {
		comments = comments[:limit]
	}

	batches := partition(comments, o.config.BatchSize)
	run := &run{
		orchestrator: o,
		videoID:      req.VideoID,
		sink:         sink,
		outcome:      Outcome{Total: len(comments)},
	}

	o.logger.Info("Starting analysis",
		zap.String("video_id", req.VideoID),
		zap.Int("comments", len(comments)),
		zap.Int("batches", len(batches)),
		zap.String("mode", o.config.Mode))

	if o.config.Mode == ModeSequential {
		err = o.runSequential(ctx, run, batches)
	} else {
		err = o.runParallel(ctx, run, batches)
	}

	outcome := run.result()
	o.logger.Info("Analysis finished",
		zap.String("video_id", req.VideoID),
		zap.Int("processed", outcome.Processed),
		zap.Int("total", outcome.Total),
		zap.Int("failed_batches", outcome.FailedBatches))
	return &outcome, err
}

func (o *Orchestrator) runParallel(ctx context.Context, r *run, batches [][]youtube.CommentInfo) error {
	var g errgroup.Group
	g.SetLimit(o.config.Workers)

	for i, batch := range batches {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r.process(ctx, i, batch)
			return nil
		})
	}
	_ = g.Wait()
	return ctx.Err()
}

func (o *Orchestrator) runSequential(ctx context.Context, r *run, batches [][]youtube.CommentInfo) error {
	for i, batch := range batches {
		if i > 0 && o.scorer.HasClassifier() && o.config.BatchDelay > 0 {
			if err := o.sleep(ctx, o.config.BatchDelay); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		r.process(ctx, i, batch)
	}
	return nil
}

// score runs the batch scorer, falling back to the lexicon if it panics
func (o *Orchestrator) score(ctx context.Context, index int, inputs []sentiment.Input) (results []sentiment.Result) {
	defer func() {
		if p := recover(); p != nil {
			o.logger.Error("Batch scoring panicked, using lexicon",
				zap.Int("batch", index),
				zap.Any("panic", p))
			results = o.scorer.LexiconBatch(inputs)
		}
	}()
	results = o.scorer.ScoreBatch(ctx, inputs)
	if len(results) != len(inputs) {
		o.logger.Warn("Scorer returned a partial batch, using lexicon",
			zap.Int("batch", index),
			zap.Int("inputs", len(inputs)),
			zap.Int("results", len(results)))
		results = o.scorer.LexiconBatch(inputs)
	}
	return results
}

// run holds the mutable state of one Run call
type run struct {
	orchestrator *Orchestrator
	videoID      string
	sink         Sink

	mu       sync.Mutex
	finished int
	outcome  Outcome
}

func (r *run) process(ctx context.Context, index int, batch []youtube.CommentInfo) {
	o := r.orchestrator
	start := time.Now()

	inputs := make([]sentiment.Input, len(batch))
	for i, c := range batch {
		inputs[i] = sentiment.Input{ID: c.ID, Text: c.Text}
	}
	results := o.score(ctx, index, inputs)

	comments := make([]models.Comment, len(batch))
	for i, c := range batch {
		comments[i] = ToComment(c, results[i])
	}

	err := r.commit(ctx, comments)
	if err != nil {
		o.logger.Error("Failed to commit batch",
			zap.String("video_id", r.videoID),
			zap.Int("batch", index),
			zap.Int("comments", len(batch)),
			zap.Error(err))
	}
	o.metrics.ObserveBatch(err == nil, time.Since(start))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished += len(batch)
	if err != nil {
		r.outcome.FailedBatches++
	} else {
		r.outcome.Processed += len(batch)
	}
	if r.sink != nil {
		r.sink.Progress(r.finished, r.outcome.Total)
	}
}

func (r *run) commit(ctx context.Context, comments []models.Comment) (err error) {
	if r.sink == nil {
		return nil
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("commit panicked: %v", p)
		}
	}()
	return r.sink.CommitBatch(ctx, r.videoID, comments)
}

func (r *run) result() Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome
}

// ToComment builds the stored comment from a fetched comment and its score
func ToComment(c youtube.CommentInfo, res sentiment.Result) models.Comment {
	comment := models.Comment{
		ID:               c.ID,
		VideoID:          c.VideoID,
		Text:             c.Text,
		Author:           c.Author,
		LikeCount:        max(c.LikeCount, 0),
		PublishedAt:      c.PublishedAt,
		Sentiment:        res.Label,
		SentimentScore:   models.ClampScore(res.Score),
		SentimentSource:  res.Source,
		LexiconSentiment: res.Lexicon.Label,
		LexiconScore:     models.ClampScore(res.Lexicon.Score),
		EmojiDetected:    res.EmojiDetected,
	}
	if res.Classifier != nil {
		label := res.Classifier.Label
		score := models.ClampScore(res.Classifier.Score)
		comment.ClassifierSentiment = &label
		comment.ClassifierScore = &score
	}
	comment.SetTopics(res.Topics)
	return comment
}

func partition(comments []youtube.CommentInfo, size int) [][]youtube.CommentInfo {
	if len(comments) == 0 {
		return nil
	}
	batches := make([][]youtube.CommentInfo, 0, (len(comments)+size-1)/size)
	for start := 0; start < len(comments); start += size {
		end := min(start+size, len(comments))
		batches = append(batches, comments[start:end])
	}
	return batches
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
