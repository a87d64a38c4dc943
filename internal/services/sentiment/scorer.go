package sentiment

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/killallgit/pulsegrow-api/internal/metrics"
	"github.com/killallgit/pulsegrow-api/internal/models"
)

// Result is the reconciled sentiment of one comment
type Result struct {
	CommentID     string
	Label         models.Sentiment
	Score         float64
	Lexicon       SubScore
	Classifier    *SubScore
	Source        models.SentimentSource
	EmojiDetected bool
	Topics        []string
}

// ScorerOption is a functional option for configuring the scorer
type ScorerOption func(*Scorer)

// WithClassifier enables the external classifier. Its verdict is final
// whenever it succeeds.
func WithClassifier(c Classifier) ScorerOption {
	return func(s *Scorer) {
		s.classifier = c
	}
}

// WithLogger sets the scorer logger
func WithLogger(logger *zap.Logger) ScorerOption {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records scored comments and classifier fallbacks
func WithMetrics(m *metrics.Metrics) ScorerOption {
	return func(s *Scorer) {
		s.metrics = m
	}
}

// WithLexicon replaces the default lexicon scorer
func WithLexicon(l *LexiconScorer) ScorerOption {
	return func(s *Scorer) {
		if l != nil {
			s.lexicon = l
		}
	}
}

// Scorer combines the lexicon scorer with an optional classifier. Scoring
// never fails: classifier problems fall back to the lexicon result.
type Scorer struct {
	lexicon    *LexiconScorer
	classifier Classifier
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewScorer creates a scorer. Without WithClassifier it is lexicon-only.
func NewScorer(opts ...ScorerOption) *Scorer {
	s := &Scorer{
		lexicon: NewLexiconScorer(nil),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HasClassifier reports whether an external classifier is configured
func (s *Scorer) HasClassifier() bool {
	return s.classifier != nil
}

// Score scores a single text
func (s *Scorer) Score(ctx context.Context, text string) Result {
	result := s.lexiconResult(Input{Text: text})
	if s.classifier == nil {
		s.metrics.ObserveScored(string(result.Source))
		return result
	}

	c, err := s.classifier.Classify(ctx, text)
	if err != nil {
		s.logger.Warn("Classifier failed, using lexicon", zap.Error(err))
		s.metrics.ObserveClassifierFailure(failureReason(ctx, err))
	} else {
		applyClassification(&result, *c)
	}
	s.metrics.ObserveScored(string(result.Source))
	return result
}

// ScoreBatch returns exactly one result per input, in input order.
// Classifier results for unknown ids are discarded and inputs it omitted
// keep their lexicon score.
func (s *Scorer) ScoreBatch(ctx context.Context, inputs []Input) []Result {
	results := s.LexiconBatch(inputs)
	if s.classifier == nil || len(inputs) == 0 {
		s.observe(results)
		return results
	}

	classified, err := s.classifier.ClassifyBatch(ctx, inputs)
	if err != nil {
		s.logger.Warn("Batch classification failed, using lexicon",
			zap.Int("comments", len(inputs)),
			zap.Error(err))
		s.metrics.ObserveClassifierFailure(failureReason(ctx, err))
		s.observe(results)
		return results
	}

	index := make(map[string]int, len(inputs))
	for i, in := range inputs {
		if _, dup := index[in.ID]; !dup {
			index[in.ID] = i
		}
	}

	matched := make(map[int]bool, len(classified))
	for _, c := range classified {
		i, ok := index[c.ID]
		if !ok {
			s.logger.Debug("Dropping classification for unknown id", zap.String("id", c.ID))
			continue
		}
		if matched[i] {
			continue
		}
		matched[i] = true
		applyClassification(&results[i], c)
	}

	if missing := len(inputs) - len(matched); missing > 0 {
		s.logger.Debug("Classifier omitted comments, using lexicon",
			zap.Int("missing", missing),
			zap.Int("comments", len(inputs)))
		for i := 0; i < missing; i++ {
			s.metrics.ObserveClassifierFailure("omitted")
		}
	}

	s.observe(results)
	return results
}

// LexiconBatch scores every input with the lexicon only
func (s *Scorer) LexiconBatch(inputs []Input) []Result {
	results := make([]Result, len(inputs))
	for i, in := range inputs {
		results[i] = s.lexiconResult(in)
	}
	return results
}

func (s *Scorer) lexiconResult(in Input) Result {
	sub := s.lexicon.Score(in.Text)
	return Result{
		CommentID:     in.ID,
		Label:         sub.Label,
		Score:         sub.Score,
		Lexicon:       sub,
		Source:        models.SourceLexicon,
		EmojiDetected: ContainsEmoji(in.Text),
		Topics:        ExtractTopics(in.Text),
	}
}

func (s *Scorer) observe(results []Result) {
	for _, r := range results {
		s.metrics.ObserveScored(string(r.Source))
	}
}

func applyClassification(r *Result, c Classification) {
	sub := SubScore{Label: c.Label, Score: models.ClampScore(c.Score)}
	r.Classifier = &sub
	r.Label = sub.Label
	r.Score = sub.Score
	r.Source = models.SourceClassifier
	if len(c.Topics) > 0 {
		r.Topics = c.Topics
	}
}

func failureReason(ctx context.Context, err error) string {
	switch {
	case ctx.Err() != nil:
		return "canceled"
	case errors.Is(err, ErrNoJSONObject), errors.Is(err, ErrEmptyResponse):
		return "parse"
	default:
		return "error"
	}
}
