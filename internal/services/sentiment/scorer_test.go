package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/pulsegrow-api/internal/metrics"
	"github.com/killallgit/pulsegrow-api/internal/models"
)

// MockClassifier is a mock implementation of the Classifier interface
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Classification), args.Error(1)
}

func (m *MockClassifier) ClassifyBatch(ctx context.Context, inputs []Input) ([]Classification, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Classification), args.Error(1)
}

func TestScorer_Score(t *testing.T) {
	ctx := context.Background()

	t.Run("lexicon only", func(t *testing.T) {
		scorer := NewScorer()
		got := scorer.Score(ctx, "semma video 🔥")

		assert.False(t, scorer.HasClassifier())
		assert.Equal(t, models.SourceLexicon, got.Source)
		assert.Equal(t, models.SentimentPositive, got.Label)
		assert.Equal(t, got.Lexicon.Score, got.Score)
		assert.Nil(t, got.Classifier)
		assert.True(t, got.EmojiDetected)
	})

	t.Run("classifier is authoritative", func(t *testing.T) {
		classifier := new(MockClassifier)
		classifier.On("Classify", ctx, "semma video").
			Return(&Classification{Label: models.SentimentNegative, Score: -0.4, Topics: []string{"sarcasm"}}, nil)

		got := NewScorer(WithClassifier(classifier)).Score(ctx, "semma video")

		assert.Equal(t, models.SourceClassifier, got.Source)
		assert.Equal(t, models.SentimentNegative, got.Label)
		assert.Equal(t, -0.4, got.Score)
		assert.Equal(t, models.SentimentPositive, got.Lexicon.Label)
		require.NotNil(t, got.Classifier)
		assert.Equal(t, []string{"sarcasm"}, got.Topics)
		classifier.AssertExpectations(t)
	})

	t.Run("classifier failure falls back to lexicon", func(t *testing.T) {
		m := metrics.New()
		classifier := new(MockClassifier)
		classifier.On("Classify", ctx, "kevalam").Return(nil, ErrNoJSONObject)

		got := NewScorer(WithClassifier(classifier), WithMetrics(m)).Score(ctx, "kevalam")

		assert.Equal(t, models.SourceLexicon, got.Source)
		assert.Equal(t, models.SentimentNegative, got.Label)
		assert.Nil(t, got.Classifier)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.ClassifierFailures.WithLabelValues("parse")))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.CommentsScored.WithLabelValues("lexicon")))
	})
}

func TestScorer_ScoreBatch(t *testing.T) {
	ctx := context.Background()
	inputs := []Input{
		{ID: "c1", Text: "semma"},
		{ID: "c2", Text: "kevalam"},
		{ID: "c3", Text: "nice 😍"},
	}

	t.Run("omitted and unknown ids", func(t *testing.T) {
		classifier := new(MockClassifier)
		classifier.On("ClassifyBatch", ctx, inputs).Return([]Classification{
			{ID: "c2", Label: models.SentimentPositive, Score: 0.3},
			{ID: "ghost", Label: models.SentimentNegative, Score: -1},
			{ID: "c1", Label: models.SentimentNeutral, Score: 0},
		}, nil)

		results := NewScorer(WithClassifier(classifier)).ScoreBatch(ctx, inputs)

		require.Len(t, results, len(inputs))
		for i, r := range results {
			assert.Equal(t, inputs[i].ID, r.CommentID)
		}
		assert.Equal(t, models.SourceClassifier, results[0].Source)
		assert.Equal(t, models.SentimentNeutral, results[0].Label)
		assert.Equal(t, models.SourceClassifier, results[1].Source)
		assert.Equal(t, models.SentimentPositive, results[1].Label)
		assert.Equal(t, models.SourceLexicon, results[2].Source)
		assert.Equal(t, models.SentimentPositive, results[2].Label)
		assert.True(t, results[2].EmojiDetected)
	})

	t.Run("gemini reply keyed by comment_id", func(t *testing.T) {
		gen := &fakeGenerator{response: `{"results":[{"comment_id":"c1","sentiment":"negative","score":-0.8},{"comment_id":"c2","sentiment":"positive","score":0.6}]}`}

		results := NewScorer(WithClassifier(testGemini(gen))).ScoreBatch(ctx, inputs)

		require.Len(t, results, len(inputs))
		assert.Equal(t, models.SourceClassifier, results[0].Source)
		assert.Equal(t, models.SentimentNegative, results[0].Label)
		assert.Equal(t, -0.8, results[0].Score)
		assert.Equal(t, models.SourceClassifier, results[1].Source)
		assert.Equal(t, models.SourceLexicon, results[2].Source)
	})

	t.Run("whole batch failure", func(t *testing.T) {
		classifier := new(MockClassifier)
		classifier.On("ClassifyBatch", ctx, inputs).Return(nil, errors.New("quota exceeded"))

		results := NewScorer(WithClassifier(classifier)).ScoreBatch(ctx, inputs)

		require.Len(t, results, len(inputs))
		for _, r := range results {
			assert.Equal(t, models.SourceLexicon, r.Source)
			assert.Nil(t, r.Classifier)
		}
		assert.Equal(t, models.SentimentNegative, results[1].Label)
	})

	t.Run("empty input", func(t *testing.T) {
		classifier := new(MockClassifier)
		results := NewScorer(WithClassifier(classifier)).ScoreBatch(ctx, nil)
		assert.Empty(t, results)
		classifier.AssertNotCalled(t, "ClassifyBatch", mock.Anything, mock.Anything)
	})

	t.Run("scores stay in range", func(t *testing.T) {
		classifier := new(MockClassifier)
		classifier.On("ClassifyBatch", ctx, inputs).Return([]Classification{
			{ID: "c1", Label: models.SentimentPositive, Score: 7},
		}, nil)

		results := NewScorer(WithClassifier(classifier)).ScoreBatch(ctx, inputs)
		for _, r := range results {
			assert.GreaterOrEqual(t, r.Score, -1.0)
			assert.LessOrEqual(t, r.Score, 1.0)
		}
		assert.Equal(t, 1.0, results[0].Score)
	})
}
