package sentiment

import (
	"context"
	"strings"

	"github.com/killallgit/pulsegrow-api/internal/models"
)

const defaultLabelScore = 0.9

// Input is one comment submitted for scoring
type Input struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Classification is a normalized verdict from the external classifier
type Classification struct {
	ID     string
	Label  models.Sentiment
	Score  float64
	Topics []string
}

// Classifier is an external, fallible sentiment model
type Classifier interface {
	Classify(ctx context.Context, text string) (*Classification, error)
	ClassifyBatch(ctx context.Context, inputs []Input) ([]Classification, error)
}

// SummaryComment is a highly-liked comment fed to the summarizer
type SummaryComment struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	LikeCount int64  `json:"likes"`
}

// Summary describes what the most-liked comments of a video are saying
type Summary struct {
	SentimentSummary   string                 `json:"sentiment_summary"`
	SentimentBreakdown SentimentBreakdown     `json:"sentiment_breakdown"`
	KeyThemes          []string               `json:"key_themes"`
	PraiseSummary      string                 `json:"praise_summary"`
	CriticismSummary   string                 `json:"criticism_summary"`
	AIInsights         []string               `json:"ai_insights"`
	NotableQuotes      []string               `json:"notable_quotes"`
	Source             models.SentimentSource `json:"source"`
}

// SentimentBreakdown holds label percentages (0-100)
type SentimentBreakdown struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Summarizer produces a Summary for a set of top comments
type Summarizer interface {
	Summarize(ctx context.Context, comments []SummaryComment) (*Summary, error)
}

// rawClassification is the wire shape requested from the model. Some
// responses use "label" instead of "sentiment" or "comment_id" instead of
// "id".
type rawClassification struct {
	ID        string   `json:"id"`
	CommentID string   `json:"comment_id"`
	Sentiment string   `json:"sentiment"`
	Label     string   `json:"label"`
	Score     *float64 `json:"score"`
	Topics    []string `json:"topics"`
}

type rawBatch struct {
	Results []rawClassification `json:"results"`
}

// NormalizeLabel maps free-form model output onto the three buckets
func NormalizeLabel(label string) models.Sentiment {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.Contains(l, "pos"):
		return models.SentimentPositive
	case strings.Contains(l, "neg"):
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func (r rawClassification) normalize() Classification {
	text := r.Sentiment
	if text == "" {
		text = r.Label
	}
	label := NormalizeLabel(text)

	var score float64
	if r.Score != nil {
		score = models.ClampScore(*r.Score)
	} else {
		switch label {
		case models.SentimentPositive:
			score = defaultLabelScore
		case models.SentimentNegative:
			score = -defaultLabelScore
		}
	}

	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = strings.TrimSpace(r.CommentID)
	}

	return Classification{
		ID:     id,
		Label:  label,
		Score:  score,
		Topics: normalizeTopics(r.Topics),
	}
}
