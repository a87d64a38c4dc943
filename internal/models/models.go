package models

import "math"

// Sentiment is the three-bucket label carried by every scored comment
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// SentimentSource records which scorer produced a comment's final sentiment
type SentimentSource string

const (
	SourceLexicon    SentimentSource = "lexicon"
	SourceClassifier SentimentSource = "classifier"
)

// AllModels returns every persisted model, parents first
func AllModels() []any {
	return []any{&Channel{}, &Video{}, &Comment{}}
}

// ClampScore forces a sentiment score into [-1, 1]. NaN becomes 0.
func ClampScore(score float64) float64 {
	switch {
	case math.IsNaN(score):
		return 0
	case score > 1:
		return 1
	case score < -1:
		return -1
	default:
		return score
	}
}
