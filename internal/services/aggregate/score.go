// Package aggregate turns scored comments into the per-video and
// per-channel figures shown on the dashboard. Every function is pure.
package aggregate

import "github.com/killallgit/pulsegrow-api/internal/models"

// Distribution holds label fractions that sum to 1 for non-empty input
type Distribution struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// HealthScore is the like-weighted mean of the comments' final scores:
// sum(score * (1+likes)) / sum(1+likes). Empty input yields 0.
func HealthScore(comments []models.Comment) float64 {
	var weighted, total float64
	for _, c := range comments {
		weight := 1 + float64(max(c.LikeCount, 0))
		weighted += models.ClampScore(c.SentimentScore) * weight
		total += weight
	}
	if total == 0 {
		return 0
	}
	return models.ClampScore(weighted / total)
}

// VideoScore is the stored sentiment score of a video
func VideoScore(comments []models.Comment) float64 {
	return HealthScore(comments)
}

// SentimentDistribution returns the fraction of comments per final label
func SentimentDistribution(comments []models.Comment) Distribution {
	labels := make([]models.Sentiment, len(comments))
	for i, c := range comments {
		labels[i] = c.Sentiment
	}
	return distribution(labels, len(comments))
}

// GlobalAverage is the plain mean of video sentiment scores
func GlobalAverage(videos []models.Video) float64 {
	if len(videos) == 0 {
		return 0
	}
	var sum float64
	for _, v := range videos {
		sum += v.SentimentScore
	}
	return models.ClampScore(sum / float64(len(videos)))
}

// distribution divides the label counts by total. Unknown labels count
// toward total only.
func distribution(labels []models.Sentiment, total int) Distribution {
	var d Distribution
	if total == 0 {
		return d
	}
	var pos, neu, neg int
	for _, s := range labels {
		switch s {
		case models.SentimentPositive:
			pos++
		case models.SentimentNegative:
			neg++
		case models.SentimentNeutral:
			neu++
		}
	}
	n := float64(total)
	d.Positive = float64(pos) / n
	d.Neutral = float64(neu) / n
	d.Negative = float64(neg) / n
	return d
}
