package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/killallgit/pulsegrow-api/internal/models"
	"github.com/killallgit/pulsegrow-api/internal/services/sentiment"
)

const (
	// TopCommentCount is how many of the most-liked comments are summarized
	TopCommentCount = 50

	summaryThemeCount = 5
	quoteCount        = 3
	quoteMaxRunes     = 200
)

// TopComments returns up to n comments ordered by likes, most liked first
func TopComments(comments []models.Comment, n int) []models.Comment {
	sorted := make([]models.Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LikeCount > sorted[j].LikeCount
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// FallbackSummary describes the top comments without a classifier
func FallbackSummary(comments []models.Comment) *sentiment.Summary {
	top := TopComments(comments, TopCommentCount)
	summary := &sentiment.Summary{
		KeyThemes:     []string{},
		AIInsights:    []string{},
		NotableQuotes: []string{},
		Source:        models.SourceLexicon,
	}
	if len(top) == 0 {
		summary.SentimentSummary = noCommentsMessage
		summary.PraiseSummary = "No praise yet."
		summary.CriticismSummary = "No criticism yet."
		return summary
	}

	dist := SentimentDistribution(top)
	summary.SentimentBreakdown = sentiment.SentimentBreakdown{
		Positive: percent(dist.Positive),
		Neutral:  percent(dist.Neutral),
		Negative: percent(dist.Negative),
	}

	insights := Insights(top)
	summary.SentimentSummary = fmt.Sprintf("The top %d comments are %s.", len(top), toneSummary(insights.Tone))

	counts := make(map[string]int)
	for _, c := range top {
		for _, w := range hotWords(c.Text) {
			counts[w]++
		}
	}
	summary.KeyThemes = topN(counts, summaryThemeCount)

	summary.PraiseSummary = labelSummary(top, models.SentimentPositive, "praise", "No clear praise among the top comments.")
	summary.CriticismSummary = labelSummary(top, models.SentimentNegative, "criticize", "No notable criticism among the top comments.")

	summary.AIInsights = append(summary.AIInsights, insights.Messages...)

	for _, c := range top {
		if len(summary.NotableQuotes) == quoteCount {
			break
		}
		if c.Text != "" {
			summary.NotableQuotes = append(summary.NotableQuotes, truncate(c.Text, quoteMaxRunes))
		}
	}
	return summary
}

func toneSummary(t Tone) string {
	switch t {
	case ToneOverwhelminglyPositive:
		return "overwhelmingly positive"
	case ToneHighNegativity:
		return "largely critical"
	case TonePolarizing:
		return "split between praise and criticism"
	default:
		return "mixed"
	}
}

// labelSummary reports how many top comments carry label and quotes the
// most liked of them
func labelSummary(top []models.Comment, label models.Sentiment, verb, none string) string {
	var count int
	var best *models.Comment
	for i := range top {
		if top[i].Sentiment != label {
			continue
		}
		count++
		if best == nil {
			best = &top[i]
		}
	}
	if count == 0 {
		return none
	}
	return fmt.Sprintf("%d of the top comments %s the video. Most liked: %q",
		count, verb, truncate(best.Text, quoteMaxRunes))
}

func percent(f float64) float64 {
	return math.Round(f*1000) / 10
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
