package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/killallgit/pulsegrow-api/internal/models"
)

// Trend buckets a channel's average video sentiment
type Trend string

const (
	TrendStrong    Trend = "strong"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

const (
	// ChannelWindow is the number of latest analyzed videos rolled up
	ChannelWindow = 10

	strongTrendThreshold = 0.3
	heavyEmojiPercent    = 30.0
	lightEmojiPercent    = 10.0
	channelTopicCount    = 5
)

// ChannelInsights is the roll-up of a channel's latest analyzed videos
type ChannelInsights struct {
	VideoCount       int                 `json:"video_count"`
	AverageSentiment float64             `json:"average_sentiment"`
	Trend            Trend               `json:"trend"`
	EmojiPercentage  float64             `json:"emoji_percentage"`
	TopTopics        []string            `json:"top_topics"`
	Recommendations  []string            `json:"recommendations"`
	Sections         map[string][]string `json:"sections"`
}

// TrendFor buckets an average score: >= 0.3 strong, < 0 declining
func TrendFor(avg float64) Trend {
	switch {
	case avg >= strongTrendThreshold:
		return TrendStrong
	case avg < 0:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// LatestCompleted returns up to n completed videos, newest first
func LatestCompleted(videos []models.Video, n int) []models.Video {
	done := make([]models.Video, 0, len(videos))
	for _, v := range videos {
		if v.AnalysisStatus == models.AnalysisCompleted {
			done = append(done, v)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].PublishedAt.After(done[j].PublishedAt)
	})
	if len(done) > n {
		done = done[:n]
	}
	return done
}

// ChannelRollup rolls up the latest completed videos of a channel.
// commentsByVideo maps video id to its stored comments.
func ChannelRollup(videos []models.Video, commentsByVideo map[string][]models.Comment) ChannelInsights {
	recent := LatestCompleted(videos, ChannelWindow)

	insights := ChannelInsights{
		VideoCount: len(recent),
		TopTopics:  []string{},
		Sections:   make(map[string][]string),
	}

	var sum float64
	var comments, emoji int
	topics := make(map[string]int)
	for _, v := range recent {
		sum += v.SentimentScore
		for _, c := range commentsByVideo[v.ID] {
			comments++
			if c.EmojiDetected {
				emoji++
			}
			for _, t := range c.TopicList() {
				topics[t]++
			}
		}
	}
	if len(recent) > 0 {
		insights.AverageSentiment = models.ClampScore(sum / float64(len(recent)))
	}
	if comments > 0 {
		insights.EmojiPercentage = float64(emoji) / float64(comments) * 100
	}
	insights.Trend = TrendFor(insights.AverageSentiment)
	insights.TopTopics = topN(topics, channelTopicCount)

	if len(recent) == 0 {
		insights.Recommendations = []string{"Analyze a few videos to unlock channel insights."}
		insights.Sections["recommendations"] = insights.Recommendations
		return insights
	}

	sentimentMsg, sentimentRec := trendCopy(insights.Trend, insights.AverageSentiment)
	insights.Sections["sentiment"] = []string{sentimentMsg}
	insights.Recommendations = append(insights.Recommendations, sentimentRec)

	emojiMsg := fmt.Sprintf("%.0f%% of comments use emoji.", insights.EmojiPercentage)
	insights.Sections["emoji"] = []string{emojiMsg}
	switch {
	case comments > 0 && insights.EmojiPercentage >= heavyEmojiPercent:
		insights.Recommendations = append(insights.Recommendations,
			"Your audience speaks in emoji. Use emoji-friendly hooks in titles and community posts.")
	case comments > 0 && insights.EmojiPercentage < lightEmojiPercent:
		insights.Recommendations = append(insights.Recommendations,
			"Few emoji reactions. Ask viewers a direct question to draw out more expressive comments.")
	}

	if len(insights.TopTopics) > 0 {
		insights.Sections["topics"] = []string{
			"Viewers keep talking about: " + strings.Join(insights.TopTopics, ", "),
		}
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("Consider a follow-up video on %q, the most discussed topic.", insights.TopTopics[0]))
	}

	insights.Sections["recommendations"] = insights.Recommendations
	return insights
}

func trendCopy(t Trend, avg float64) (message, recommendation string) {
	switch t {
	case TrendStrong:
		return fmt.Sprintf("Sentiment is strong across recent uploads (%.2f).", avg),
			"Double down on the formats of your best recent uploads."
	case TrendDeclining:
		return fmt.Sprintf("Sentiment is declining across recent uploads (%.2f).", avg),
			"Review the criticism on your latest videos and address it directly."
	default:
		return fmt.Sprintf("Sentiment is stable across recent uploads (%.2f).", avg),
			"Experiment with one new format to find your next spike."
	}
}
