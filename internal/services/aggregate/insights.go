package aggregate

import (
	"strings"

	"github.com/killallgit/pulsegrow-api/internal/models"
)

// Tone classifies the positive/negative balance of a video's comments
type Tone string

const (
	ToneOverwhelminglyPositive Tone = "overwhelmingly_positive"
	ToneHighNegativity         Tone = "high_negativity"
	TonePolarizing             Tone = "polarizing"
	ToneBalanced               Tone = "balanced"
)

// Vibe is the dominant keyword category of a video's comments
type Vibe string

const (
	VibeHype         Vibe = "hype"
	VibeAppreciation Vibe = "appreciation"
	VibeHumor        Vibe = "humor"
	VibeCuriosity    Vibe = "curiosity"
	VibeCriticism    Vibe = "criticism"
	VibeNeutral      Vibe = "neutral"
)

// Engagement buckets the like-to-comment ratio
type Engagement string

const (
	EngagementHigh   Engagement = "high"
	EngagementNormal Engagement = "normal"
)

const (
	positiveDominance  = 0.7
	negativeDominance  = 0.4
	polarizingMargin   = 0.1
	highEngagementRate = 2
	hotTopicCount      = 3

	noCommentsMessage = "No comments to analyze yet."
)

// VideoInsights is the rule-based read of one video's comments
type VideoInsights struct {
	Tone       Tone       `json:"tone"`
	Vibe       Vibe       `json:"vibe"`
	HotTopics  []string   `json:"hot_topics"`
	Engagement Engagement `json:"engagement"`
	Messages   []string   `json:"messages"`
}

type vibeCategory struct {
	vibe     Vibe
	words    []string
	question bool
}

// vibeCategories are checked in this order; the order does not affect the
// result because ties resolve to neutral
var vibeCategories = []vibeCategory{
	{vibe: VibeHype, words: []string{"fire", "lit", "mass", "semma", "goated", "peak", "insane", "hype", "op", "kiraak", "verithanam", "mast", "🔥", "🚀", "💯"}},
	{vibe: VibeAppreciation, words: []string{"thank", "thanks", "thankyou", "love", "helpful", "great", "amazing", "respect", "appreciate", "useful", "best", "❤", "🙏", "👏"}},
	{vibe: VibeHumor, words: []string{"lol", "lmao", "haha", "hahaha", "funny", "hilarious", "joke", "😂", "🤣"}},
	{vibe: VibeCuriosity, words: []string{"how", "why", "what", "when", "where", "which", "can", "could", "explain"}, question: true},
	{vibe: VibeCriticism, words: []string{"worst", "bad", "mokka", "waste", "boring", "fake", "cringe", "disappointed", "clickbait", "overpriced", "kevalam", "bakwas", "👎"}},
}

var vibeMessages = map[Vibe]string{
	VibeHype:         "🔥 Hype Vibe: Viewers are hyped about this one.",
	VibeAppreciation: "🙏 Appreciation Vibe: Viewers are thanking you for this content.",
	VibeHumor:        "😂 Humor Vibe: The comment section is having fun.",
	VibeCuriosity:    "❓ Curiosity Vibe: Viewers are asking questions. A follow-up or FAQ could land well.",
	VibeCriticism:    "🛠️ Critical Vibe: Viewers are pointing out problems worth reviewing.",
}

// Insights builds the tone, vibe, hot topics and engagement read of a
// video's comments
func Insights(comments []models.Comment) VideoInsights {
	if len(comments) == 0 {
		return VideoInsights{
			Tone:       ToneBalanced,
			Vibe:       VibeNeutral,
			HotTopics:  []string{},
			Engagement: EngagementNormal,
			Messages:   []string{noCommentsMessage},
		}
	}

	insights := VideoInsights{
		Tone:       tone(comments),
		Vibe:       vibe(comments),
		HotTopics:  hotTopics(comments),
		Engagement: engagement(comments),
	}

	insights.Messages = append(insights.Messages, toneMessage(insights.Tone))
	if msg, ok := vibeMessages[insights.Vibe]; ok {
		insights.Messages = append(insights.Messages, msg)
	}
	if len(insights.HotTopics) > 0 {
		insights.Messages = append(insights.Messages,
			"🔥 Hot Topics: Users are frequently mentioning: "+strings.Join(insights.HotTopics, ", "))
	}
	if insights.Engagement == EngagementHigh {
		insights.Messages = append(insights.Messages,
			"🚀 High Engagement: Comments are generating a lot of likes/discussion.",
			"💡 Creator Tip: Pin a top comment and reply to the most-liked threads to keep the discussion going.")
	}
	return insights
}

func tone(comments []models.Comment) Tone {
	var pos, neg int
	for _, c := range comments {
		switch c.Sentiment {
		case models.SentimentPositive:
			pos++
		case models.SentimentNegative:
			neg++
		}
	}
	total := float64(len(comments))
	diff := pos - neg
	if diff < 0 {
		diff = -diff
	}

	switch {
	case float64(pos)/total > positiveDominance:
		return ToneOverwhelminglyPositive
	case float64(neg)/total > negativeDominance:
		return ToneHighNegativity
	case pos > 0 && neg > 0 && float64(diff) < total*polarizingMargin:
		return TonePolarizing
	default:
		return ToneBalanced
	}
}

func toneMessage(t Tone) string {
	switch t {
	case ToneOverwhelminglyPositive:
		return "🌟 Overwhelmingly Positive: The audience loves this content."
	case ToneHighNegativity:
		return "⚠️ High Negativity: This video is receiving significant criticism."
	case TonePolarizing:
		return "⚖️ Polarizing Content: The audience is split between positive and negative reactions."
	default:
		return "💬 Balanced Discussion: Reactions are spread across the board."
	}
}

// vibe returns the category matched by the most comments. No matches or a
// tie for first place is neutral.
func vibe(comments []models.Comment) Vibe {
	sets := make([]map[string]struct{}, len(vibeCategories))
	for i, cat := range vibeCategories {
		sets[i] = make(map[string]struct{}, len(cat.words))
		for _, w := range cat.words {
			sets[i][w] = struct{}{}
		}
	}

	counts := make([]int, len(vibeCategories))
	for _, c := range comments {
		toks := tokens(c.Text)
		for i, cat := range vibeCategories {
			if cat.question && strings.Contains(c.Text, "?") {
				counts[i]++
				continue
			}
			for _, tok := range toks {
				if _, ok := sets[i][tok]; ok {
					counts[i]++
					break
				}
			}
		}
	}

	best, bestCount, tied := VibeNeutral, 0, false
	for i, n := range counts {
		switch {
		case n > bestCount:
			best, bestCount, tied = vibeCategories[i].vibe, n, false
		case n == bestCount && n > 0:
			tied = true
		}
	}
	if bestCount == 0 || tied {
		return VibeNeutral
	}
	return best
}

func hotTopics(comments []models.Comment) []string {
	counts := make(map[string]int)
	for _, c := range comments {
		for _, w := range hotWords(c.Text) {
			counts[w]++
		}
	}
	return topN(counts, hotTopicCount)
}

func engagement(comments []models.Comment) Engagement {
	var likes int64
	for _, c := range comments {
		likes += max(c.LikeCount, 0)
	}
	if likes > int64(len(comments))*highEngagementRate {
		return EngagementHigh
	}
	return EngagementNormal
}
