package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/pulsegrow-api/internal/models"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantErr   error
		wantLabel string
	}{
		{"plain object", `{"sentiment":"positive","score":0.8}`, nil, "positive"},
		{"fenced", "```json\n{\"sentiment\":\"negative\"}\n```", nil, "negative"},
		{"embedded in prose", `Sure! {"sentiment":"positive","score":0.8} Hope this helps.`, nil, "positive"},
		{"braces inside strings", `Result: {"sentiment":"neutral","topics":["a } b", "say \"{hi\""]} done`, nil, "neutral"},
		{"no object", "I cannot classify this comment.", ErrNoJSONObject, ""},
		{"unbalanced", `here {"sentiment":"positive"`, ErrNoJSONObject, ""},
		{"empty", "   ", ErrEmptyResponse, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw rawClassification
			err := DecodeJSON(tt.text, &raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, raw.Sentiment)
		})
	}
}

func TestFirstObject(t *testing.T) {
	obj, ok := firstObject(`x {"a":{"b":1}} {"c":2}`)
	require.True(t, ok)
	assert.Equal(t, `{"a":{"b":1}}`, obj)

	obj, ok = firstObject(`{"broken": "value" {"ok":true}`)
	require.True(t, ok)
	assert.Equal(t, `{"ok":true}`, obj)
}

func TestNormalizeClassification(t *testing.T) {
	score := func(v float64) *float64 { return &v }

	tests := []struct {
		name       string
		raw        rawClassification
		wantLabel  models.Sentiment
		wantScore  float64
		wantTopics []string
	}{
		{"label only positive", rawClassification{Sentiment: "Positive"}, models.SentimentPositive, 0.9, []string{}},
		{"label only negative", rawClassification{Label: "NEGATIVE."}, models.SentimentNegative, -0.9, []string{}},
		{"unknown label", rawClassification{Sentiment: "mixed"}, models.SentimentNeutral, 0, []string{}},
		{"score clamped", rawClassification{Sentiment: "positive", Score: score(3)}, models.SentimentPositive, 1, []string{}},
		{
			"topics trimmed",
			rawClassification{Sentiment: "neutral", Score: score(0), Topics: []string{" Camera ", "camera", "audio", "price", "color"}},
			models.SentimentNeutral, 0, []string{"camera", "audio", "price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.raw.normalize()
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantTopics, got.Topics)
		})
	}
}
