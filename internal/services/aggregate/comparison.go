package aggregate

import "github.com/killallgit/pulsegrow-api/internal/models"

// ScorerStats is one scorer's view of a video
type ScorerStats struct {
	Distribution Distribution `json:"distribution"`
	Score        float64      `json:"score"`
}

// Comparison puts the lexicon and classifier verdicts side by side
type Comparison struct {
	Lexicon    ScorerStats `json:"lexicon"`
	Classifier ScorerStats `json:"classifier"`
}

// Compare builds the lexicon vs classifier comparison. It returns nil for
// no comments. Both distributions are relative to all comments, so the
// classifier side sums to less than 1 when some comments fell back.
func Compare(comments []models.Comment) *Comparison {
	if len(comments) == 0 {
		return nil
	}

	lexLabels := make([]models.Sentiment, 0, len(comments))
	clsLabels := make([]models.Sentiment, 0, len(comments))
	var lexSum, clsSum float64
	var clsScored int
	for _, c := range comments {
		lexLabels = append(lexLabels, c.LexiconSentiment)
		lexSum += c.LexiconScore
		if c.ClassifierSentiment != nil {
			clsLabels = append(clsLabels, *c.ClassifierSentiment)
		}
		if c.ClassifierScore != nil {
			clsSum += *c.ClassifierScore
			clsScored++
		}
	}

	cmp := &Comparison{
		Lexicon: ScorerStats{
			Distribution: distribution(lexLabels, len(comments)),
			Score:        lexSum / float64(len(comments)),
		},
		Classifier: ScorerStats{
			Distribution: distribution(clsLabels, len(comments)),
		},
	}
	if clsScored > 0 {
		cmp.Classifier.Score = clsSum / float64(clsScored)
	}
	return cmp
}
