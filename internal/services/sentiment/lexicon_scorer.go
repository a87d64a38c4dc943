package sentiment

import (
	"math"
	"strings"
	"unicode"

	"github.com/killallgit/pulsegrow-api/internal/models"
)

const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// SubScore is one scorer's verdict for a comment
type SubScore struct {
	Label models.Sentiment `json:"label"`
	Score float64          `json:"score"`
}

// Label buckets a compound score: >= 0.05 positive, <= -0.05 negative.
func Label(score float64) models.Sentiment {
	switch {
	case score >= positiveThreshold:
		return models.SentimentPositive
	case score <= negativeThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// LexiconScorer is a deterministic valence-dictionary scorer in the style of
// VADER. It is safe for concurrent use once constructed.
type LexiconScorer struct {
	lexicon map[string]float64
}

// NewLexiconScorer merges the base lexicon, the slang table and any extra
// terms (extra wins on conflicts).
func NewLexiconScorer(extra map[string]float64) *LexiconScorer {
	lexicon := make(map[string]float64, len(baseLexicon)+len(slangLexicon)+len(extra))
	for _, table := range []map[string]float64{baseLexicon, slangLexicon, extra} {
		for term, valence := range table {
			lexicon[strings.ToLower(term)] = valence
		}
	}
	return &LexiconScorer{lexicon: lexicon}
}

// Score returns the compound polarity of text in [-1, 1] and its label
func (s *LexiconScorer) Score(text string) SubScore {
	compound := s.compound(strings.ToLower(text))
	return SubScore{Label: Label(compound), Score: compound}
}

func (s *LexiconScorer) compound(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	valences := make([]float64, len(tokens))
	for i, tok := range tokens {
		v, ok := s.valence(tok)
		if !ok || v == 0 {
			continue
		}

		for back := 1; back <= 3 && i-back >= 0; back++ {
			prev := tokens[i-back]
			if inc, ok := boosters[prev]; ok {
				scaled := inc * (1 - 0.05*float64(back-1))
				if v < 0 {
					scaled = -scaled
				}
				v += scaled
			}
		}
		for back := 1; back <= 3 && i-back >= 0; back++ {
			if _, ok := negations[tokens[i-back]]; ok {
				v *= negationScalar
				break
			}
		}
		valences[i] = v
	}

	for i, tok := range tokens {
		if tok != "but" {
			continue
		}
		for j := range valences {
			switch {
			case j < i:
				valences[j] *= butBeforeScalar
			case j > i:
				valences[j] *= butAfterScalar
			}
		}
		break
	}

	var sum float64
	for _, v := range valences {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	exclamations := strings.Count(text, "!")
	if exclamations > maxExclamations {
		exclamations = maxExclamations
	}
	emphasis := float64(exclamations) * exclamationBoost
	if sum > 0 {
		sum += emphasis
	} else {
		sum -= emphasis
	}

	compound := sum / math.Sqrt(sum*sum+normalizeAlpha)
	return models.ClampScore(math.Round(compound*10000) / 10000)
}

func (s *LexiconScorer) valence(tok string) (float64, bool) {
	if v, ok := s.lexicon[tok]; ok {
		return v, true
	}
	runes := []rune(tok)
	if len(runes) == 1 {
		v, ok := emojiLexicon[runes[0]]
		return v, ok
	}
	return 0, false
}

// tokenize splits lowercased text into words (letters, digits, inner
// apostrophes) and emits each emoji as its own token.
func tokenize(text string) []string {
	var (
		tokens []string
		word   strings.Builder
	)
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, strings.Trim(word.String(), "'"))
			word.Reset()
		}
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’':
			if r == '’' {
				r = '\''
			}
			word.WriteRune(r)
		case isEmojiRune(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			flush()
		}
	}
	flush()

	out := tokens[:0]
	for _, tok := range tokens {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func isEmojiRune(r rune) bool {
	if r > 0xFFFF {
		return true
	}
	_, ok := emojiLexicon[r]
	return ok
}
