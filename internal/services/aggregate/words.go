package aggregate

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// hotTopicStopWords are skipped when counting hot topics
var hotTopicStopWords = map[string]struct{}{
	"the": {}, "is": {}, "and": {}, "to": {}, "a": {}, "of": {}, "in": {}, "it": {},
	"that": {}, "this": {}, "for": {}, "on": {}, "you": {}, "my": {}, "with": {},
	"video": {}, "bro": {}, "sir": {}, "mam": {},
}

// hotWords returns the whitespace-separated words of text that are purely
// alphanumeric, longer than three characters and not stop words
func hotWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(w) <= 3 || !isAlnum(w) {
			continue
		}
		if _, stop := hotTopicStopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

func isAlnum(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return w != ""
}

// topN returns the n most frequent keys, ties broken alphabetically
func topN(counts map[string]int, n int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// tokens splits lowercased text into letter/digit words and keeps every
// other non-space rune (emoji, punctuation) as its own token
func tokens(text string) []string {
	var (
		out  []string
		word strings.Builder
	)
	flush := func() {
		if word.Len() > 0 {
			out = append(out, word.String())
			word.Reset()
		}
	}
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'':
			word.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			out = append(out, string(r))
		}
	}
	flush()
	return out
}
