package sentiment

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxTopics      = 3
	minTopicLength = 4
)

var topicStopWords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "your": {},
	"about": {}, "really": {}, "what": {}, "when": {}, "they": {}, "them": {},
	"just": {}, "been": {}, "were": {}, "will": {}, "would": {}, "there": {},
	"their": {}, "than": {}, "then": {}, "also": {}, "video": {}, "here": {},
}

// ExtractTopics returns up to three distinct words of four or more
// characters, in order of first appearance, skipping stop words.
func ExtractTopics(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	topics := make([]string, 0, maxTopics)
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTopicLength {
			continue
		}
		if _, stop := topicStopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		topics = append(topics, w)
		if len(topics) == maxTopics {
			break
		}
	}
	return topics
}

// normalizeTopics lowercases, trims, dedupes and caps classifier topics
func normalizeTopics(in []string) []string {
	out := make([]string, 0, maxTopics)
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == maxTopics {
			break
		}
	}
	return out
}
