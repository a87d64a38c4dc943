package sentiment

// ContainsEmoji reports whether text has any code point outside the Basic
// Multilingual Plane. Nearly all pictographic emoji live there, so this is
// the emoji-driven signal used across the pipeline.
func ContainsEmoji(text string) bool {
	for _, r := range text {
		if r > 0xFFFF {
			return true
		}
	}
	return false
}
