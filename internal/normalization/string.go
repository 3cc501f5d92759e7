package normalization

import (
	"strings"
	"unicode"
)

func ParseInputString(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	return normalized
}

// CollapseWhitespace folds any run of whitespace into a single space.
func CollapseWhitespace(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// StripPunctuation drops unicode punctuation characters.
func StripPunctuation(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
