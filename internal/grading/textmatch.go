package grading

import (
	"github.com/hagwonlab/academy-backend/internal/normalization"
)

// matchChoice compares an mcq response against the key: trimmed,
// case-insensitive equality. Choice indexes are encoded as strings
// ("0", "1", ...) so no numeric parsing is involved.
func matchChoice(response, key string) bool {
	r := normalization.ParseInputString(response)
	if r == "" {
		return false
	}
	return r == normalization.ParseInputString(key)
}

// matchShortAnswer compares free-text answers: trimmed, case-insensitive,
// inner whitespace collapsed. With ignorePunct, punctuation is stripped
// from both sides before comparing.
func matchShortAnswer(response, key string, ignorePunct bool) bool {
	r := normalizeShort(response, ignorePunct)
	if r == "" {
		return false
	}
	return r == normalizeShort(key, ignorePunct)
}

func normalizeShort(s string, ignorePunct bool) string {
	out := normalization.CollapseWhitespace(normalization.ParseInputString(s))
	if ignorePunct {
		out = normalization.CollapseWhitespace(normalization.StripPunctuation(out))
	}
	return out
}
