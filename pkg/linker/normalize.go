package linker

import (
	"regexp"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

var (
	// disallowedPattern strips everything except word characters,
	// whitespace, hyphen, colon, '!' and '?'.
	disallowedPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s\-:!?]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize lower-cases text, strips disallowed characters and collapses
// whitespace. The same normalization is shared between cache-key
// generation and similarity scoring; diverging the two would silently
// break cache hits.
func Normalize(text string) string {
	text = strings.ToLower(text)
	text = disallowedPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Similarity returns a sequence ratio in [0, 1] between the normalized
// forms of two strings, computed character-level from longest matching
// blocks.
func Similarity(text1, text2 string) float64 {
	a := splitRunes(Normalize(text1))
	b := splitRunes(Normalize(text2))
	return difflib.NewMatcher(a, b).Ratio()
}

func splitRunes(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
