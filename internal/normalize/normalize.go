// Package normalize prepares raw user questions for prompt construction.
package normalize

import "strings"

// punctuation is the ASCII punctuation set stripped from questions.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Normalize lowercases text, removes punctuation and collapses whitespace
// runs into single spaces. Empty or punctuation-only input yields "".
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	stripped := strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, lowered)

	return strings.Join(strings.Fields(stripped), " ")
}
