// Package mock produces canned offline answers so the pipeline can run
// without a network or an API key.
package mock

import (
	"fmt"
	"strings"
)

const (
	geographyAnswer   = "Mock Response: The capital varies by country. For example, the capital of France is Paris."
	programmingAnswer = "Mock Response: Python is a high-level programming language known for readability and versatility."
	weatherAnswer     = "Mock Response: I cannot access real-time weather data. Please check a weather service."

	echoLimit = 50
)

// rules are checked in order; the first rule with a matching keyword wins.
var rules = []struct {
	keywords []string
	answer   string
}{
	{[]string{"capital", "city"}, geographyAnswer},
	{[]string{"python", "code"}, programmingAnswer},
	{[]string{"weather", "temperature"}, weatherAnswer},
}

// Answer returns a keyword-selected canned answer for text.
func Answer(text string) string {
	lowered := strings.ToLower(text)

	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.answer
			}
		}
	}

	return fmt.Sprintf("Mock Response: This is a simulated answer to your question about '%s...'", truncate(text, echoLimit))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
