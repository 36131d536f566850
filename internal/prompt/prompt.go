// Package prompt turns a normalized question into the message pair sent to
// the model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/connorhough/llmqa/internal/llm"
)

// SystemPrompt is sent as the first message of every prompt.
const SystemPrompt = "You are a helpful assistant. Provide concise answers and cite sources when possible."

const enhancedTemplate = `Please answer the following question concisely:

Question: %s

Provide a clear, factual answer. If applicable, cite reliable sources.`

// Mode selects the user message template.
type Mode int

const (
	// Basic sends the normalized question as-is.
	Basic Mode = iota
	// Enhanced embeds the question in an instruction asking for a concise,
	// source-cited answer.
	Enhanced
)

func (m Mode) String() string {
	if m == Enhanced {
		return "enhanced"
	}
	return "basic"
}

// ParseMode maps a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic":
		return Basic, nil
	case "enhanced":
		return Enhanced, nil
	default:
		return Basic, fmt.Errorf("unknown prompt mode %q (valid: basic, enhanced)", s)
	}
}

// Build returns the system message followed by the user message for q.
func Build(q string, mode Mode) []llm.Message {
	content := q
	if mode == Enhanced {
		content = fmt.Sprintf(enhancedTemplate, q)
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: content},
	}
}
