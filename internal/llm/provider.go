// Package llm specifies the provider interface shared by the hosted
// chat-completion back ends, along with the message and fault vocabulary
// the rest of llmqa speaks.
package llm

import (
	"context"
)

// Role tags a prompt message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one role-tagged entry of a prompt.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Provider defines the interface for hosted chat-completion providers
type Provider interface {
	// Generate sends the ordered messages and returns the first completion's text
	Generate(ctx context.Context, messages []Message, opts ...Option) (string, error)

	// DefaultModel returns the default model name for this provider
	DefaultModel() string

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// SplitSystem separates system instructions from the conversational
// messages, for back ends that take the system prompt out of band.
func SplitSystem(messages []Message) (system []string, rest []Message) {
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		rest = append(rest, m)
	}
	return system, rest
}
