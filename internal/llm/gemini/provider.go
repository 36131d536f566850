// Package gemini implements the llm.Provider interface for the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/connorhough/llmqa/internal/llm"
)

const (
	ProviderGemini = "gemini"
	APIKeyEnvVar   = "GEMINI_API_KEY"
)

// Provider implements the llm.Provider interface for Gemini API
type Provider struct {
	client *genai.Client
}

// NewProvider creates a new Gemini provider
func NewProvider(ctx context.Context, apiKey string) (*Provider, error) {
	if apiKey == "" {
		return nil, llm.ErrMissingCredential(ProviderGemini, APIKeyEnvVar)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, llm.ErrProviderNotAvailable(ProviderGemini, err)
	}

	return &Provider{client: client}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return ProviderGemini
}

// DefaultModel returns the default model for Gemini
func (p *Provider) DefaultModel() string {
	return DefaultModel()
}

// Generate sends the messages to Gemini and returns the response.
// System messages become the system instruction.
func (p *Provider) Generate(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.BuildOptions(opts)

	modelName := options.Model
	if modelName == "" {
		modelName = p.DefaultModel()
	}

	system, rest := llm.SplitSystem(messages)
	config := generateConfig(system, options)

	contents := make([]*genai.Content, 0, len(rest))
	for _, m := range rest {
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}

	resp, err := p.client.Models.GenerateContent(ctx, modelName, contents, config)
	if err != nil {
		return "", wrapError(err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini API returned no candidates")
	}
	if resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini API returned nil content")
	}

	var result strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			result.WriteString(part.Text)
		}
	}

	return strings.TrimSpace(result.String()), nil
}

func generateConfig(system []string, options *llm.GenerateOptions) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if options.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*options.Temperature))
	}
	return config
}

// wrapError attaches Gemini's HTTP code and status so classification can
// use them when the message text is not conclusive.
func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.RemoteError{
			StatusCode: apiErr.Code,
			Status:     apiErr.Status,
			Err:        err,
		}
	}
	return fmt.Errorf("gemini API error: %w", err)
}
