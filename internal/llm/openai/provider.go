// Package openai implements the llm.Provider interface against the OpenAI
// Chat Completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/connorhough/llmqa/internal/llm"
)

const (
	ProviderOpenAI = "openai"
	APIKeyEnvVar   = "OPENAI_API_KEY"
	DefaultModel   = "gpt-3.5-turbo"
)

// Provider calls the OpenAI Chat Completions API.
type Provider struct {
	client *openai.Client
}

// NewProvider builds a provider for the given API key. Extra request options
// (base URL, HTTP client) are appended after the defaults.
func NewProvider(apiKey string, opts ...option.RequestOption) (*Provider, error) {
	if apiKey == "" {
		return nil, llm.ErrMissingCredential(ProviderOpenAI, APIKeyEnvVar)
	}

	// Failures are terminal for a turn, so the SDK must not retry on its own.
	reqOpts := append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)

	cli := openai.NewClient(reqOpts...)
	return &Provider{client: &cli}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return ProviderOpenAI
}

// DefaultModel returns the default chat model
func (p *Provider) DefaultModel() string {
	return DefaultModel
}

// Generate sends the messages and returns the trimmed first choice.
func (p *Provider) Generate(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
	if p == nil || p.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	options := llm.BuildOptions(opts)

	model := options.Model
	if model == "" {
		model = p.DefaultModel()
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: buildMessages(messages),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(options.MaxTokens))
	}
	if options.Temperature != nil {
		params.Temperature = openai.Float(*options.Temperature)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildMessages(messages []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		default:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		}
	}
	return out
}

// wrapError attaches the API's status and error code so classification can
// fall back on them when the error text is not conclusive.
func wrapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &llm.RemoteError{
			StatusCode: apiErr.StatusCode,
			Status:     apiErr.Code,
			Err:        err,
		}
	}
	return err
}
