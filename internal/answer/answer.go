// Package answer implements the remote answer client: one hosted
// chat-completion round trip per call, with every failure classified and
// rendered to the same display text the shells print.
package answer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/connorhough/llmqa/internal/llm"
	"github.com/connorhough/llmqa/internal/providers"
)

const (
	DefaultMaxTokens   = 200
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second
)

// ProviderSource hands out authenticated providers. *providers.Factory
// satisfies it.
type ProviderSource interface {
	GetProvider(ctx context.Context, name, credential string) (llm.Provider, error)
}

// SourceFunc adapts a function to ProviderSource.
type SourceFunc func(ctx context.Context, name, credential string) (llm.Provider, error)

func (f SourceFunc) GetProvider(ctx context.Context, name, credential string) (llm.Provider, error) {
	return f(ctx, name, credential)
}

// Options fixes the request parameters for every call a Client makes.
type Options struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client sends prompts to a hosted provider.
type Client struct {
	source ProviderSource
	opts   Options
	envVar string
	log    *slog.Logger
}

// NewClient returns a Client for opts.Provider. A zero MaxTokens or Timeout
// falls back to the package default.
func NewClient(source ProviderSource, opts Options, log *slog.Logger) (*Client, error) {
	if opts.Provider == "" {
		opts.Provider = providers.Default
	}
	envVar, err := providers.CredentialEnvVar(opts.Provider)
	if err != nil {
		return nil, err
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		source: source,
		opts:   opts,
		envVar: envVar,
		log:    log.With("provider", opts.Provider),
	}, nil
}

// CredentialEnvVar is the environment variable the credential is read from.
func (c *Client) CredentialEnvVar() string {
	return c.envVar
}

// GetAnswer performs one round trip. An empty credential fails immediately
// without touching the provider source.
func (c *Client) GetAnswer(ctx context.Context, messages []llm.Message, credential string) Result {
	if credential == "" {
		err := llm.ErrMissingCredential(c.opts.Provider, c.envVar)
		c.log.Warn("answer unavailable", "kind", llm.KindMissingCredential.String())
		return Result{Err: err, credentialEnv: c.envVar}
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	start := time.Now()
	c.log.Debug("requesting answer", "model", c.opts.Model, "messages", len(messages), "max_tokens", c.opts.MaxTokens)

	text, err := c.generate(ctx, messages, credential)
	if err != nil {
		classified := llm.Classify(c.opts.Provider, err)
		var pe *llm.ProviderError
		kind := llm.KindOther
		if errors.As(classified, &pe) {
			kind = pe.Kind
		}
		c.log.Warn("answer failed", "kind", kind.String(), "err", err, "duration_ms", time.Since(start).Milliseconds())
		return Result{Err: classified, credentialEnv: c.envVar}
	}

	c.log.Info("answer received", "chars", len(text), "duration_ms", time.Since(start).Milliseconds())
	return Result{Text: text, credentialEnv: c.envVar}
}

func (c *Client) generate(ctx context.Context, messages []llm.Message, credential string) (string, error) {
	provider, err := c.source.GetProvider(ctx, c.opts.Provider, credential)
	if err != nil {
		return "", err
	}

	opts := []llm.Option{
		llm.WithMaxTokens(c.opts.MaxTokens),
		llm.WithTemperature(c.opts.Temperature),
	}
	if c.opts.Model != "" {
		opts = append(opts, llm.WithModel(c.opts.Model))
	}

	return provider.Generate(ctx, messages, opts...)
}

// Result is either an answer (Err == nil) or a classified failure.
type Result struct {
	Text string
	Err  error

	credentialEnv string
}

// Answered returns a successful Result, as produced by the offline responder.
func Answered(text string) Result {
	return Result{Text: text}
}

// OK reports whether the result carries a model answer.
func (r Result) OK() bool {
	return r.Err == nil
}

// Kind returns the fault classification, llm.KindNone on success.
func (r Result) Kind() llm.Kind {
	if r.Err == nil {
		return llm.KindNone
	}
	var pe *llm.ProviderError
	if errors.As(r.Err, &pe) {
		return pe.Kind
	}
	return llm.KindOther
}

// String renders the result as display text: the answer itself, or the
// user-facing message for the fault.
func (r Result) String() string {
	if r.Err == nil {
		return r.Text
	}

	env := r.credentialEnv
	if env == "" {
		env = "API key"
	}

	switch r.Kind() {
	case llm.KindMissingCredential:
		return fmt.Sprintf("Error: %s not found. Please set it: export %s='your-api-key-here'", env, env)
	case llm.KindTimeout:
		return "Error: Request timed out. Please try again."
	case llm.KindRateLimited:
		return "Error: Rate limit exceeded. Please wait a moment and try again."
	case llm.KindAuthRejected:
		return fmt.Sprintf("Error: Invalid API key. Please check your %s.", env)
	default:
		return fmt.Sprintf("Error (%s): %s", llm.TypeName(r.Err), describe(r.Err))
	}
}

// describe returns the text of the underlying failure without llmqa's
// classification prefix.
func describe(err error) string {
	var pe *llm.ProviderError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	return err.Error()
}
