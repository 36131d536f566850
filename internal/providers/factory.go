// Package providers implements the provider factory.
package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/connorhough/llmqa/internal/llm"
	"github.com/connorhough/llmqa/internal/llm/gemini"
	"github.com/connorhough/llmqa/internal/llm/openai"
)

// Default is the provider used when none is configured.
const Default = openai.ProviderOpenAI

// Factory creates and caches provider instances per provider and credential
type Factory struct {
	cache map[cacheKey]llm.Provider
	mu    sync.RWMutex
}

type cacheKey struct {
	name       string
	credential string
}

// NewFactory creates a new provider factory
func NewFactory() *Factory {
	return &Factory{
		cache: make(map[cacheKey]llm.Provider),
	}
}

// GetProvider returns a provider by name, authenticated with credential
func (f *Factory) GetProvider(ctx context.Context, name, credential string) (llm.Provider, error) {
	key := cacheKey{name: name, credential: credential}

	f.mu.RLock()
	if provider, ok := f.cache[key]; ok {
		f.mu.RUnlock()
		return provider, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	if provider, ok := f.cache[key]; ok {
		return provider, nil
	}

	var provider llm.Provider
	var err error

	switch name {
	case openai.ProviderOpenAI:
		provider, err = openai.NewProvider(credential)
	case gemini.ProviderGemini:
		provider, err = gemini.NewProvider(ctx, credential)
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}

	if err != nil {
		return nil, err
	}

	f.cache[key] = provider

	return provider, nil
}

// CredentialEnvVar returns the environment variable holding the API key for
// the named provider.
func CredentialEnvVar(name string) (string, error) {
	switch name {
	case openai.ProviderOpenAI:
		return openai.APIKeyEnvVar, nil
	case gemini.ProviderGemini:
		return gemini.APIKeyEnvVar, nil
	default:
		return "", fmt.Errorf("unknown provider: %s", name)
	}
}

// Names lists the supported providers.
func Names() []string {
	return []string{openai.ProviderOpenAI, gemini.ProviderGemini}
}
