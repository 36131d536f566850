package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Environment holds the fixed-name variables read outside viper's prefix.
type Environment struct {
	UseMock   string `env:"USE_MOCK" envDefault:"false"`
	OpenAIKey string `env:"OPENAI_API_KEY"`
	GeminiKey string `env:"GEMINI_API_KEY"`
}

// LoadEnvironment reads Environment from the process environment.
func LoadEnvironment() Environment {
	var e Environment
	if err := env.Parse(&e); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return e
}

// MockEnabled reports whether USE_MOCK is "true" (any case).
func (e Environment) MockEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(e.UseMock), "true")
}

// Credential returns the value of the named credential variable.
func (e Environment) Credential(envVar string) string {
	switch envVar {
	case "OPENAI_API_KEY":
		return e.OpenAIKey
	case "GEMINI_API_KEY":
		return e.GeminiKey
	default:
		return ""
	}
}

// CredentialReader returns a function that re-reads envVar from the process
// environment on every call.
func CredentialReader(envVar string) func() string {
	return func() string {
		return LoadEnvironment().Credential(envVar)
	}
}

// LoadDotEnv loads ./.env into the process environment when present.
// Variables already set are not overridden.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
