package cmd

import (
	"io"
	"log/slog"

	"github.com/connorhough/llmqa/internal/answer"
	"github.com/connorhough/llmqa/internal/config"
	"github.com/connorhough/llmqa/internal/logger"
	"github.com/connorhough/llmqa/internal/prompt"
	"github.com/connorhough/llmqa/internal/providers"
	"github.com/connorhough/llmqa/internal/session"
)

// resolveSettings merges config, command overrides and flags, then validates.
func resolveSettings(commandName string) (*config.Settings, error) {
	settings := config.Resolve(commandName)
	settings.ApplyFlags(providerFlag, modelFlag, promptModeFlag)
	if debugFlag {
		settings.LogLevel = "debug"
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func newLogger(settings *config.Settings, w io.Writer, json bool) *slog.Logger {
	return logger.New(settings.LogLevel, w, json)
}

// newSession wires the answer client and session for settings. The
// credential is re-read from the environment on each remote turn; mock mode
// starts from USE_MOCK.
func newSession(settings *config.Settings, log *slog.Logger) (*session.Session, error) {
	mode, err := prompt.ParseMode(settings.PromptMode)
	if err != nil {
		return nil, err
	}

	client, err := answer.NewClient(providers.NewFactory(), answer.Options{
		Provider:    settings.Provider,
		Model:       settings.Model,
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
		Timeout:     settings.Timeout,
	}, log)
	if err != nil {
		return nil, err
	}

	env := config.LoadEnvironment()
	log.Debug("session configured",
		"provider", settings.Provider,
		"model", settings.Model,
		"prompt_mode", mode.String(),
		"mock", env.MockEnabled(),
	)

	return session.New(client,
		session.WithMode(mode),
		session.WithMock(env.MockEnabled()),
		session.WithCredential(config.CredentialReader(client.CredentialEnvVar())),
		session.WithLogger(log),
	), nil
}
