// Package config provides configuration management functionality for the llmqa application.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Configuration keys
const (
	KeyProvider    = "provider"
	KeyModel       = "model"
	KeyMaxTokens   = "max_tokens"
	KeyTemperature = "temperature"
	KeyTimeout     = "timeout"
	KeyPromptMode  = "prompt_mode"
	KeyLogLevel    = "log_level"
	KeyServeAddr   = "serve.addr"
)

// SetDefaults registers the built-in defaults with viper.
func SetDefaults() {
	viper.SetDefault(KeyProvider, "openai")
	viper.SetDefault(KeyModel, "")
	viper.SetDefault(KeyMaxTokens, 200)
	viper.SetDefault(KeyTemperature, 0.7)
	viper.SetDefault(KeyTimeout, 30*time.Second)
	viper.SetDefault(KeyPromptMode, "basic")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyServeAddr, ":8501")
}

// GetValue retrieves a configuration value by key
func GetValue(key string) (string, error) {
	if !viper.IsSet(key) {
		return "", fmt.Errorf("key '%s' not found in configuration", key)
	}
	return viper.GetString(key), nil
}

// SetValue sets a configuration value by key and persists it to the config file
func SetValue(key string, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Settings holds the resolved settings for one command run
type Settings struct {
	Provider    string        `validate:"required,oneof=openai gemini"`
	Model       string        `validate:"omitempty,max=128"`
	MaxTokens   int           `validate:"gt=0"`
	Temperature float64       `validate:"gte=0,lte=2"`
	Timeout     time.Duration `validate:"gt=0"`
	PromptMode  string        `validate:"oneof=basic enhanced"`
	LogLevel    string        `validate:"oneof=debug info warn error"`
}

// Resolve resolves settings for a command
// Precedence: command-specific config -> global config -> defaults
// Flags are handled separately in command layer
func Resolve(commandName string) *Settings {
	return &Settings{
		Provider:    commandString(commandName, KeyProvider),
		Model:       commandString(commandName, KeyModel),
		MaxTokens:   viper.GetInt(KeyMaxTokens),
		Temperature: viper.GetFloat64(KeyTemperature),
		Timeout:     viper.GetDuration(KeyTimeout),
		PromptMode:  commandString(commandName, KeyPromptMode),
		LogLevel:    viper.GetString(KeyLogLevel),
	}
}

func commandString(commandName, key string) string {
	commandKey := fmt.Sprintf("commands.%s.%s", commandName, key)
	if viper.IsSet(commandKey) {
		return viper.GetString(commandKey)
	}
	return viper.GetString(key)
}

// ApplyFlags applies flag overrides to settings (called from command layer)
func (s *Settings) ApplyFlags(providerFlag, modelFlag, promptModeFlag string) {
	if providerFlag != "" {
		s.Provider = providerFlag
	}
	if modelFlag != "" {
		s.Model = modelFlag
	}
	if promptModeFlag != "" {
		s.PromptMode = promptModeFlag
	}
}

var validate = validator.New()

// Validate checks the settings are usable
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
