// Package cmd provides the command-line interface for the llmqa application.
package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/connorhough/llmqa/internal/config"
	"github.com/connorhough/llmqa/internal/version"
)

var (
	cfgFile        string
	providerFlag   string
	modelFlag      string
	promptModeFlag string
	debugFlag      bool
)

// Execute builds the root command and runs it with ctx. Called by main.go.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd creates and returns the root command for llmqa
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "llmqa",
		Short: "Ask a hosted LLM questions from the terminal or the browser",
		Long: `llmqa normalizes a question, wraps it in a prompt and asks a hosted
chat-completion model for a short answer.

Shells:
  ask     one question, answer on stdout
  repl    line-by-line question loop
  tui     full-screen terminal page with history
  serve   web page and JSON API

Set OPENAI_API_KEY (or GEMINI_API_KEY with --provider gemini), or USE_MOCK=true
for offline canned answers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default locations: $XDG_CONFIG_HOME/llmqa/config.yaml, ~/.config/llmqa/config.yaml, or ~/.llmqa.yaml)")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "LLM provider (openai, gemini)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "model name (provider default if empty)")
	rootCmd.PersistentFlags().StringVar(&promptModeFlag, "prompt-mode", "", "prompt template (basic, enhanced)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newConfigCmd())

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initConfig()
	}

	return rootCmd
}

// initConfig reads in config file, .env and ENV variables if set.
func initConfig() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dirs, err := config.SearchPaths()
		if err != nil {
			return err
		}
		for _, dir := range dirs {
			viper.AddConfigPath(dir)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("LLMQA")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &notFound):
		return readDotFile()
	default:
		return err
	}
}

// readDotFile falls back to ~/.llmqa.yaml when no config.yaml exists.
func readDotFile() error {
	dot, err := config.DotFile()
	if err != nil {
		return nil
	}
	if _, err := os.Stat(dot); err != nil {
		return nil
	}
	viper.SetConfigFile(dot)
	return viper.ReadInConfig()
}
