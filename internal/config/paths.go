package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "llmqa"

// SearchPaths returns the directories searched for config.yaml, in order.
func SearchPaths() ([]string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return []string{filepath.Join(xdgConfigHome, appName)}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return []string{filepath.Join(home, ".config", appName)}, nil
}

// DotFile is the fallback ~/.llmqa.yaml, used when no config.yaml is found.
func DotFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, "."+appName+".yaml"), nil
}

// DefaultPath is where `config init` writes the config file.
func DefaultPath() (string, error) {
	dirs, err := SearchPaths()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs[0], "config.yaml"), nil
}
