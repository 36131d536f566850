package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnvironment_MockEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{" True ", true},
		{"false", false},
		{"1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("USE_MOCK", tt.value)
			if got := LoadEnvironment().MockEnabled(); got != tt.want {
				t.Errorf("MockEnabled() with %q = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestCredentialReader_RereadsEnvironment(t *testing.T) {
	read := CredentialReader("OPENAI_API_KEY")

	t.Setenv("OPENAI_API_KEY", "")
	if got := read(); got != "" {
		t.Errorf("expected empty credential, got %q", got)
	}

	t.Setenv("OPENAI_API_KEY", "sk-later")
	if got := read(); got != "sk-later" {
		t.Errorf("expected credential to be re-read, got %q", got)
	}
}

func TestEnvironment_Credential(t *testing.T) {
	e := Environment{OpenAIKey: "o", GeminiKey: "g"}
	if e.Credential("OPENAI_API_KEY") != "o" || e.Credential("GEMINI_API_KEY") != "g" {
		t.Error("credential lookup mismatch")
	}
	if e.Credential("OTHER") != "" {
		t.Error("unknown variable should yield empty credential")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	// No .env is fine.
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv without file: %v", err)
	}

	t.Setenv("LLMQA_DOTENV_PROBE", "")
	os.Unsetenv("LLMQA_DOTENV_PROBE")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LLMQA_DOTENV_PROBE=loaded\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("LLMQA_DOTENV_PROBE"); got != "loaded" {
		t.Errorf("expected .env value, got %q", got)
	}
}
