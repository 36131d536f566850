package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty temp home and resets viper.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	t.Setenv("USE_MOCK", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Chdir(home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommandStructure(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{{"ask"}, {"repl"}, {"serve"}, {"tui"}, {"config", "get"}, {"config", "set"}, {"config", "init"}} {
		c, _, err := root.Find(path)
		if err != nil {
			t.Fatalf("could not find %v command: %v", path, err)
		}
		if c.Name() != path[len(path)-1] {
			t.Errorf("expected command %q, got %q", path[len(path)-1], c.Name())
		}
	}

	for _, name := range []string{"config", "provider", "model", "prompt-mode", "debug"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag %q", name)
		}
	}

	serve, _, _ := root.Find([]string{"serve"})
	if serve.Flags().Lookup("addr") == nil {
		t.Error("expected 'serve' to have 'addr' flag")
	}
}

func TestAsk_MockMode(t *testing.T) {
	isolate(t)
	t.Setenv("USE_MOCK", "TRUE")

	out, err := run(t, "ask", "What is the capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "Mock Response: The capital varies by country. For example, the capital of France is Paris.\n", out)
}

func TestAsk_MissingCredential(t *testing.T) {
	isolate(t)

	out, err := run(t, "ask", "hello")
	require.NoError(t, err)
	assert.Equal(t, "Error: OPENAI_API_KEY not found. Please set it: export OPENAI_API_KEY='your-api-key-here'\n", out)
}

func TestAsk_GeminiCredentialName(t *testing.T) {
	isolate(t)

	out, err := run(t, "--provider", "gemini", "ask", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "export GEMINI_API_KEY=")
}

func TestAsk_InvalidFlagValue(t *testing.T) {
	isolate(t)

	_, err := run(t, "--prompt-mode", "fancy", "ask", "hello")
	assert.Error(t, err)
}

func TestRepl_MockSession(t *testing.T) {
	isolate(t)
	t.Setenv("USE_MOCK", "true")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader("tell me about python\nquit\n"))
	root.SetArgs([]string{"repl"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "[MOCK MODE: Using simulated responses]")
	assert.Contains(t, out.String(), "Processed Question: tell me about python")
	assert.Contains(t, out.String(), "Mock Response: Python is a high-level programming language")
	assert.Contains(t, out.String(), "Thank you for using the LLM Q&A System!")
}

func TestConfigInitAndGet(t *testing.T) {
	home := isolate(t)

	out, err := run(t, "config", "init")
	require.NoError(t, err)

	path := filepath.Join(home, "xdg", "llmqa", "config.yaml")
	assert.Equal(t, "Wrote "+path+"\n", out)
	_, err = os.Stat(path)
	require.NoError(t, err)

	out, err = run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")

	viper.Reset()
	out, err = run(t, "config", "get", "max_tokens")
	require.NoError(t, err)
	assert.Equal(t, "200\n", out)
}

func TestDotFileFallback(t *testing.T) {
	home := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".llmqa.yaml"), []byte("prompt_mode: enhanced\n"), 0o644))

	_, err := run(t, "config", "get", "prompt_mode")
	require.NoError(t, err)
	assert.Equal(t, "enhanced", viper.GetString("prompt_mode"))
}
