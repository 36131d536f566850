package llm

import "testing"

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions([]Option{
		WithModel("gpt-3.5-turbo"),
		WithMaxTokens(200),
		WithTemperature(0.7),
	})

	if opts.Model != "gpt-3.5-turbo" {
		t.Errorf("Model = %q", opts.Model)
	}
	if opts.MaxTokens != 200 {
		t.Errorf("MaxTokens = %d", opts.MaxTokens)
	}
	if opts.Temperature == nil || *opts.Temperature != 0.7 {
		t.Errorf("Temperature = %v", opts.Temperature)
	}

	empty := BuildOptions(nil)
	if empty.Model != "" || empty.MaxTokens != 0 || empty.Temperature != nil {
		t.Errorf("expected zero options, got %+v", empty)
	}
}

func TestSplitSystem(t *testing.T) {
	messages := []Message{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "what is go"},
	}

	system, rest := SplitSystem(messages)
	if len(system) != 1 || system[0] != "be brief" {
		t.Errorf("system = %v", system)
	}
	if len(rest) != 1 || rest[0].Content != "what is go" {
		t.Errorf("rest = %v", rest)
	}
}
