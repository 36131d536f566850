package llm

import (
	"bytes"
	"testing"
)

func TestIOStreams_IsInteractive(t *testing.T) {
	tests := []struct {
		name       string
		isTerminal func(int) bool
		want       bool
	}{
		{"terminal", func(int) bool { return true }, true},
		{"pipe", func(int) bool { return false }, false},
		{"nil func", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streams := &IOStreams{
				In:             &bytes.Buffer{},
				Out:            &bytes.Buffer{},
				ErrOut:         &bytes.Buffer{},
				isTerminalFunc: tt.isTerminal,
			}
			if got := streams.IsInteractive(); got != tt.want {
				t.Errorf("IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIOStreams_IsFullScreenCapable(t *testing.T) {
	streams := &IOStreams{
		stdinFd:  0,
		stdoutFd: 1,
		// stdin is a terminal, stdout is redirected
		isTerminalFunc: func(fd int) bool { return fd == 0 },
	}

	if !streams.IsInteractive() {
		t.Error("expected stdin to be interactive")
	}
	if streams.IsFullScreenCapable() {
		t.Error("expected redirected stdout to disable full screen")
	}
}

func TestTestIOStreams_CreatesBuffers(t *testing.T) {
	streams, in, out := TestIOStreams()

	if streams.In != in {
		t.Error("expected In to be the input buffer")
	}
	if streams.Out != out {
		t.Error("expected Out to be the output buffer")
	}
	if streams.ErrOut != out {
		t.Error("expected ErrOut to be the output buffer")
	}
	if !streams.IsInteractive() {
		t.Error("expected TestIOStreams to simulate interactive terminal")
	}

	nonInteractive, _, _ := TestIOStreamsNonInteractive()
	if nonInteractive.IsInteractive() {
		t.Error("expected TestIOStreamsNonInteractive to simulate a pipe")
	}
}

func TestNewIOStreams_UsesOsStreams(t *testing.T) {
	streams := NewIOStreams()

	if streams.In == nil || streams.Out == nil || streams.ErrOut == nil {
		t.Fatal("expected all streams to be set")
	}
	if streams.isTerminalFunc == nil {
		t.Error("expected isTerminalFunc to be set")
	}
}
