package llm

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/term"
)

// IOStreams abstracts standard I/O for the interactive shells so tests can
// inject buffers and fake TTY detection.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// isTerminalFunc allows lazy evaluation and mocking of TTY detection
	isTerminalFunc func(fd int) bool
	stdinFd        int
	stdoutFd       int
}

// NewIOStreams creates IOStreams connected to os.Stdin/Stdout/Stderr.
func NewIOStreams() *IOStreams {
	return &IOStreams{
		In:             os.Stdin,
		Out:            os.Stdout,
		ErrOut:         os.Stderr,
		isTerminalFunc: term.IsTerminal,
		stdinFd:        int(os.Stdin.Fd()),
		stdoutFd:       int(os.Stdout.Fd()),
	}
}

// IsInteractive returns true if stdin is a TTY (terminal).
func (s *IOStreams) IsInteractive() bool {
	if s.isTerminalFunc == nil {
		return false
	}
	return s.isTerminalFunc(s.stdinFd)
}

// IsFullScreenCapable reports whether both stdin and stdout are terminals,
// which the full-screen TUI needs.
func (s *IOStreams) IsFullScreenCapable() bool {
	if s.isTerminalFunc == nil {
		return false
	}
	return s.isTerminalFunc(s.stdinFd) && s.isTerminalFunc(s.stdoutFd)
}

// TestIOStreams creates IOStreams for testing with in-memory buffers.
// Simulates a TTY by default.
func TestIOStreams() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	in := &bytes.Buffer{}
	out := &bytes.Buffer{}
	return &IOStreams{
		In:             in,
		Out:            out,
		ErrOut:         out,
		isTerminalFunc: func(int) bool { return true },
	}, in, out
}

// TestIOStreamsNonInteractive is TestIOStreams for pipes and CI.
func TestIOStreamsNonInteractive() (*IOStreams, *bytes.Buffer, *bytes.Buffer) {
	streams, in, out := TestIOStreams()
	streams.isTerminalFunc = func(int) bool { return false }
	return streams, in, out
}
