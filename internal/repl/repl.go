// Package repl is the line-mode shell: one question per line, answers printed
// between separators until the user types quit.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/connorhough/llmqa/internal/llm"
	"github.com/connorhough/llmqa/internal/normalize"
	"github.com/connorhough/llmqa/internal/session"
)

const (
	title       = "LLM Question & Answer System - CLI"
	mockBanner  = "[MOCK MODE: Using simulated responses]"
	inputPrompt = "Enter your question: "
	farewell    = "Thank you for using the LLM Q&A System!"
	interrupted = "Program interrupted by user. Goodbye!"
	ruleWidth   = 60
)

// Shell reads questions from In and writes transcripts to Out.
type Shell struct {
	streams *llm.IOStreams
	session *session.Session
	log     *slog.Logger

	heading lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

// New creates a shell bound to streams.
func New(streams *llm.IOStreams, sess *session.Session, log *slog.Logger) *Shell {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	// Styles are tied to Out so colour is dropped when Out is not a terminal.
	r := lipgloss.NewRenderer(streams.Out)
	return &Shell{
		streams: streams,
		session: sess,
		log:     log,
		heading: r.NewStyle().Bold(true),
		label:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Run loops until quit, end of input or ctx cancellation. Cancellation is the
// interactive interrupt and is not reported as an error.
func (sh *Shell) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	lines, readErrs := readLines(sh.streams.In, stop)

	sh.log.Debug("repl started", "interactive", sh.streams.IsInteractive(), "mock", sh.session.Mock())
	sh.banner()

	for {
		fmt.Fprint(sh.streams.Out, inputPrompt)

		var line string
		select {
		case <-ctx.Done():
			sh.interrupt()
			return nil
		case err := <-readErrs:
			if err != nil {
				return fmt.Errorf("read question: %w", err)
			}
			// End of input behaves like quit.
			sh.quit()
			return nil
		case l := <-lines:
			line = strings.TrimSpace(l)
		}

		if strings.EqualFold(line, "quit") {
			sh.quit()
			return nil
		}
		if line == "" {
			fmt.Fprintln(sh.streams.Out, session.EmptyQuestionMessage)
			fmt.Fprintln(sh.streams.Out)
			continue
		}

		if !sh.turn(ctx, line) {
			return nil
		}
	}
}

// turn runs one question and reports whether the loop should continue.
func (sh *Shell) turn(ctx context.Context, question string) bool {
	out := sh.streams.Out

	fmt.Fprintf(out, "\n%s\n\n", sh.muted.Render("Processing your question..."))
	fmt.Fprintf(out, "Processed Question: %s\n", normalize.Normalize(question))
	fmt.Fprintf(out, "\n%s\n\n", sh.muted.Render("Fetching answer from LLM..."))

	t, err := sh.session.Ask(ctx, question)
	if ctx.Err() != nil {
		sh.interrupt()
		return false
	}
	if errors.Is(err, session.ErrEmptyQuestion) {
		fmt.Fprintln(out, session.EmptyQuestionMessage)
		return true
	}

	rule := strings.Repeat("-", ruleWidth)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, sh.label.Render("ANSWER:"))
	fmt.Fprintln(out, t.Answer)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)

	sh.log.Debug("repl turn printed", "turn_id", t.ID, "failed", t.Failed())
	return true
}

func (sh *Shell) banner() {
	out := sh.streams.Out
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, sh.heading.Render(title))
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Type 'quit' to exit")
	fmt.Fprintln(out)

	if sh.session.Mock() {
		fmt.Fprintln(out, mockBanner)
		fmt.Fprintln(out)
	}
}

func (sh *Shell) quit() {
	fmt.Fprintln(sh.streams.Out)
	fmt.Fprintln(sh.streams.Out, farewell)
}

func (sh *Shell) interrupt() {
	fmt.Fprintln(sh.streams.Out)
	fmt.Fprintln(sh.streams.Out)
	fmt.Fprintln(sh.streams.Out, interrupted)
}

// readLines feeds r line by line into a channel so the loop can also wait on
// ctx. readErrs receives nil at end of input. Closing stop releases the
// reader goroutine once it has a line to hand over; a goroutine still blocked
// in Scan stays there until r yields a line or is closed. For os.Stdin that is
// process exit, and tests close their pipe.
func readLines(r io.Reader, stop <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	readErrs := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErrs <- scanner.Err()
	}()

	return lines, readErrs
}
