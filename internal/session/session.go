// Package session drives question/answer turns: normalize, build the prompt,
// fetch an answer (remote or mock) and record the turn in a bounded history.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/connorhough/llmqa/internal/answer"
	"github.com/connorhough/llmqa/internal/llm"
	"github.com/connorhough/llmqa/internal/mock"
	"github.com/connorhough/llmqa/internal/normalize"
	"github.com/connorhough/llmqa/internal/prompt"
)

// ErrEmptyQuestion is returned by Ask for blank input; no turn is recorded.
var ErrEmptyQuestion = errors.New("please enter a valid question")

// EmptyQuestionMessage is the line-mode message for blank input.
const EmptyQuestionMessage = "Please enter a valid question."

// State is the position of the current turn in the pipeline.
type State int

const (
	Idle State = iota
	Normalizing
	BuildingPrompt
	AwaitingAnswer
	Rendering
)

func (s State) String() string {
	switch s {
	case Normalizing:
		return "normalizing"
	case BuildingPrompt:
		return "building_prompt"
	case AwaitingAnswer:
		return "awaiting_answer"
	case Rendering:
		return "rendering"
	default:
		return "idle"
	}
}

// Answerer fetches a remote answer. *answer.Client satisfies it.
type Answerer interface {
	GetAnswer(ctx context.Context, messages []llm.Message, credential string) answer.Result
}

// Session owns the history and runs one turn at a time.
type Session struct {
	answerer   Answerer
	credential func() string
	mode       prompt.Mode
	clock      Clock
	log        *slog.Logger
	history    *History

	turnMu sync.Mutex // held for the whole turn

	mu    sync.RWMutex
	state State
	mock  bool
}

// Option configures a Session.
type Option func(*Session)

// WithMode selects the prompt template.
func WithMode(mode prompt.Mode) Option {
	return func(s *Session) { s.mode = mode }
}

// WithMock sets the initial mock-mode switch.
func WithMock(enabled bool) Option {
	return func(s *Session) { s.mock = enabled }
}

// WithCredential sets how the API key is read; it is called once per remote turn.
func WithCredential(fn func() string) Option {
	return func(s *Session) { s.credential = fn }
}

// WithClock overrides the clock used for turn timestamps.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithLogger sets the session logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithHistorySize overrides the history capacity.
func WithHistorySize(n int) Option {
	return func(s *Session) { s.history = NewHistory(n) }
}

// New creates a session. answerer may be nil when the session only ever runs
// in mock mode.
func New(answerer Answerer, opts ...Option) *Session {
	s := &Session{
		answerer:   answerer,
		credential: func() string { return "" },
		clock:      SystemClock,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		history:    NewHistory(DefaultHistorySize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask runs one full turn for question and records it. Blank questions return
// ErrEmptyQuestion. Remote failures are not errors: they come back as a turn
// whose Answer is the failure message and whose Fault is set.
func (s *Session) Ask(ctx context.Context, question string) (Turn, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Turn{}, ErrEmptyQuestion
	}

	s.turnMu.Lock()
	defer s.turnMu.Unlock()
	defer s.setState(Idle)

	s.setState(Normalizing)
	normalized := normalize.Normalize(question)

	s.setState(BuildingPrompt)
	messages := prompt.Build(normalized, s.mode)

	s.setState(AwaitingAnswer)
	mocked := s.Mock()
	res := s.fetch(ctx, messages, mocked)

	s.setState(Rendering)
	turn := Turn{
		ID:         uuid.New(),
		Question:   question,
		Normalized: normalized,
		Answer:     res.String(),
		Fault:      res.Kind(),
		Mock:       mocked,
		Timestamp:  s.clock.Now(),
	}
	s.history.Push(turn)

	s.log.Debug("turn complete", "turn_id", turn.ID, "mock", mocked, "fault", turn.Fault.String(), "history", s.history.Len())
	return turn, nil
}

func (s *Session) fetch(ctx context.Context, messages []llm.Message, mocked bool) answer.Result {
	if mocked {
		return answer.Answered(mock.Answer(messages[len(messages)-1].Content))
	}
	if s.answerer == nil {
		return answer.Result{Err: llm.ErrProviderNotAvailable("none", errors.New("no answer client configured"))}
	}
	return s.answerer.GetAnswer(ctx, messages, s.credential())
}

// State returns the current pipeline state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.log.Debug("session state", "state", st.String())
}

// Mock reports whether mock mode is on.
func (s *Session) Mock() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mock
}

// SetMock switches mock mode. It takes effect from the next turn.
func (s *Session) SetMock(enabled bool) {
	s.mu.Lock()
	s.mock = enabled
	s.mu.Unlock()
	s.log.Info("mock mode changed", "enabled", enabled)
}

// ToggleMock flips mock mode and returns the new value.
func (s *Session) ToggleMock() bool {
	s.mu.Lock()
	s.mock = !s.mock
	enabled := s.mock
	s.mu.Unlock()
	s.log.Info("mock mode changed", "enabled", enabled)
	return enabled
}

// Mode returns the prompt template in use.
func (s *Session) Mode() prompt.Mode {
	return s.mode
}

// History returns the session's turn history.
func (s *Session) History() *History {
	return s.history
}

// ClearHistory drops all recorded turns.
func (s *Session) ClearHistory() {
	s.history.Clear()
	s.log.Info("history cleared")
}
