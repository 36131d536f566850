package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/connorhough/llmqa/internal/session"
)

func newMockModel() (Model, *session.Session) {
	sess := session.New(nil, session.WithMock(true))
	return New(context.Background(), sess), sess
}

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	updated, cmd := m.Update(tea.KeyMsg{Type: k})
	return updated.(Model), cmd
}

// findTurn runs cmd (and any batched commands) until one yields a turnMsg.
func findTurn(t *testing.T, cmd tea.Cmd) turnMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case turnMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if tm, ok := c().(turnMsg); ok {
				return tm
			}
		}
	}
	t.Fatal("no turn message produced")
	return turnMsg{}
}

func TestSubmit_ProducesTurn(t *testing.T) {
	m, sess := newMockModel()
	m = typeText(m, "What is the capital of France?")

	m, cmd := press(m, tea.KeyEnter)
	if !m.pending {
		t.Fatal("expected pending after submit")
	}
	if m.input.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.input.Value())
	}

	msg := findTurn(t, cmd)
	if msg.err != nil {
		t.Fatalf("unexpected error: %v", msg.err)
	}

	updated, _ := m.Update(msg)
	m = updated.(Model)

	if m.pending {
		t.Error("expected pending cleared after turn")
	}
	if m.last == nil || m.last.Normalized != "what is the capital of france" {
		t.Errorf("unexpected last turn: %+v", m.last)
	}
	if sess.History().Len() != 1 {
		t.Errorf("expected 1 history entry, got %d", sess.History().Len())
	}
	if !strings.Contains(m.View(), "Q1:") {
		t.Error("history panel should list the turn")
	}
}

func TestSubmit_LongQuestionNotTruncated(t *testing.T) {
	m, _ := newMockModel()
	question := strings.Repeat("b", 5000)
	m = typeText(m, question)

	if got := m.input.Value(); got != question {
		t.Fatalf("input holds %d runes, want %d", len([]rune(got)), len(question))
	}

	m, cmd := press(m, tea.KeyEnter)
	msg := findTurn(t, cmd)
	if msg.turn.Question != question {
		t.Errorf("turn question truncated to %d runes", len([]rune(msg.turn.Question)))
	}
}

func TestSubmit_NoDoubleSubmitWhilePending(t *testing.T) {
	m, _ := newMockModel()
	m = typeText(m, "first")
	m, first := press(m, tea.KeyEnter)
	if first == nil {
		t.Fatal("expected a command for the first submit")
	}

	m = typeText(m, "second")
	_, second := press(m, tea.KeyEnter)
	if second != nil {
		t.Error("second submit should be ignored while a turn is pending")
	}
}

func TestSubmit_EmptyShowsWarning(t *testing.T) {
	m, sess := newMockModel()
	m = typeText(m, "   ")

	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("empty submit should not start a turn")
	}
	if m.warning != session.EmptyQuestionMessage {
		t.Errorf("warning = %q", m.warning)
	}
	if sess.History().Len() != 0 {
		t.Error("empty submit should not record history")
	}
}

func TestToggleMockAndClear(t *testing.T) {
	m, sess := newMockModel()

	m, _ = press(m, tea.KeyCtrlT)
	if sess.Mock() {
		t.Error("ctrl+t should disable mock mode")
	}
	if strings.Contains(m.View(), "MOCK MODE") {
		t.Error("mock badge should be hidden")
	}

	m, _ = press(m, tea.KeyCtrlT)
	if !sess.Mock() {
		t.Error("ctrl+t should re-enable mock mode")
	}

	if _, err := sess.Ask(context.Background(), "hello"); err != nil {
		t.Fatal(err)
	}
	_, _ = press(m, tea.KeyCtrlL)
	if sess.History().Len() != 0 {
		t.Error("ctrl+l should clear history")
	}
}

func TestHistoryExpandCollapse(t *testing.T) {
	m, sess := newMockModel()
	for _, q := range []string{"older question", "newer question"} {
		if _, err := sess.Ask(context.Background(), q); err != nil {
			t.Fatal(err)
		}
	}

	m, _ = press(m, tea.KeyTab)
	if m.focus != focusHistory {
		t.Fatal("tab should move focus to history")
	}

	m, _ = press(m, tea.KeyDown)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, _ = press(m, tea.KeyDown)
	if m.cursor != 1 {
		t.Error("cursor should stop at the last entry")
	}

	m, _ = press(m, tea.KeyEnter)
	if !strings.Contains(m.View(), "Processed: older question") {
		t.Error("expanded entry should show its processed question")
	}

	m, _ = press(m, tea.KeyEnter)
	if strings.Contains(m.View(), "Processed: older question") {
		t.Error("second enter should collapse the entry")
	}

	m, _ = press(m, tea.KeyTab)
	if m.focus != focusInput {
		t.Error("tab should return focus to the input")
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m, _ := newMockModel()
		_, cmd := press(m, k)
		if cmd == nil {
			t.Fatalf("%v should quit", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected QuitMsg", k)
		}
	}
}
