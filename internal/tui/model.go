// Package tui is the full-screen terminal shell: a question input, an answer
// pane rendered as markdown and a side panel of recent turns.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/connorhough/llmqa/internal/session"
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	previewRunes  = 30
	helpLine      = "enter ask • tab switch focus • ↑/↓ select • ctrl+t mock • ctrl+l clear history • esc quit"
)

type focus int

const (
	focusInput focus = iota
	focusHistory
)

// turnMsg carries a finished turn back to Update.
type turnMsg struct {
	turn session.Turn
	err  error
}

// Model is the bubbletea model for the page.
type Model struct {
	ctx     context.Context
	session *session.Session

	input    textinput.Model
	answer   viewport.Model
	spinner  spinner.Model
	styles   Styles
	renderer *glamour.TermRenderer

	width  int
	height int

	focus    focus
	pending  bool
	warning  string
	last     *session.Turn
	cursor   int
	expanded map[uuid.UUID]bool
}

// New builds the model. ctx bounds every turn it starts.
func New(ctx context.Context, sess *session.Session) Model {
	styles := DefaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Example: What is machine learning?"
	ti.Prompt = "│ "
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Title

	m := Model{
		ctx:      ctx,
		session:  sess,
		input:    ti,
		answer:   viewport.New(0, 0),
		spinner:  sp,
		styles:   styles,
		expanded: make(map[uuid.UUID]bool),
	}
	m.resize(defaultWidth, defaultHeight)
	m.answer.SetContent(styles.Muted.Render("Submit a question and receive an instant AI-generated explanation."))
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.refreshAnswer()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case turnMsg:
		m.pending = false
		if msg.err != nil {
			if errors.Is(msg.err, session.ErrEmptyQuestion) {
				m.warning = session.EmptyQuestionMessage
			} else {
				m.warning = msg.err.Error()
			}
			return m, nil
		}
		t := msg.turn
		m.last = &t
		m.cursor = 0
		m.refreshAnswer()
		m.answer.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.answer, cmd = m.answer.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+t":
		m.session.ToggleMock()
		return m, nil

	case "ctrl+l":
		m.session.ClearHistory()
		m.cursor = 0
		m.expanded = make(map[uuid.UUID]bool)
		return m, nil

	case "tab":
		if m.focus == focusInput {
			m.focus = focusHistory
			m.input.Blur()
			return m, nil
		}
		m.focus = focusInput
		return m, m.input.Focus()
	}

	if m.focus == focusHistory {
		return m.handleHistoryKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m.submit()
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.answer, cmd = m.answer.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	turns := m.session.History().Turns()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(turns)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(turns) {
			id := turns[m.cursor].ID
			m.expanded[id] = !m.expanded[id]
		}
	}
	return m, nil
}

// submit starts a turn unless one is already running.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	question := strings.TrimSpace(m.input.Value())
	if question == "" {
		m.warning = session.EmptyQuestionMessage
		return m, nil
	}

	m.warning = ""
	m.pending = true
	m.input.Reset()

	ctx, sess := m.ctx, m.session
	ask := func() tea.Msg {
		t, err := sess.Ask(ctx, question)
		return turnMsg{turn: t, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, ask)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	sideWidth := width / 3
	mainWidth := width - sideWidth - 4
	// header, input panel, help line and borders
	answerHeight := height - 10
	if answerHeight < 3 {
		answerHeight = 3
	}

	m.input.Width = mainWidth - 6
	m.answer.Width = mainWidth - 4
	m.answer.Height = answerHeight

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.answer.Width),
	)
	if err == nil {
		m.renderer = r
	}
}

func (m *Model) refreshAnswer() {
	if m.last == nil {
		return
	}
	var b strings.Builder
	b.WriteString(m.styles.Label.Render("Processed Question"))
	b.WriteString("\n")
	b.WriteString(m.last.Normalized)
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Answer"))
	b.WriteString("\n")
	if m.last.Failed() {
		b.WriteString(m.styles.Error.Render(m.last.Answer))
	} else {
		b.WriteString(m.renderMarkdown(m.last.Answer))
	}
	m.answer.SetContent(b.String())
}

func (m *Model) renderMarkdown(text string) string {
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// View renders the page.
func (m Model) View() string {
	header := m.styles.Header.Render("LLM Q&A System")
	if m.session.Mock() {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, " ", m.styles.MockBadge.Render("MOCK MODE"))
	}

	main := lipgloss.JoinVertical(lipgloss.Left, m.inputView(), m.answerView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, main, m.historyView())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.styles.Help.Render(helpLine))
}

func (m Model) inputView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Enter Your Question"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	switch {
	case m.pending:
		b.WriteString("\n")
		b.WriteString(m.spinner.View() + " Processing your request...")
	case m.warning != "":
		b.WriteString("\n")
		b.WriteString(m.styles.Warning.Render(m.warning))
	}

	panel := m.styles.Panel
	if m.focus == focusInput {
		panel = m.styles.FocusedPanel
	}
	return panel.Width(m.answer.Width + 2).Render(b.String())
}

func (m Model) answerView() string {
	return m.styles.Panel.Width(m.answer.Width + 2).Render(m.answer.View())
}

func (m Model) historyView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Recent Questions"))
	b.WriteString("\n\n")

	turns := m.session.History().Turns()
	if len(turns) == 0 {
		b.WriteString(m.styles.Muted.Render("No previous questions available."))
	}
	for i, t := range turns {
		marker := "▸"
		if m.expanded[t.ID] {
			marker = "▾"
		}
		line := fmt.Sprintf("%s Q%d: %s (%s)", marker, i+1, t.Preview(previewRunes), t.Clock())
		if m.focus == focusHistory && i == m.cursor {
			line = m.styles.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if m.expanded[t.ID] {
			b.WriteString(m.styles.Muted.Render("  Processed: " + t.Normalized))
			b.WriteString("\n")
			b.WriteString(m.styles.Muted.Render("  Answer: " + t.Answer))
			b.WriteString("\n")
		}
	}

	panel := m.styles.Panel
	if m.focus == focusHistory {
		panel = m.styles.FocusedPanel
	}
	return panel.Width(m.width - m.answer.Width - 10).Render(b.String())
}

// Run starts the program on the given streams and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, sess *session.Session, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		New(ctx, sess),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
