package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/connorhough/llmqa/internal/llm"
)

// Turn is one question/answer exchange.
type Turn struct {
	ID         uuid.UUID `json:"id"`
	Question   string    `json:"question"`
	Normalized string    `json:"normalized"`
	Answer     string    `json:"answer"`
	Fault      llm.Kind  `json:"-"`
	Mock       bool      `json:"mock"`
	Timestamp  time.Time `json:"timestamp"`
}

// Failed reports whether Answer is an error message rather than a model answer.
func (t Turn) Failed() bool {
	return t.Fault != llm.KindNone
}

// Clock returns the turn's wall-clock time as HH:MM:SS.
func (t Turn) Clock() string {
	return t.Timestamp.Format("15:04:05")
}

// Preview returns the first n runes of the question.
func (t Turn) Preview(n int) string {
	runes := []rune(t.Question)
	if len(runes) <= n {
		return t.Question
	}
	return string(runes[:n])
}
