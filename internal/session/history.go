package session

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultHistorySize is how many turns a session remembers.
const DefaultHistorySize = 5

// History is a fixed-capacity ring of turns. Once full, each new turn
// overwrites the oldest one.
type History struct {
	buf  []Turn
	head int // next write position
	size int
	mu   sync.RWMutex
}

// NewHistory creates a history holding at most capacity turns.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		buf: make([]Turn, capacity),
	}
}

// Push records t as the newest turn, evicting the oldest at capacity.
func (h *History) Push(t Turn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf[h.head] = t
	h.head = (h.head + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// Turns returns a copy of the stored turns, newest first.
func (h *History) Turns() []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Turn, 0, h.size)
	for i := 0; i < h.size; i++ {
		idx := (h.head - 1 - i + len(h.buf)) % len(h.buf)
		out = append(out, h.buf[idx])
	}
	return out
}

// Latest returns the newest turn, if any.
func (h *History) Latest() (Turn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.size == 0 {
		return Turn{}, false
	}
	return h.buf[(h.head-1+len(h.buf))%len(h.buf)], true
}

// Find looks a turn up by ID.
func (h *History) Find(id uuid.UUID) (Turn, bool) {
	for _, t := range h.Turns() {
		if t.ID == id {
			return t, true
		}
	}
	return Turn{}, false
}

// Len returns the number of stored turns.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Capacity returns the maximum number of stored turns.
func (h *History) Capacity() int {
	return len(h.buf)
}

// Clear drops every stored turn.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.buf {
		h.buf[i] = Turn{}
	}
	h.head = 0
	h.size = 0
}
