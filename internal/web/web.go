// Package web is the browser shell: an HTML page for asking questions and
// browsing recent turns, plus a small JSON API over the same session.
package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/connorhough/llmqa/internal/session"
)

// EmptySubmissionMessage is shown when the question box is blank.
const EmptySubmissionMessage = "Please enter a question before submitting."

const previewRunes = 45

// DefaultRequestTimeout bounds a request; it sits above the answer timeout.
const DefaultRequestTimeout = 45 * time.Second

// Server serves the page and API for one shared session.
type Server struct {
	session *session.Session
	log     *slog.Logger
	tmpl    *template.Template
	valid   *validator.Validate
	router  chi.Router
}

// New wires the routes. requestTimeout <= 0 uses DefaultRequestTimeout.
func New(sess *session.Session, log *slog.Logger, requestTimeout time.Duration) *Server {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	s := &Server{
		session: sess,
		log:     log,
		tmpl:    parseTemplates(),
		valid:   validator.New(),
	}

	r := newRouter(log, requestTimeout)
	r.Get("/", s.handleIndex)
	r.Post("/ask", s.handleAsk)
	r.Post("/history/clear", s.handleClear)
	r.Post("/mock", s.handleMock)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/ask", s.handleAPIAsk)
		r.Get("/history", s.handleAPIHistory)
		r.Delete("/history", s.handleAPIClear)
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

type historyItem struct {
	Index      int
	ID         string
	Preview    string
	Clock      string
	Normalized string
	Answer     string
	Failed     bool
}

type resultView struct {
	Normalized string
	Answer     string
	Failed     bool
}

type pageView struct {
	Mock     bool
	Question string
	Warning  string
	Result   *resultView
	History  []historyItem
}

func (s *Server) page() pageView {
	turns := s.session.History().Turns()
	items := make([]historyItem, 0, len(turns))
	for i, t := range turns {
		items = append(items, historyItem{
			Index:      i + 1,
			ID:         t.ID.String(),
			Preview:    t.Preview(previewRunes),
			Clock:      t.Clock(),
			Normalized: t.Normalized,
			Answer:     t.Answer,
			Failed:     t.Failed(),
		})
	}
	return pageView{Mock: s.session.Mock(), History: items}
}

func (s *Server) render(w http.ResponseWriter, status int, view pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.html", view); err != nil {
		s.log.Error("render page", "err", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, s.page())
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	question := r.PostFormValue("question")

	t, err := s.session.Ask(r.Context(), question)
	if errors.Is(err, session.ErrEmptyQuestion) {
		view := s.page()
		view.Warning = EmptySubmissionMessage
		s.render(w, http.StatusOK, view)
		return
	}
	if err != nil {
		s.log.Error("ask failed", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	view := s.page()
	view.Question = question
	view.Result = &resultView{Normalized: t.Normalized, Answer: t.Answer, Failed: t.Failed()}
	s.render(w, http.StatusOK, view)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.session.ClearHistory()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleMock sets mock mode from the "mock" checkbox; an absent field means off.
func (s *Server) handleMock(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.session.SetMock(r.PostFormValue("mock") != "")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.log.Warn("healthz write failed", "err", err)
	}
}

type askRequest struct {
	Question string `json:"question" validate:"required"`
}

type turnResponse struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Normalized string    `json:"normalized"`
	Answer     string    `json:"answer"`
	Mock       bool      `json:"mock"`
	Fault      string    `json:"fault,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func newTurnResponse(t session.Turn) turnResponse {
	resp := turnResponse{
		ID:         t.ID.String(),
		Question:   t.Question,
		Normalized: t.Normalized,
		Answer:     t.Answer,
		Mock:       t.Mock,
		Timestamp:  t.Timestamp,
	}
	if t.Failed() {
		resp.Fault = t.Fault.String()
	}
	return resp
}

type historyResponse struct {
	Mock  bool           `json:"mock"`
	Turns []turnResponse `json:"turns"`
}

func (s *Server) handleAPIAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid JSON body"})
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if err := s.valid.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: EmptySubmissionMessage})
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
		return
	}

	t, err := s.session.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, session.ErrEmptyQuestion) {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: EmptySubmissionMessage})
			return
		}
		s.log.Error("api ask failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, newTurnResponse(t))
}

func (s *Server) handleAPIHistory(w http.ResponseWriter, r *http.Request) {
	turns := s.session.History().Turns()
	resp := historyResponse{Mock: s.session.Mock(), Turns: make([]turnResponse, 0, len(turns))}
	for _, t := range turns {
		resp.Turns = append(resp.Turns, newTurnResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAPIClear(w http.ResponseWriter, r *http.Request) {
	s.session.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}
