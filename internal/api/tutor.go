package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ashureev/learnzverse/internal/domain"
	"github.com/ashureev/learnzverse/internal/logging"
	"github.com/ashureev/learnzverse/internal/shared"
	"github.com/ashureev/learnzverse/internal/transcript"
	"github.com/go-chi/chi/v5"
)

// History limits for GET /api/history.
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// maxChatBody caps POST /api/chat payloads.
const maxChatBody = 64 << 10

// TutorHandler serves personas, chat, history and progress.
type TutorHandler struct {
	*Handler
}

// NewTutorHandler creates a new tutor handler.
func NewTutorHandler(base *Handler) *TutorHandler {
	return &TutorHandler{Handler: base}
}

// RegisterRoutes registers the tutor routes.
func (h *TutorHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/personas", h.ListPersonas)
		r.Post("/chat", h.Chat)
		r.Get("/history", h.History)
		r.Get("/progress", h.Progress)
	})
}

// ChatRequest is the body of POST /api/chat. Answers depend only on these
// fields, so extra fields such as a turn history are ignored.
type ChatRequest struct {
	Tutor      string `json:"tutor"`
	Message    string `json:"message"`
	ClassLevel string `json:"class_level"`
}

// ChatResponse is the body returned by POST /api/chat.
type ChatResponse struct {
	Response string          `json:"response"`
	Status   string          `json:"status"`
	Persona  *domain.Persona `json:"persona,omitempty"`
	Cached   bool            `json:"cached"`
}

func chatError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"response": message, "status": "error"})
}

// ListPersonas returns the four tutors.
func (h *TutorHandler) ListPersonas(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, domain.Personas())
}

// Chat answers one question and records it.
func (h *TutorHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBody)).Decode(&req); err != nil {
		chatError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, ok := domain.PersonaBySlug(req.Tutor)
	if !ok {
		p, ok = domain.PersonaByKey(req.Tutor)
	}
	if !ok {
		chatError(w, http.StatusBadRequest, "Invalid tutor selected")
		return
	}

	question := strings.TrimSpace(req.Message)
	if question == "" {
		chatError(w, http.StatusBadRequest, "Message cannot be empty")
		return
	}

	level := strings.TrimSpace(req.ClassLevel)
	if level == "" {
		level = domain.DefaultClassLevel
	}

	h.transcript.Log(transcript.Event{
		Channel:    "http",
		EventType:  transcript.EventQuestion,
		Persona:    p.Name,
		Subject:    p.Subject,
		ClassLevel: level,
		Content:    question,
	})

	ans := h.tutor.Ask(p, level, question)

	h.transcript.Log(transcript.Event{
		Channel:    "http",
		EventType:  transcript.EventResponse,
		Persona:    p.Name,
		Subject:    p.Subject,
		ClassLevel: level,
		Content:    ans.Text,
		Meta:       map[string]any{"cached": ans.Cached},
	})

	rec := domain.NewSessionRecord(p, level, question, ans.Text)
	if err := h.repo.SaveSession(r.Context(), rec); err != nil {
		logging.From(r.Context()).Error("failed to save session", "subject", p.Subject, "error", err)
		chatError(w, http.StatusInternalServerError, shared.SaveFailureNotice(err))
		return
	}

	JSON(w, http.StatusOK, ChatResponse{
		Response: ans.Text,
		Status:   "success",
		Persona:  &p,
		Cached:   ans.Cached,
	})
}

// History returns the most recent sessions, newest first.
func (h *TutorHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, MaxHistoryLimit)
	}

	sessions, err := h.repo.RecentSessions(r.Context(), limit)
	if err != nil {
		logging.From(r.Context()).Error("failed to load history", "error", err)
		Error(w, http.StatusInternalServerError, "storage is unavailable")
		return
	}
	if sessions == nil {
		sessions = []*domain.SessionRecord{}
	}
	JSON(w, http.StatusOK, sessions)
}

// Progress returns per-subject session counts.
func (h *TutorHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.repo.ListProgress(r.Context())
	if err != nil {
		logging.From(r.Context()).Error("failed to load progress", "error", err)
		Error(w, http.StatusInternalServerError, "storage is unavailable")
		return
	}
	if progress == nil {
		progress = []*domain.ProgressRecord{}
	}
	JSON(w, http.StatusOK, progress)
}
