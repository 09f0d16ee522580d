// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
	"github.com/Amaanudeen/ai-interview-bot/internal/service"
	"github.com/Amaanudeen/ai-interview-bot/internal/store"
	"github.com/Amaanudeen/ai-interview-bot/internal/transcribe"
	"github.com/Amaanudeen/ai-interview-bot/internal/worker"
)

// transcribeOutcome carries one transcription result through the worker pool.
type transcribeOutcome struct {
	text string
	err  error
}

// Handler holds all dependencies needed by HTTP handlers.
// Instead of relying on package-level globals, every handler method
// receives its dependencies through this struct.
type Handler struct {
	interview   *service.InterviewService
	transcriber transcribe.Transcriber
	pool        *worker.Pool[transcribeOutcome]
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewHandler creates a Handler with the given dependencies. transcribeWorkers
// bounds how many audio decodes run at once.
func NewHandler(svc *service.InterviewService, t transcribe.Transcriber, transcribeWorkers int, logger *slog.Logger) *Handler {
	if transcribeWorkers <= 0 {
		transcribeWorkers = 1
	}
	return &Handler{
		interview:   svc,
		transcriber: t,
		pool:        worker.NewPool[transcribeOutcome](transcribeWorkers, transcribeWorkers*2),
		validate:    validator.New(),
		logger:      logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v and validates it. Returns
// false (after writing a client error) if the request is unusable.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// handleServiceError maps service errors onto HTTP status codes. Returns
// true if an error was handled (caller should return).
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, interview.ErrEnded):
		http.Error(w, "interview already ended", http.StatusBadRequest)
	default:
		h.logger.Error("interview error", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return true
}
