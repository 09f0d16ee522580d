// internal/api/router.go
package api

import "net/http"

// RegisterRoutes wires every endpoint onto the mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /{$}", h.index)

	mux.HandleFunc("POST /api/interview/start", h.startInterview)
	mux.HandleFunc("POST /api/interview/answer", h.submitAnswer)
	mux.HandleFunc("POST /api/interview/transcribe", h.transcribeAudio)
	mux.HandleFunc("GET /api/interview/status/{sessionID}", h.getStatus)
	mux.HandleFunc("DELETE /api/interview/end/{sessionID}", h.endInterview)
}

// GET /
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "AI Interview Bot API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"start_interview":  "/api/interview/start",
			"submit_answer":    "/api/interview/answer",
			"transcribe_audio": "/api/interview/transcribe",
			"get_status":       "/api/interview/status/{session_id}",
			"end_interview":    "/api/interview/end/{session_id}",
		},
	})
}
