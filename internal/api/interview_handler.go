package api

import (
	"net/http"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartInterviewRequest struct {
	Mode      string `json:"mode" validate:"required,oneof=role resume"`
	Content   string `json:"content" validate:"required"` // job role or resume text
	SessionID string `json:"session_id,omitempty"`
}

type StartInterviewResponse struct {
	SessionID     string `json:"session_id"`
	FirstQuestion string `json:"first_question"`
	Message       string `json:"message"`
}

type SubmitAnswerRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	Answer    string `json:"answer" validate:"required"`
}

type SubmitAnswerResponse struct {
	Feedback          string  `json:"feedback"`
	Score             float64 `json:"score"`
	NextQuestion      *string `json:"next_question"`
	IsFollowup        bool    `json:"is_followup"`
	InterviewComplete bool    `json:"interview_complete"`
	FinalFeedback     *string `json:"final_feedback"`
}

type SessionStatusResponse struct {
	SessionID       string `json:"session_id"`
	Mode            string `json:"mode"`
	QuestionCount   int    `json:"question_count"`
	TotalExchanges  int    `json:"total_exchanges"`
	CurrentQuestion string `json:"current_question"`
	InterviewActive bool   `json:"interview_active"`
}

type EndInterviewResponse struct {
	Message        string `json:"message"`
	FinalFeedback  string `json:"final_feedback"`
	TotalQuestions int    `json:"total_questions"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// POST /api/interview/start
func (h *Handler) startInterview(w http.ResponseWriter, r *http.Request) {
	var req StartInterviewRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	mode, err := interview.ParseMode(req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.interview.Start(r.Context(), mode, req.Content, req.SessionID)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, StartInterviewResponse{
		SessionID:     result.SessionID,
		FirstQuestion: result.FirstQuestion,
		Message:       "Interview started successfully",
	})
}

// POST /api/interview/answer
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.interview.SubmitAnswer(r.Context(), req.SessionID, req.Answer)
	if h.handleServiceError(w, err) {
		return
	}

	resp := SubmitAnswerResponse{
		Feedback:          result.Feedback,
		Score:             result.Score,
		IsFollowup:        result.IsFollowup,
		InterviewComplete: result.Complete,
	}
	if result.Complete {
		resp.FinalFeedback = &result.FinalFeedback
	} else {
		resp.NextQuestion = &result.NextQuestion
	}

	respondJSON(w, http.StatusOK, resp)
}

// GET /api/interview/status/{sessionID}
func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	status, err := h.interview.Status(r.Context(), sessionID)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, SessionStatusResponse{
		SessionID:       status.SessionID,
		Mode:            string(status.Mode),
		QuestionCount:   status.QuestionCount,
		TotalExchanges:  status.TotalExchanges,
		CurrentQuestion: status.CurrentQuestion,
		InterviewActive: status.Active,
	})
}

// DELETE /api/interview/end/{sessionID}
func (h *Handler) endInterview(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")

	result, err := h.interview.End(r.Context(), sessionID)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, EndInterviewResponse{
		Message:        "Interview ended",
		FinalFeedback:  result.FinalFeedback,
		TotalQuestions: result.TotalQuestions,
	})
}
