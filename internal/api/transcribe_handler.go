package api

import (
	"net/http"
)

// maxAudioUpload caps answer recordings at 32 MB.
const maxAudioUpload = 32 << 20

type TranscribeResponse struct {
	Transcription string `json:"transcription"`
}

// POST /api/interview/transcribe
//
// Accepts a multipart upload with an "audio" file field and returns the
// transcript. Decodes run through the worker pool so a burst of uploads
// cannot saturate the transcription backend.
func (h *Handler) transcribeAudio(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUpload)
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		http.Error(w, "invalid multipart upload", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "audio file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ctx := r.Context()
	outcome, err := h.pool.Do(ctx, func() transcribeOutcome {
		text, err := h.transcriber.Transcribe(ctx, header.Filename, file)
		return transcribeOutcome{text: text, err: err}
	})
	if err != nil {
		http.Error(w, "transcription cancelled", http.StatusServiceUnavailable)
		return
	}
	if outcome.err != nil {
		h.logger.Error("transcription failed", "error", outcome.err)
		http.Error(w, "transcription failed", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, TranscribeResponse{Transcription: outcome.text})
}
