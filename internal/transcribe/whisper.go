package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// WhisperClient transcribes audio by calling an OpenAI-compatible
// /v1/audio/transcriptions endpoint (whisper.cpp server, faster-whisper,
// or a hosted API).
//
// The client is constructed once at startup and passed to whoever needs
// it; there is no lazy global model handle.
type WhisperClient struct {
	url    string // e.g. "http://localhost:8090"
	model  string // e.g. "whisper-small"
	client *http.Client
	tracer trace.Tracer
}

var _ Transcriber = (*WhisperClient)(nil)

// NewWhisperClient creates a client for the given transcription endpoint.
// Every upload is wrapped in a span from the given tracer.
func NewWhisperClient(url, model string, tracer trace.Tracer) *WhisperClient {
	return &WhisperClient{
		url:   url,
		model: model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		tracer: tracer,
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio and returns the trimmed transcript.
func (w *WhisperClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	ctx, span := w.tracer.Start(ctx, "whisper_transcribe")
	defer span.End()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return "", fmt.Errorf("failed to read audio: %w", err)
	}
	if err := mw.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url+"/v1/audio/transcriptions", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription service returned status %d", resp.StatusCode)
	}

	var tr transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	return strings.TrimSpace(tr.Text), nil
}
