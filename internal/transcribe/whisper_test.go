package transcribe_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Amaanudeen/ai-interview-bot/internal/transcribe"
)

func testTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("test")
}

func TestTranscribe(t *testing.T) {
	var gotModel, gotFilename, gotAudio string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse upload: %v", err)
		}
		gotModel = r.FormValue("model")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer file.Close()
		gotFilename = header.Filename
		data, _ := io.ReadAll(file)
		gotAudio = string(data)

		w.Write([]byte(`{"text": "  I have five years of experience  "}`))
	}))
	defer srv.Close()

	c := transcribe.NewWhisperClient(srv.URL, "whisper-small", testTracer())
	text, err := c.Transcribe(context.Background(), "answer.wav", strings.NewReader("fake wav bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "I have five years of experience" {
		t.Errorf("expected trimmed transcript, got %q", text)
	}
	if gotModel != "whisper-small" {
		t.Errorf("unexpected model %q", gotModel)
	}
	if gotFilename != "answer.wav" {
		t.Errorf("unexpected filename %q", gotFilename)
	}
	if gotAudio != "fake wav bytes" {
		t.Errorf("audio bytes did not survive upload: %q", gotAudio)
	}
}

func TestTranscribe_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "decode failed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := transcribe.NewWhisperClient(srv.URL, "whisper-small", testTracer())
	if _, err := c.Transcribe(context.Background(), "answer.wav", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for server failure")
	}
}

func TestTranscribe_RecordsSpan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text": "hello"}`))
	}))
	defer srv.Close()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { tp.Shutdown(context.Background()) })

	c := transcribe.NewWhisperClient(srv.URL, "whisper-small", tp.Tracer("test"))
	if _, err := c.Transcribe(context.Background(), "answer.wav", strings.NewReader("x")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "whisper_transcribe" {
		t.Errorf("unexpected span name %q", spans[0].Name())
	}
}
