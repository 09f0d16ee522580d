package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Amaanudeen/ai-interview-bot/internal/api"
	"github.com/Amaanudeen/ai-interview-bot/internal/evaluator"
	"github.com/Amaanudeen/ai-interview-bot/internal/feedback"
	"github.com/Amaanudeen/ai-interview-bot/internal/infrastructure/config"
	"github.com/Amaanudeen/ai-interview-bot/internal/oracle"
	"github.com/Amaanudeen/ai-interview-bot/internal/question"
	"github.com/Amaanudeen/ai-interview-bot/internal/service"
	"github.com/Amaanudeen/ai-interview-bot/internal/store"
	"github.com/Amaanudeen/ai-interview-bot/internal/telemetry"
	"github.com/Amaanudeen/ai-interview-bot/internal/transcribe"
)

func main() {
	cfg := config.Load()

	logger, err := telemetry.InitLogger(cfg.LogFile)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	tracer, meter, shutdownTelemetry, err := telemetry.InitTelemetry(context.Background())
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer shutdownTelemetry()

	// ── Dependencies ────────────────────────────────────────────────
	sessions, closeStore, err := newStore(cfg)
	if err != nil {
		logger.Error("failed to open session store", "error", err, "backend", cfg.SessionStore)
		os.Exit(1)
	}
	defer closeStore()

	llm := oracle.NewClient(cfg.LLMURL, cfg.LLMModel, tracer)
	interviewSvc := service.NewInterviewService(
		sessions,
		evaluator.New(llm),
		question.New(llm),
		feedback.New(llm),
		logger,
		cfg.MaxQuestions,
	)
	whisper := transcribe.NewWhisperClient(cfg.WhisperURL, cfg.WhisperModel, tracer)
	handler := api.NewHandler(interviewSvc, whisper, cfg.TranscribeWorkers, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → Metrics → mux ────────────
	wrapped := api.Logging(logger)(api.CORS(api.Metrics(meter)(mux)))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           wrapped,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      3 * time.Minute, // answer evaluation waits on the LLM
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "session_store", cfg.SessionStore)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// newStore picks the session store backend from config. The returned close
// func is a no-op for backends without resources to release.
func newStore(cfg *config.Config) (store.Store, func(), error) {
	switch cfg.SessionStore {
	case "sqlite":
		s, err := store.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewRedis(client), func() { client.Close() }, nil
	default:
		return store.NewMemory(), func() {}, nil
	}
}
