package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Text-generation oracle
	LLMURL   string // OpenAI-compatible endpoint, e.g. "http://localhost:11434"
	LLMModel string // model name, e.g. "qwen3-8b"

	// Speech-to-text
	WhisperURL        string // OpenAI-compatible transcription endpoint
	WhisperModel      string
	TranscribeWorkers int // concurrent transcription decodes

	// Interview policy
	MaxQuestions int // answers before the interview ends naturally

	// Session store backend: "memory", "sqlite", or "redis"
	SessionStore string
	SQLitePath   string
	RedisAddr    string

	// Logging; empty means stdout
	LogFile string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:     getenvDefault("SERVER_ADDRESS", ":8000"),
		ShutdownTimeout:   getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LLMURL:            getenvDefault("LLM_URL", "http://localhost:11434"),
		LLMModel:          getenvDefault("LLM_MODEL", "qwen3-8b"),
		WhisperURL:        getenvDefault("WHISPER_URL", "http://localhost:8090"),
		WhisperModel:      getenvDefault("WHISPER_MODEL", "whisper-small"),
		TranscribeWorkers: getenvInt("TRANSCRIBE_WORKERS", 2),
		MaxQuestions:      getenvInt("MAX_QUESTIONS", 10),
		SessionStore:      getenvDefault("SESSION_STORE", "memory"),
		SQLitePath:        getenvDefault("SQLITE_PATH", "interviews.db"),
		RedisAddr:         getenvDefault("REDIS_ADDR", "localhost:6379"),
		LogFile:           os.Getenv("LOG_FILE"),
	}
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}
