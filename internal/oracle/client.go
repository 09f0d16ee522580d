package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrUnavailable means the model endpoint could not be reached or
	// returned an unusable response.
	ErrUnavailable = errors.New("oracle unavailable")
	// ErrTimeout means the call exceeded its deadline.
	ErrTimeout = errors.New("oracle timeout")
)

// Client calls an OpenAI-compatible LLM endpoint
// (Ollama, LM Studio, vLLM, etc.).
type Client struct {
	url    string       // e.g. "http://localhost:11434"
	model  string       // e.g. "qwen3-8b"
	client *http.Client // reused across calls

	tracer  trace.Tracer
	calls   metric.Int64Counter
	latency metric.Float64Histogram
}

// Compile-time check: *Client satisfies the Oracle interface.
var _ Oracle = (*Client)(nil)

// NewClient creates a client for the given LLM endpoint. Every call is
// wrapped in a span from the given tracer.
func NewClient(url, model string, tracer trace.Tracer) *Client {
	meter := otel.Meter("oracle")
	calls, _ := meter.Int64Counter("oracle.calls",
		metric.WithDescription("Number of text generation calls"))
	latency, _ := meter.Float64Histogram("oracle.latency",
		metric.WithDescription("Text generation call latency in seconds"),
		metric.WithUnit("s"))

	return &Client{
		url:   url,
		model: model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		tracer:  tracer,
		calls:   calls,
		latency: latency,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends one chat completion request and returns the raw text output.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "oracle_generate")
	defer span.End()

	start := time.Now()
	text, err := c.generate(ctx, prompt)
	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	c.calls.Add(ctx, 1, attrs)
	c.latency.Record(ctx, time.Since(start).Seconds(), attrs)
	return text, err
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrUnavailable)
	}

	content := chatResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: empty content", ErrUnavailable)
	}

	return content, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
