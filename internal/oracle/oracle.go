package oracle

import "context"

// Oracle produces a text completion for a prompt.
// Implementations may call an LLM over HTTP or return canned results (for tests).
type Oracle interface {
	// Generate returns the model's raw text output for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
