package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Amaanudeen/ai-interview-bot/internal/oracle"
)

// Judgment is the structured result of evaluating one answer.
type Judgment struct {
	Feedback      string   `json:"feedback"`
	IsCorrect     bool     `json:"is_correct"`
	NeedsFollowup bool     `json:"needs_followup"`
	Score         float64  `json:"score"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
}

// MalformedOutputError is returned when the model's response cannot be
// parsed into a Judgment, so the caller can distinguish "the model returned
// garbage" from "the model was unreachable."
type MalformedOutputError struct {
	Reason  string
	Raw     string // the payload that failed to parse
	Wrapped error
}

func (e *MalformedOutputError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("malformed model output: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("malformed model output: %s", e.Reason)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Wrapped
}

// Evaluator grades interview answers by asking the oracle for a structured
// judgment and parsing it strictly.
type Evaluator struct {
	oracle   oracle.Oracle
	validate *validator.Validate
}

// New creates an Evaluator backed by the given oracle.
func New(o oracle.Oracle) *Evaluator {
	return &Evaluator{
		oracle:   o,
		validate: validator.New(),
	}
}

// judgmentWire mirrors Judgment but keeps score as a pointer so that a
// response missing the field is rejected rather than silently scored 0.
type judgmentWire struct {
	Feedback      string   `json:"feedback" validate:"required"`
	IsCorrect     bool     `json:"is_correct"`
	NeedsFollowup bool     `json:"needs_followup"`
	Score         *float64 `json:"score" validate:"required,min=0,max=1"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
}

// Evaluate grades one answer against the question and interview context.
// A response that does not parse into the expected shape fails with
// *MalformedOutputError; it is never defaulted.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer, background string) (Judgment, error) {
	prompt := buildEvaluationPrompt(question, answer, background)

	raw, err := e.oracle.Generate(ctx, prompt)
	if err != nil {
		return Judgment{}, fmt.Errorf("evaluate answer: %w", err)
	}

	payload := extractPayload(raw)

	var wire judgmentWire
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return Judgment{}, &MalformedOutputError{
			Reason:  "response is not valid JSON",
			Raw:     payload,
			Wrapped: err,
		}
	}

	if err := e.validate.Struct(wire); err != nil {
		return Judgment{}, &MalformedOutputError{
			Reason:  "response is missing required fields or out of range",
			Raw:     payload,
			Wrapped: err,
		}
	}

	return Judgment{
		Feedback:      wire.Feedback,
		IsCorrect:     wire.IsCorrect,
		NeedsFollowup: wire.NeedsFollowup,
		Score:         *wire.Score,
		Strengths:     wire.Strengths,
		Weaknesses:    wire.Weaknesses,
	}, nil
}

// buildEvaluationPrompt asks for a fixed JSON shape. The schema goes last so
// it is the final thing the model sees.
func buildEvaluationPrompt(question, answer, background string) string {
	return fmt.Sprintf(`Evaluate this interview answer and return JSON:

Question: %s
Answer: %s
Context: %s

Return JSON format:
{
    "feedback": "detailed feedback",
    "is_correct": true/false,
    "needs_followup": true/false,
    "score": 0.0-1.0,
    "strengths": ["strength1"],
    "weaknesses": ["weakness1"]
}`, question, answer, background)
}

// extractPayload pulls the structured payload out of the model's output.
// If the output contains a fenced code block, the payload is the content
// between the first opening fence and the next closing fence (an optional
// language tag like "json" on the fence line is dropped). Otherwise the
// whole trimmed output is the payload.
func extractPayload(s string) string {
	s = strings.TrimSpace(s)

	start := strings.Index(s, "```")
	if start == -1 {
		return s
	}

	rest := s[start+3:]
	rest = strings.TrimPrefix(rest, "json")
	if end := strings.Index(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
