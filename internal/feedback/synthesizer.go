package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
	"github.com/Amaanudeen/ai-interview-bot/internal/oracle"
)

// EmptySummary is returned when an interview ends before any answer was
// recorded. There is nothing to ask the oracle about.
const EmptySummary = "The interview ended before any answers were recorded, so no performance feedback is available."

// Synthesizer produces one consolidated feedback report over a full
// interview history.
type Synthesizer struct {
	oracle oracle.Oracle
}

// New creates a Synthesizer backed by the given oracle.
func New(o oracle.Oracle) *Synthesizer {
	return &Synthesizer{oracle: o}
}

// Summarize asks the oracle for a consolidated report covering every
// exchange in order. The result is opaque text.
func (s *Synthesizer) Summarize(ctx context.Context, history []interview.Exchange) (string, error) {
	if len(history) == 0 {
		return EmptySummary, nil
	}

	var b strings.Builder
	for _, ex := range history {
		fmt.Fprintf(&b, "Q: %s\nA: %s\nScore: %.1f\n", ex.Question, ex.Answer, ex.Score)
	}

	prompt := fmt.Sprintf(`Provide final interview feedback:

%s

Include: overall performance, strengths, improvements, recommendations.`, b.String())

	text, err := s.oracle.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("final feedback: %w", err)
	}
	return strings.TrimSpace(text), nil
}
