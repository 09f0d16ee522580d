package question

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
	"github.com/Amaanudeen/ai-interview-bot/internal/oracle"
)

// ErrGenerationFailed wraps any oracle failure while producing a question.
var ErrGenerationFailed = errors.New("question generation failed")

// recentExchanges caps how much history is embedded in a next-question
// prompt. Older context is dropped, not summarized.
const recentExchanges = 3

// Generator produces interview questions from session state.
type Generator struct {
	oracle oracle.Oracle
}

// New creates a Generator backed by the given oracle.
func New(o oracle.Oracle) *Generator {
	return &Generator{oracle: o}
}

// Next generates a fresh top-level question grounded in the interview mode,
// the candidate context, and the session's last few exchanges.
func (g *Generator) Next(ctx context.Context, sess *interview.Session) (string, error) {
	var b strings.Builder
	for _, ex := range sess.Recent(recentExchanges) {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", ex.Question, ex.Answer)
	}

	prompt := fmt.Sprintf(`Generate a technical interview question for %s: %s

Previous questions:
%s
Return ONLY the question text.`, sess.Mode, sess.Context, b.String())

	text, err := g.oracle.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return strings.TrimSpace(text), nil
}

// Followup generates a follow-up question scoped to the same topic, using
// the weaknesses the evaluator found in the answer.
func (g *Generator) Followup(ctx context.Context, question, answer string, weaknesses []string) (string, error) {
	prompt := fmt.Sprintf(`Generate a follow-up question based on:

Original: %s
Answer: %s
Issues: %s

Return ONLY the follow-up question.`, question, answer, strings.Join(weaknesses, ", "))

	text, err := g.oracle.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return strings.TrimSpace(text), nil
}
