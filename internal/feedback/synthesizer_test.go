package feedback_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
	"github.com/Amaanudeen/ai-interview-bot/internal/feedback"
)

type promptOracle struct {
	prompt   string
	response string
	err      error
}

func (p *promptOracle) Generate(ctx context.Context, prompt string) (string, error) {
	p.prompt = prompt
	return p.response, p.err
}

func TestSummarize_EmbedsEveryExchange(t *testing.T) {
	o := &promptOracle{response: "Overall a strong performance."}
	s := feedback.New(o)

	history := []interview.Exchange{
		{Question: "Tell me about yourself", Answer: "I build APIs", Score: 0.8},
		{Question: "What is a channel?", Answer: "A typed conduit", Score: 0.9},
	}

	summary, err := s.Summarize(context.Background(), history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Overall a strong performance." {
		t.Errorf("unexpected summary %q", summary)
	}

	for _, want := range []string{"Tell me about yourself", "I build APIs", "Score: 0.8", "What is a channel?", "Score: 0.9"} {
		if !strings.Contains(o.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSummarize_EmptyHistorySkipsOracle(t *testing.T) {
	o := &promptOracle{err: errors.New("should not be called")}
	s := feedback.New(o)

	summary, err := s.Summarize(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != feedback.EmptySummary {
		t.Errorf("expected degenerate summary, got %q", summary)
	}
	if o.prompt != "" {
		t.Error("oracle was called for empty history")
	}
}

func TestSummarize_OracleFailurePropagates(t *testing.T) {
	oracleErr := errors.New("timeout")
	s := feedback.New(&promptOracle{err: oracleErr})

	_, err := s.Summarize(context.Background(), []interview.Exchange{{Question: "q", Answer: "a"}})
	if !errors.Is(err, oracleErr) {
		t.Fatalf("expected wrapped oracle error, got %v", err)
	}
}
