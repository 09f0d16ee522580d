package interview

import (
	"errors"
	"fmt"
	"time"
)

// Mode selects how interview prompts are framed.
type Mode string

const (
	// ModeRole interviews against a job role description.
	ModeRole Mode = "role"
	// ModeResume interviews against the candidate's resume text.
	ModeResume Mode = "resume"
)

// ParseMode validates a raw mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRole, ModeResume:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid interview mode %q", s)
}

// FirstQuestion opens every interview.
const FirstQuestion = "Tell me about yourself"

// DefaultMaxQuestions is how many answers end an interview naturally.
const DefaultMaxQuestions = 10

// ErrEnded is returned when a mutating operation hits a session that has
// already been ended. Once inactive, a session never becomes active again.
var ErrEnded = errors.New("interview already ended")

// Exchange is one question/answer/evaluation record. Exchanges are
// appended to a session's history and never mutated afterwards.
type Exchange struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Feedback  string    `json:"feedback"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the full state of one interview from start to end.
type Session struct {
	ID              string     `json:"id"`
	Mode            Mode       `json:"mode"`
	Context         string     `json:"context"` // job role description or resume text
	History         []Exchange `json:"history"`
	QuestionCount   int        `json:"question_count"`
	CurrentQuestion string     `json:"current_question"`
	Active          bool       `json:"active"`
	StartedAt       time.Time  `json:"started_at"`
}

// New creates an active session awaiting an answer to the opening question.
func New(id string, mode Mode, context string) *Session {
	return &Session{
		ID:              id,
		Mode:            mode,
		Context:         context,
		History:         []Exchange{},
		QuestionCount:   0,
		CurrentQuestion: FirstQuestion,
		Active:          true,
		StartedAt:       time.Now(),
	}
}

// Record appends one exchange and advances the question count.
// Fails without mutating anything if the session has ended.
func (s *Session) Record(ex Exchange) error {
	if !s.Active {
		return ErrEnded
	}
	s.History = append(s.History, ex)
	s.QuestionCount++
	return nil
}

// End marks the session inactive. The transition is one-way.
func (s *Session) End() {
	s.Active = false
}

// Recent returns up to the last n exchanges, oldest first.
func (s *Session) Recent(n int) []Exchange {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

// Clone returns a deep copy so callers can work on a snapshot without
// aliasing the stored history slice.
func (s *Session) Clone() *Session {
	c := *s
	c.History = make([]Exchange, len(s.History))
	copy(c.History, s.History)
	return &c
}
