// internal/service/interview.go
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
	"github.com/Amaanudeen/ai-interview-bot/internal/evaluator"
	"github.com/Amaanudeen/ai-interview-bot/internal/feedback"
	"github.com/Amaanudeen/ai-interview-bot/internal/id"
	"github.com/Amaanudeen/ai-interview-bot/internal/question"
	"github.com/Amaanudeen/ai-interview-bot/internal/store"
)

// StartResult is the outcome of starting an interview.
type StartResult struct {
	SessionID     string
	FirstQuestion string
}

// AnswerResult is the outcome of one answer submission.
// When Complete is true, NextQuestion is empty and FinalFeedback is set.
type AnswerResult struct {
	Feedback      string
	Score         float64
	NextQuestion  string
	IsFollowup    bool
	Complete      bool
	FinalFeedback string
}

// StatusResult is a read-only projection of one session.
type StatusResult struct {
	SessionID       string
	Mode            interview.Mode
	QuestionCount   int
	TotalExchanges  int
	CurrentQuestion string
	Active          bool
}

// EndResult is the outcome of force-terminating an interview.
type EndResult struct {
	FinalFeedback  string
	TotalQuestions int
}

// InterviewService owns the per-session state transitions: after each
// answer it decides whether to follow up, advance, or conclude.
//
// Mutating operations on one session id are serialized by a per-session
// mutex; sessions never block each other. Every oracle call for a step
// completes before the single store.Put that commits the transition, so a
// failed call leaves the session exactly as it was.
type InterviewService struct {
	store     store.Store
	evaluator *evaluator.Evaluator
	questions *question.Generator
	feedback  *feedback.Synthesizer
	logger    *slog.Logger

	maxQuestions int

	mu    sync.Mutex
	locks map[string]*sync.Mutex // sessionID → per-session lock
}

// NewInterviewService creates an InterviewService. maxQuestions <= 0 falls
// back to the default policy of 10.
func NewInterviewService(s store.Store, e *evaluator.Evaluator, q *question.Generator, f *feedback.Synthesizer, logger *slog.Logger, maxQuestions int) *InterviewService {
	if maxQuestions <= 0 {
		maxQuestions = interview.DefaultMaxQuestions
	}
	return &InterviewService{
		store:        s,
		evaluator:    e,
		questions:    q,
		feedback:     f,
		logger:       logger,
		maxQuestions: maxQuestions,
		locks:        make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the mutex serializing mutations for one session id,
// creating it on first use. Locks are never removed; they share the
// process-wide lifetime of the store itself.
func (s *InterviewService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// Start creates a new session and returns the opening question. If
// sessionID is empty a fresh one is generated. Starting with an id that
// already exists overwrites the prior session; histories are never merged.
func (s *InterviewService) Start(ctx context.Context, mode interview.Mode, background, sessionID string) (StartResult, error) {
	if sessionID == "" {
		sessionID = id.NewSessionID()
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess := interview.New(sessionID, mode, background)
	if err := s.store.Put(ctx, sess); err != nil {
		return StartResult{}, err
	}

	s.logger.Info("interview started", "session_id", sessionID, "mode", mode)

	return StartResult{
		SessionID:     sessionID,
		FirstQuestion: sess.CurrentQuestion,
	}, nil
}

// SubmitAnswer evaluates the answer to the session's current question and
// advances the state machine: conclude at the question limit, follow up on
// a weak answer, or move on to a fresh question.
//
// Exactly one exchange is appended per successful call. If any oracle call
// fails the session is left untouched.
func (s *InterviewService) SubmitAnswer(ctx context.Context, sessionID, answer string) (AnswerResult, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return AnswerResult{}, err
	}
	if !sess.Active {
		return AnswerResult{}, interview.ErrEnded
	}

	judgment, err := s.evaluator.Evaluate(ctx, sess.CurrentQuestion, answer, sess.Context)
	if err != nil {
		return AnswerResult{}, err
	}

	// From here on, mutate the working copy only; nothing is visible to
	// other callers until the Put below succeeds.
	ex := interview.Exchange{
		Question:  sess.CurrentQuestion,
		Answer:    answer,
		Feedback:  judgment.Feedback,
		Score:     judgment.Score,
		Timestamp: time.Now(),
	}
	if err := sess.Record(ex); err != nil {
		return AnswerResult{}, err
	}

	result := AnswerResult{
		Feedback: judgment.Feedback,
		Score:    judgment.Score,
	}

	if sess.QuestionCount >= s.maxQuestions {
		final, err := s.feedback.Summarize(ctx, sess.History)
		if err != nil {
			return AnswerResult{}, err
		}
		sess.End()
		result.Complete = true
		result.FinalFeedback = final
	} else {
		var next string
		if judgment.NeedsFollowup {
			next, err = s.questions.Followup(ctx, ex.Question, answer, judgment.Weaknesses)
			result.IsFollowup = true
		} else {
			next, err = s.questions.Next(ctx, sess)
		}
		if err != nil {
			return AnswerResult{}, err
		}
		sess.CurrentQuestion = next
		result.NextQuestion = next
	}

	if err := s.store.Put(ctx, sess); err != nil {
		return AnswerResult{}, err
	}

	s.logger.Info("answer recorded",
		"session_id", sessionID,
		"question_count", sess.QuestionCount,
		"score", judgment.Score,
		"followup", result.IsFollowup,
		"complete", result.Complete,
	)

	return result, nil
}

// Status returns a read-only projection of the session.
func (s *InterviewService) Status(ctx context.Context, sessionID string) (StatusResult, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return StatusResult{}, err
	}

	return StatusResult{
		SessionID:       sess.ID,
		Mode:            sess.Mode,
		QuestionCount:   sess.QuestionCount,
		TotalExchanges:  len(sess.History),
		CurrentQuestion: sess.CurrentQuestion,
		Active:          sess.Active,
	}, nil
}

// End force-terminates the session regardless of how many questions have
// been answered and returns consolidated feedback over whatever history
// exists. Ending an already-ended session produces the summary again.
func (s *InterviewService) End(ctx context.Context, sessionID string) (EndResult, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return EndResult{}, err
	}

	final, err := s.feedback.Summarize(ctx, sess.History)
	if err != nil {
		return EndResult{}, err
	}

	sess.End()
	if err := s.store.Put(ctx, sess); err != nil {
		return EndResult{}, err
	}

	s.logger.Info("interview ended", "session_id", sessionID, "total_questions", sess.QuestionCount)

	return EndResult{
		FinalFeedback:  final,
		TotalQuestions: sess.QuestionCount,
	}, nil
}

// Evict removes a session from the store entirely.
func (s *InterviewService) Evict(ctx context.Context, sessionID string) error {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return s.store.Delete(ctx, sessionID)
}
