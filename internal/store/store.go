package store

import (
	"context"
	"errors"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
)

var (
	ErrNotFound = errors.New("not found")
)

// Store maps session ids to session state. It is the only shared mutable
// resource in the system.
//
// Get returns a private copy the caller may mutate freely; Put replaces the
// stored session wholesale. Callers commit a state transition with a single
// Put, so a failed operation never leaves a half-applied session behind.
type Store interface {
	Get(ctx context.Context, id string) (*interview.Session, error)
	Put(ctx context.Context, s *interview.Session) error
	Delete(ctx context.Context, id string) error
}
