package store

import (
	"context"
	"sync"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
)

// MemoryStore keeps sessions in a process-wide map. Created empty at
// startup, grows by insertion, never garbage-collected; callers evict
// explicitly with Delete if they need to.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*interview.Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemory creates an empty in-memory session store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*interview.Session),
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*interview.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.Clone(), nil
}

// Put stores a copy of the session, overwriting any prior session under the
// same id.
func (m *MemoryStore) Put(ctx context.Context, s *interview.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}
