package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
	"github.com/Amaanudeen/ai-interview-bot/internal/store"
)

func TestMemory_GetMissing(t *testing.T) {
	m := store.NewMemory()

	_, err := m.Get(context.Background(), "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	first := interview.New("session_1", interview.ModeRole, "Backend Engineer")
	first.Record(interview.Exchange{Question: "q", Answer: "a"})
	if err := m.Put(ctx, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := interview.New("session_1", interview.ModeResume, "resume text")
	if err := m.Put(ctx, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := m.Get(ctx, "session_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mode != interview.ModeResume {
		t.Errorf("expected overwrite to win, got mode %q", got.Mode)
	}
	if len(got.History) != 0 {
		t.Errorf("histories were merged: %d entries", len(got.History))
	}
}

func TestMemory_GetReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	s := interview.New("session_1", interview.ModeRole, "Backend Engineer")
	s.Record(interview.Exchange{Question: "q", Answer: "a"})
	m.Put(ctx, s)

	// Mutations to the original after Put must be invisible.
	s.Record(interview.Exchange{Question: "q2", Answer: "a2"})

	got, _ := m.Get(ctx, "session_1")
	if len(got.History) != 1 {
		t.Fatalf("Put did not copy: %d entries", len(got.History))
	}

	// Mutations to a Get result must not leak back into the store.
	got.End()
	got.Record(interview.Exchange{})

	again, _ := m.Get(ctx, "session_1")
	if !again.Active {
		t.Error("Get did not return a private copy")
	}
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	m.Put(ctx, interview.New("session_1", interview.ModeRole, "Backend Engineer"))

	if err := m.Delete(ctx, "session_1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.Get(ctx, "session_1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := m.Delete(ctx, "session_1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for double delete, got %v", err)
	}
}
