package store_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/Amaanudeen/ai-interview-bot/internal/domain/interview"
	"github.com/Amaanudeen/ai-interview-bot/internal/store"
)

// newRedis connects to the Redis named by TEST_REDIS_ADDR, or skips.
func newRedis(t *testing.T) *store.RedisStore {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis at %s not reachable: %v", addr, err)
	}
	t.Cleanup(func() { client.Close() })
	return store.NewRedis(client)
}

func TestRedis_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newRedis(t)

	sess := interview.New("session_redis_test", interview.ModeResume, "resume text")
	sess.Record(interview.Exchange{Question: "q", Answer: "a", Score: 0.4})

	if err := s.Put(ctx, sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Delete(ctx, sess.ID)

	got, err := s.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Mode != interview.ModeResume || len(got.History) != 1 {
		t.Errorf("session did not survive round trip: %+v", got)
	}
}

func TestRedis_NotFound(t *testing.T) {
	ctx := context.Background()
	s := newRedis(t)

	if _, err := s.Get(ctx, "session_never_created"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, "session_never_created"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
