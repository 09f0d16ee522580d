package worker_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Amaanudeen/ai-interview-bot/internal/worker"
)

func TestDo_ReturnsResult(t *testing.T) {
	p := worker.NewPool[int](2, 4)

	got, err := p.Do(context.Background(), func() int { return 42 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestDo_ResultsDoNotInterleave(t *testing.T) {
	p := worker.NewPool[int](4, 8)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			got, err := p.Do(context.Background(), func() int { return n })
			if err != nil {
				t.Errorf("job %d: unexpected error: %v", n, err)
				return
			}
			if got != n {
				t.Errorf("job %d received result %d", n, got)
			}
		}(i)
	}
	wg.Wait()
}

func TestDo_BoundsConcurrency(t *testing.T) {
	p := worker.NewPool[struct{}](2, 8)

	var running, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Do(context.Background(), func() struct{} {
				n := running.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				running.Add(-1)
				return struct{}{}
			})
		}()
	}
	wg.Wait()

	if got := peak.Load(); got > 2 {
		t.Errorf("expected at most 2 concurrent jobs, observed %d", got)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	p := worker.NewPool[int](1, 1)

	release := make(chan struct{})
	go p.Do(context.Background(), func() int {
		<-release
		return 0
	})
	time.Sleep(10 * time.Millisecond) // let the blocker occupy the worker

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Do(ctx, func() int { return 1 })
	close(release)
	if err == nil {
		t.Fatal("expected context error while the pool is busy")
	}
}
