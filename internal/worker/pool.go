// worker/pool.go
package worker

import "context"

// Job produces one result.
type Job[T any] func() T

type job[T any] struct {
	fn    Job[T]
	reply chan T
}

// Pool bounds how many jobs run at once. Each job gets its own reply
// channel, so concurrent callers never see each other's results.
type Pool[T any] struct {
	jobs chan job[T]
}

// NewPool starts workerCount workers sharing a buffered job queue.
func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	p := &Pool[T]{
		jobs: make(chan job[T], bufferSize),
	}

	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	for j := range p.jobs {
		j.reply <- j.fn()
	}
}

// Do submits fn and waits for its result. It returns ctx.Err() if the
// context is done before the job is queued or finishes; the job itself
// still runs to completion once queued.
func (p *Pool[T]) Do(ctx context.Context, fn Job[T]) (T, error) {
	j := job[T]{fn: fn, reply: make(chan T, 1)}

	select {
	case p.jobs <- j:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}

	select {
	case out := <-j.reply:
		return out, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
