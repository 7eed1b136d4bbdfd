// worker/pool.go
package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned for jobs submitted to, or dropped by, a closed pool.
var ErrClosed = errors.New("worker pool closed")

type Job[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	JobID  string
	Output T
	Err    error
}

// Pool runs jobs on a fixed number of goroutines. It caps how many provider
// calls are in flight at once.
type Pool[T any] struct {
	jobs chan jobWrapper[T]
	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

type jobWrapper[T any] struct {
	id     string
	ctx    context.Context
	fn     Job[T]
	result chan Result[T]
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool[T]{
		jobs: make(chan jobWrapper[T], bufferSize),
		quit: make(chan struct{}),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case job := <-p.jobs:
			res := Result[T]{JobID: job.id}
			if err := job.ctx.Err(); err != nil {
				res.Err = err
			} else {
				res.Output, res.Err = job.fn(job.ctx)
			}
			job.result <- res
		}
	}
}

// Submit queues fn and returns the channel its single result is sent on.
// It blocks while the queue is full.
func (p *Pool[T]) Submit(ctx context.Context, id string, fn Job[T]) (<-chan Result[T], error) {
	select {
	case <-p.quit:
		return nil, ErrClosed
	default:
	}

	job := jobWrapper[T]{id: id, ctx: ctx, fn: fn, result: make(chan Result[T], 1)}
	select {
	case <-p.quit:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	case p.jobs <- job:
		return job.result, nil
	}
}

// Do submits fn and waits for its result.
func (p *Pool[T]) Do(ctx context.Context, id string, fn Job[T]) (T, error) {
	var zero T
	results, err := p.Submit(ctx, id, fn)
	if err != nil {
		return zero, err
	}
	select {
	case res := <-results:
		return res.Output, res.Err
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-p.quit:
		// A worker may have finished the job just before shutdown.
		select {
		case res := <-results:
			return res.Output, res.Err
		default:
			return zero, ErrClosed
		}
	}
}

// Close stops the workers after their current job. Queued jobs are dropped.
func (p *Pool[T]) Close() {
	p.once.Do(func() { close(p.quit) })
	p.wg.Wait()
}
