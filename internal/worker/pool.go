package worker

import (
	"context"
	"sync"
)

// Pool runs submitted tasks on a fixed number of workers and returns their
// results in submission order. Results are written to pre-sized slots
// indexed at submission time, so workers never contend on the result slice
// and completion order cannot reorder the output.
type Pool[T any] struct {
	workers    int
	jobQueue   chan indexedJob[T]
	results    []T
	next       int
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
}

type indexedJob[T any] struct {
	index int
	run   func(ctx context.Context) T
}

// NewPool creates a pool for a known number of tasks
func NewPool[T any](workers, total int) *Pool[T] {
	if workers <= 0 {
		workers = 1
	}
	if workers > total && total > 0 {
		workers = total
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool[T]{
		workers:    workers,
		jobQueue:   make(chan indexedJob[T], total),
		results:    make([]T, total),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker goroutines. The given context bounds all task
// executions; cancelling it stops workers after their current task.
func (p *Pool[T]) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			// Each job owns its slot; writes are disjoint.
			p.results[job.index] = job.run(ctx)
		}
	}
}

// Submit enqueues the next task. Submitting more tasks than the total given
// to NewPool is a programming error and panics.
func (p *Pool[T]) Submit(run func(ctx context.Context) T) {
	if p.next >= len(p.results) {
		panic("worker: submitted more jobs than pool capacity")
	}
	job := indexedJob[T]{index: p.next, run: run}
	p.next++

	select {
	case <-p.ctx.Done():
	case p.jobQueue <- job:
	}
}

// Wait blocks until all submitted tasks finish and returns their results in
// submission order.
func (p *Pool[T]) Wait() []T {
	close(p.jobQueue)
	p.wg.Wait()
	p.cancelFunc()
	return p.results[:p.next]
}

// Shutdown stops the pool without waiting for queued tasks
func (p *Pool[T]) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
}
