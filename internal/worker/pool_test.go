package worker

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewPoolWorkerBounds(t *testing.T) {
	p1 := NewPool[int](5, 10)
	if p1.workers != 5 {
		t.Errorf("expected 5 workers, got %d", p1.workers)
	}

	p2 := NewPool[int](0, 10)
	if p2.workers != 1 {
		t.Errorf("expected default 1 worker for 0 input, got %d", p2.workers)
	}

	p3 := NewPool[int](-1, 10)
	if p3.workers != 1 {
		t.Errorf("expected default 1 worker for negative input, got %d", p3.workers)
	}

	// Never more workers than jobs.
	p4 := NewPool[int](8, 3)
	if p4.workers != 3 {
		t.Errorf("expected workers capped at 3, got %d", p4.workers)
	}
}

func TestPoolPreservesSubmissionOrder(t *testing.T) {
	const total = 20
	pool := NewPool[int](5, total)
	pool.Start(context.Background())

	for i := 0; i < total; i++ {
		i := i
		pool.Submit(func(ctx context.Context) int {
			// Randomized delays so completion order differs from
			// submission order.
			time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
			return i
		})
	}

	results := pool.Wait()
	if len(results) != total {
		t.Fatalf("got %d results, want %d", len(results), total)
	}
	for i, r := range results {
		if r != i {
			t.Fatalf("result[%d] = %d, order not preserved", i, r)
		}
	}
}

func TestPoolRunsEveryJobOnce(t *testing.T) {
	const total = 50
	var executions int32

	pool := NewPool[struct{}](4, total)
	pool.Start(context.Background())

	for i := 0; i < total; i++ {
		pool.Submit(func(ctx context.Context) struct{} {
			atomic.AddInt32(&executions, 1)
			return struct{}{}
		})
	}
	pool.Wait()

	if got := atomic.LoadInt32(&executions); got != total {
		t.Errorf("executed %d jobs, want %d", got, total)
	}
}

func TestPoolFewerJobsThanCapacity(t *testing.T) {
	pool := NewPool[int](2, 10)
	pool.Start(context.Background())

	pool.Submit(func(ctx context.Context) int { return 7 })
	pool.Submit(func(ctx context.Context) int { return 9 })

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0] != 7 || results[1] != 9 {
		t.Errorf("results = %v, want [7 9]", results)
	}
}

func TestPoolOverSubmitPanics(t *testing.T) {
	pool := NewPool[int](1, 1)
	pool.Start(context.Background())
	pool.Submit(func(ctx context.Context) int { return 0 })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on over-submission")
		}
		pool.Wait()
	}()
	pool.Submit(func(ctx context.Context) int { return 1 })
}

func TestPoolContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pool := NewPool[error](2, 4)
	pool.Start(ctx)

	for i := 0; i < 4; i++ {
		pool.Submit(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
				return nil
			}
		})
	}

	cancel()

	done := make(chan []error, 1)
	go func() { done <- pool.Wait() }()

	select {
	case results := <-done:
		for _, err := range results {
			if err != nil && err != context.Canceled {
				t.Errorf("unexpected error: %v", err)
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not drain after context cancellation")
	}
}
