package llm

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/veracitylab/veracity/internal/cache"
)

// countingEmbedder records which texts reach the inner embedder
type countingEmbedder struct {
	calls   int
	batches [][]string
}

func (e *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	e.calls++
	e.batches = append(e.batches, texts)

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vectors[i] = []float64{float64(len(text))}
	}
	return vectors, nil
}

func newTestCachingEmbedder(inner Embedder) *CachingEmbedder {
	store := cache.NewMemoryCache(time.Minute, time.Minute)
	return NewCachingEmbedder(inner, store, "test-model", time.Minute, zerolog.Nop())
}

func TestCachingEmbedderMissThenHit(t *testing.T) {
	inner := &countingEmbedder{}
	e := newTestCachingEmbedder(inner)
	ctx := context.Background()

	first, err := e.Embed(ctx, []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("inner calls = %d, want 1", inner.calls)
	}

	second, err := e.Embed(ctx, []string{"alpha", "beta"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("fully cached batch still reached the inner embedder (%d calls)", inner.calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("cached vectors differ from fresh ones")
	}
}

func TestCachingEmbedderPartialHit(t *testing.T) {
	inner := &countingEmbedder{}
	e := newTestCachingEmbedder(inner)
	ctx := context.Background()

	if _, err := e.Embed(ctx, []string{"alpha"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := e.Embed(ctx, []string{"alpha", "gamma", "delta"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d vectors, want 3", len(got))
	}

	// Only the two misses go to the inner embedder, in one batch.
	lastBatch := inner.batches[len(inner.batches)-1]
	if !reflect.DeepEqual(lastBatch, []string{"gamma", "delta"}) {
		t.Errorf("inner batch = %v, want only the misses", lastBatch)
	}

	// Vector positions must follow input order, not hit/miss order.
	if got[0][0] != float64(len("alpha")) || got[1][0] != float64(len("gamma")) || got[2][0] != float64(len("delta")) {
		t.Errorf("vectors out of order: %v", got)
	}
}

func TestCachingEmbedderEmptyInput(t *testing.T) {
	inner := &countingEmbedder{}
	e := newTestCachingEmbedder(inner)

	got, err := e.Embed(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if inner.calls != 0 {
		t.Error("empty input should not reach the inner embedder")
	}
}
