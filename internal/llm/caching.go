package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/veracitylab/veracity/internal/cache"
)

// CachingEmbedder wraps an Embedder with a vector cache. Hits are served
// locally; the misses of one batch are embedded together in a single
// inner call.
type CachingEmbedder struct {
	inner          Embedder
	cache          cache.Cache
	embeddingModel string
	ttl            time.Duration
	logger         zerolog.Logger
}

// NewCachingEmbedder creates a caching embedder
func NewCachingEmbedder(inner Embedder, c cache.Cache, embeddingModel string, ttl time.Duration, logger zerolog.Logger) *CachingEmbedder {
	return &CachingEmbedder{
		inner:          inner,
		cache:          c,
		embeddingModel: embeddingModel,
		ttl:            ttl,
		logger:         logger,
	}
}

// Embed returns one vector per text, serving cached vectors where possible
func (e *CachingEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, len(texts))
	var missTexts []string
	var missIndexes []int

	for i, text := range texts {
		key := cache.Key(e.embeddingModel, text)
		if vec, found := e.cache.Get(key); found {
			vectors[i] = vec
			continue
		}
		missTexts = append(missTexts, text)
		missIndexes = append(missIndexes, i)
	}

	e.logger.Debug().
		Int("total", len(texts)).
		Int("hits", len(texts)-len(missTexts)).
		Int("misses", len(missTexts)).
		Msg("embedding cache lookup")

	if len(missTexts) == 0 {
		return vectors, nil
	}

	fresh, err := e.inner.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}

	for j, vec := range fresh {
		i := missIndexes[j]
		vectors[i] = vec
		key := cache.Key(e.embeddingModel, missTexts[j])
		if err := e.cache.Set(key, vec, e.ttl); err != nil {
			// Cache failures never fail the embed; log and continue.
			e.logger.Warn().Err(err).Msg("embedding cache write failed")
		}
	}

	return vectors, nil
}
