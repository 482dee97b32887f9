package llm

import (
	"context"

	"github.com/veracitylab/veracity/internal/model"
	"github.com/veracitylab/veracity/internal/worker"
)

// RateLimitedClient wraps a Client with per-operation rate limiting so
// concurrent claim verification cannot exceed the provider's quota.
type RateLimitedClient struct {
	inner   Client
	limiter *worker.Limiter
}

// NewRateLimitedClient creates a rate-limited client
func NewRateLimitedClient(inner Client, limiter *worker.Limiter) *RateLimitedClient {
	return &RateLimitedClient{inner: inner, limiter: limiter}
}

// Name returns the provider name
func (c *RateLimitedClient) Name() string {
	return c.inner.Name()
}

// IsAvailable checks if the provider is properly configured and accessible
func (c *RateLimitedClient) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

// Embed waits for rate limit clearance before delegating
func (c *RateLimitedClient) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if err := c.limiter.Wait(ctx, c.inner.Name()+":embed"); err != nil {
		return nil, err
	}
	return c.inner.Embed(ctx, texts)
}

// Classify waits for rate limit clearance before delegating
func (c *RateLimitedClient) Classify(ctx context.Context, claim, evidence string) (*EntailmentResult, error) {
	if err := c.limiter.Wait(ctx, c.inner.Name()+":classify"); err != nil {
		return nil, err
	}
	return c.inner.Classify(ctx, claim, evidence)
}

// ExtractClaims waits for rate limit clearance before delegating
func (c *RateLimitedClient) ExtractClaims(ctx context.Context, answer string, maxClaims int) ([]model.ExtractedClaim, error) {
	if err := c.limiter.Wait(ctx, c.inner.Name()+":extract"); err != nil {
		return nil, err
	}
	return c.inner.ExtractClaims(ctx, answer, maxClaims)
}
