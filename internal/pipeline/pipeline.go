package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/veracitylab/veracity/internal/cache"
	"github.com/veracitylab/veracity/internal/chunk"
	"github.com/veracitylab/veracity/internal/llm"
	"github.com/veracitylab/veracity/internal/model"
	"github.com/veracitylab/veracity/internal/verify"
	"github.com/veracitylab/veracity/internal/worker"
)

// Pipeline wires the provider client, caches, and verification stages into
// a single entry point for one or many runs.
type Pipeline struct {
	client   llm.Client
	verifier *verify.Verifier
	renderer *Renderer
	config   *model.Config
	logger   zerolog.Logger
}

// NewPipeline creates a pipeline from configuration. The provider client is
// wrapped with rate limiting and, when enabled, an embedding cache.
func NewPipeline(cfg *model.Config, logger zerolog.Logger) (*Pipeline, error) {
	baseClient, err := llm.NewClient(llm.ConfigFromModel(cfg.Provider))
	if err != nil {
		return nil, fmt.Errorf("create provider client: %w", err)
	}

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	client := llm.NewRateLimitedClient(baseClient, limiter)

	var embedder llm.Embedder = client
	if cfg.Cache.Enabled {
		store := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		embedder = llm.NewCachingEmbedder(embedder, store, cfg.Provider.EmbeddingModel, cfg.Cache.DiskTTL, logger)
	}

	chunker := chunk.NewChunker(cfg.Verification.MinSentenceChars)
	preparer := verify.NewPreparer(chunker, embedder, logger)

	verifier := verify.NewVerifier(client, preparer, cfg.Thresholds, verify.Options{
		MaxClaims:   cfg.Verification.MaxClaims,
		Concurrency: cfg.Verification.Concurrency,
	}, logger)

	return &Pipeline{
		client:   client,
		verifier: verifier,
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
		logger:   logger,
	}, nil
}

// Run verifies one answer against its sources
func (p *Pipeline) Run(ctx context.Context, input model.RunInput) (*model.VerificationOutput, error) {
	if input.Answer == "" {
		return nil, fmt.Errorf("answer is empty")
	}

	return p.verifier.VerifyClaims(ctx, input, nil)
}

// CheckProvider verifies the configured provider is reachable
func (p *Pipeline) CheckProvider(ctx context.Context) error {
	if !p.client.IsAvailable(ctx) {
		return fmt.Errorf("provider %q is not available", p.client.Name())
	}
	return nil
}

// RenderReport renders the verification output to the specified files and
// prints a summary to stdout.
func (p *Pipeline) RenderReport(output *model.VerificationOutput, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(output, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(output, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(output)

	return nil
}
