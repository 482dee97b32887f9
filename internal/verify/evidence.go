package verify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/veracitylab/veracity/internal/chunk"
	"github.com/veracitylab/veracity/internal/llm"
	"github.com/veracitylab/veracity/internal/model"
)

// EvidenceSet is the chunked and embedded evidence for one run. Passages
// and Embeddings are parallel slices.
type EvidenceSet struct {
	Passages   []model.Passage
	Embeddings [][]float64
}

// Preparer chunks all source snippets into passages and embeds them in one
// batch. The result is reused by every claim in the run.
type Preparer struct {
	chunker  *chunk.Chunker
	embedder llm.Embedder
	logger   zerolog.Logger
}

// NewPreparer creates an evidence preparer
func NewPreparer(chunker *chunk.Chunker, embedder llm.Embedder, logger zerolog.Logger) *Preparer {
	return &Preparer{chunker: chunker, embedder: embedder, logger: logger}
}

// Prepare chunks and embeds the sources. Zero passages is a valid outcome
// (all snippets empty or too short), not an error.
func (p *Preparer) Prepare(ctx context.Context, sources []model.Source) (*EvidenceSet, error) {
	passages := p.chunker.ChunkSources(sources)
	if len(passages) == 0 {
		p.logger.Warn().Int("sources", len(sources)).Msg("no usable passages from sources")
		return &EvidenceSet{}, nil
	}

	texts := make([]string, len(passages))
	for i, passage := range passages {
		texts[i] = passage.Text
	}

	embeddings, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed passages: %w", err)
	}
	if len(embeddings) != len(passages) {
		return nil, fmt.Errorf("expected %d passage embeddings, got %d", len(passages), len(embeddings))
	}

	p.logger.Debug().
		Int("sources", len(sources)).
		Int("passages", len(passages)).
		Msg("evidence prepared")

	return &EvidenceSet{Passages: passages, Embeddings: embeddings}, nil
}
