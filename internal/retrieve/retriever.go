package retrieve

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/veracitylab/veracity/internal/model"
)

// ErrNoPassages is returned when retrieval is attempted with zero evidence
// candidates. Verification cannot proceed for such a claim.
var ErrNoPassages = errors.New("no passages available")

// CosineSimilarity computes the cosine of the angle between two equal-length
// vectors. A zero-norm vector yields 0, never NaN. Unequal lengths are a
// programming error and fail loudly.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimension mismatch: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Retriever ranks candidate passages against a claim embedding and separates
// "best match among cited sources" from "best match globally" to detect
// citation mismatches: the answer cited source X, but the true best evidence
// lives in an uncited source Y.
type Retriever struct {
	mismatchGap float64
}

// NewRetriever creates a retriever with the given citation-mismatch
// similarity gap (0 falls back to the default threshold).
func NewRetriever(mismatchGap float64) *Retriever {
	if mismatchGap <= 0 {
		mismatchGap = model.DefaultThresholds().CitationMismatchGap
	}
	return &Retriever{mismatchGap: mismatchGap}
}

// Retrieve matches one claim embedding against all passage embeddings.
// Preconditions: passages and passageEmbeddings are non-empty and the same
// length; all vectors share the claim embedding's dimension.
func (r *Retriever) Retrieve(claimEmbedding []float64, passages []model.Passage, passageEmbeddings [][]float64, citedSourceIndices []int) (*model.RetrievalResult, error) {
	if len(passages) == 0 || len(passageEmbeddings) == 0 {
		return nil, ErrNoPassages
	}
	if len(passages) != len(passageEmbeddings) {
		return nil, fmt.Errorf("passages and embeddings length mismatch: %d vs %d",
			len(passages), len(passageEmbeddings))
	}

	type scored struct {
		index      int
		similarity float64
	}

	scores := make([]scored, len(passages))
	for i, embedding := range passageEmbeddings {
		similarity, err := CosineSimilarity(claimEmbedding, embedding)
		if err != nil {
			return nil, fmt.Errorf("passage %d: %w", i, err)
		}
		scores[i] = scored{index: i, similarity: similarity}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].similarity > scores[j].similarity
	})

	cited := make(map[int]bool, len(citedSourceIndices))
	for _, n := range citedSourceIndices {
		cited[n] = true
	}

	// Scores are sorted descending, so the first cited hit is the best one.
	citedSupport := 0.0
	for _, s := range scores {
		if cited[passages[s.index].SourceIndex] {
			citedSupport = s.similarity
			break
		}
	}

	best := scores[0]
	result := &model.RetrievalResult{
		BestPassage:        passages[best.index],
		GlobalBestSupport:  best.similarity,
		CitedSourceSupport: citedSupport,
	}

	if len(citedSourceIndices) > 0 &&
		best.similarity-citedSupport > r.mismatchGap &&
		!cited[passages[best.index].SourceIndex] {
		result.CitationMismatch = true
	}

	return result, nil
}
