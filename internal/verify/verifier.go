package verify

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/veracitylab/veracity/internal/aggregate"
	"github.com/veracitylab/veracity/internal/entail"
	"github.com/veracitylab/veracity/internal/llm"
	"github.com/veracitylab/veracity/internal/model"
	"github.com/veracitylab/veracity/internal/numeric"
	"github.com/veracitylab/veracity/internal/retrieve"
	"github.com/veracitylab/veracity/internal/worker"
)

// noSourcesIssue is attached to every claim when the sources yielded no
// usable passages
const noSourcesIssue = "No sources available for verification"

// degradedReasoning is surfaced when a worker panics mid-claim
const degradedReasoning = "System error during verification"

// Options bounds one verification run
type Options struct {
	// MaxClaims caps extraction; claims beyond the cap are dropped
	MaxClaims int

	// Concurrency is the per-claim worker budget
	Concurrency int
}

// Verifier orchestrates a full verification run: extract claims, prepare
// evidence, then verify each claim on a bounded worker pool. Stateless
// across runs.
type Verifier struct {
	extractor  llm.ClaimExtractor
	embedder   llm.Embedder
	preparer   *Preparer
	retriever  *retrieve.Retriever
	checker    *entail.Checker
	aggregator *aggregate.Aggregator
	tolerances numeric.Tolerances
	options    Options
	logger     zerolog.Logger
}

// NewVerifier wires the verification stages together
func NewVerifier(client llm.Client, preparer *Preparer, thresholds model.Thresholds, options Options, logger zerolog.Logger) *Verifier {
	if options.MaxClaims <= 0 {
		options.MaxClaims = 10
	}
	if options.Concurrency <= 0 {
		options.Concurrency = 6
	}

	return &Verifier{
		extractor:  client,
		embedder:   client,
		preparer:   preparer,
		retriever:  retrieve.NewRetriever(thresholds.CitationMismatchGap),
		checker:    entail.NewChecker(client, logger),
		aggregator: aggregate.NewAggregator(thresholds),
		tolerances: numeric.Tolerances{
			Percent: thresholds.PercentTolerance,
			Ratio:   thresholds.RatioTolerance,
			Range:   thresholds.RangeTolerance,
		},
		options: options,
		logger:  logger,
	}
}

// VerifyClaims runs the full pipeline for one input. When precomputed is
// nil, evidence preparation overlaps claim extraction; passing a prepared
// evidence set skips both chunking and passage embedding.
func (v *Verifier) VerifyClaims(ctx context.Context, input model.RunInput, precomputed *EvidenceSet) (*model.VerificationOutput, error) {
	start := time.Now()

	var claims []model.ExtractedClaim
	evidence := precomputed

	if evidence == nil {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			claims, err = v.extractClaims(gctx, input.Answer)
			return err
		})
		g.Go(func() error {
			var err error
			evidence, err = v.preparer.Prepare(gctx, input.Sources)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var err error
		claims, err = v.extractClaims(ctx, input.Answer)
		if err != nil {
			return nil, err
		}
	}

	if len(claims) == 0 {
		v.logger.Info().Msg("no claims extracted, nothing to verify")
		return v.buildOutput(nil, start), nil
	}

	if len(evidence.Passages) == 0 {
		// No evidence to check against; every claim comes back NEUTRAL.
		verified := make([]model.VerifiedClaim, len(claims))
		for i, claim := range claims {
			verified[i] = model.VerifiedClaim{
				Claim:           claim,
				Verdict:         model.VerdictNeutral,
				Confidence:      0,
				ConfidenceLevel: model.ConfidenceLow,
				Issues:          []string{noSourcesIssue},
			}
		}
		return v.buildOutput(verified, start), nil
	}

	claimTexts := make([]string, len(claims))
	for i, claim := range claims {
		claimTexts[i] = claim.Text
	}
	claimEmbeddings, err := v.embedder.Embed(ctx, claimTexts)
	if err != nil {
		return nil, fmt.Errorf("embed claims: %w", err)
	}
	if len(claimEmbeddings) != len(claims) {
		return nil, fmt.Errorf("expected %d claim embeddings, got %d", len(claims), len(claimEmbeddings))
	}

	v.logger.Info().
		Int("claims", len(claims)).
		Int("passages", len(evidence.Passages)).
		Int("concurrency", v.options.Concurrency).
		Msg("verifying claims")

	pool := worker.NewPool[model.VerifiedClaim](v.options.Concurrency, len(claims))
	pool.Start(ctx)
	for i := range claims {
		claim := claims[i]
		embedding := claimEmbeddings[i]
		pool.Submit(func(ctx context.Context) model.VerifiedClaim {
			return v.verifyOne(ctx, claim, embedding, evidence)
		})
	}
	verified := pool.Wait()

	return v.buildOutput(verified, start), nil
}

// extractClaims extracts, truncates, and renumbers the claims
func (v *Verifier) extractClaims(ctx context.Context, answer string) ([]model.ExtractedClaim, error) {
	claims, err := v.extractor.ExtractClaims(ctx, answer, v.options.MaxClaims)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	if len(claims) > v.options.MaxClaims {
		claims = claims[:v.options.MaxClaims]
	}
	for i := range claims {
		claims[i].ID = fmt.Sprintf("c%d", i+1)
	}
	return claims, nil
}

// verifyOne runs retrieval, entailment, numeric consistency, and
// aggregation for a single claim. A panic degrades that claim alone.
func (v *Verifier) verifyOne(ctx context.Context, claim model.ExtractedClaim, embedding []float64, evidence *EvidenceSet) (result model.VerifiedClaim) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Error().
				Str("claim_id", claim.ID).
				Interface("panic", r).
				Msg("claim verification panicked")
			result = model.VerifiedClaim{
				Claim:           claim,
				Verdict:         model.VerdictNeutral,
				Reasoning:       degradedReasoning,
				Confidence:      0,
				ConfidenceLevel: model.ConfidenceLow,
				Issues:          []string{degradedReasoning},
			}
		}
	}()

	retrieval, err := v.retriever.Retrieve(embedding, evidence.Passages, evidence.Embeddings, claim.CitedSources)
	if err != nil {
		v.logger.Warn().Str("claim_id", claim.ID).Err(err).Msg("retrieval failed")
		return model.VerifiedClaim{
			Claim:           claim,
			Verdict:         model.VerdictNeutral,
			Confidence:      0,
			ConfidenceLevel: model.ConfidenceLow,
			Issues:          []string{noSourcesIssue},
		}
	}

	verdict, reasoning := v.checker.Check(ctx, claim.Text, retrieval.BestPassage.Text)

	var numericCheck *model.NumericCheck
	claimNumbers := numeric.ExtractNumbers(claim.Text)
	if len(claimNumbers) > 0 {
		evidenceNumbers := numeric.ExtractNumbers(retrieval.BestPassage.Text)
		check := numeric.CheckConsistency(claimNumbers, evidenceNumbers, v.tolerances)
		numericCheck = &check
	}

	aggregated := v.aggregator.Aggregate(verdict, retrieval.GlobalBestSupport, retrieval.CitationMismatch, numericCheck)

	return model.VerifiedClaim{
		Claim:           claim,
		Retrieval:       retrieval,
		Verdict:         verdict,
		Reasoning:       reasoning,
		Numeric:         numericCheck,
		Confidence:      aggregated.Confidence,
		ConfidenceLevel: aggregated.ConfidenceLevel,
		Issues:          aggregated.Issues,
	}
}

// buildOutput assembles the terminal run record
func (v *Verifier) buildOutput(verified []model.VerifiedClaim, start time.Time) *model.VerificationOutput {
	output := &model.VerificationOutput{
		RunID:      uuid.NewString(),
		Claims:     verified,
		DurationMS: time.Since(start).Milliseconds(),
	}

	if len(verified) == 0 {
		return output
	}

	var sum float64
	for _, claim := range verified {
		sum += claim.Confidence

		switch claim.Verdict {
		case model.VerdictSupported:
			output.Summary.Supported++
		case model.VerdictContradicted:
			output.Summary.Contradicted++
		default:
			output.Summary.Neutral++
		}
		if claim.Retrieval != nil && claim.Retrieval.CitationMismatch {
			output.Summary.CitationMismatches++
		}
		if claim.Numeric != nil && !claim.Numeric.Match {
			output.Summary.NumericMismatches++
		}
	}

	output.OverallConfidence = int(math.Round(sum / float64(len(verified)) * 100))
	return output
}
