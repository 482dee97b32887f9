package entail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/veracitylab/veracity/internal/llm"
	"github.com/veracitylab/veracity/internal/model"
)

// failedReasoning is surfaced when the NLI provider is unreachable
const failedReasoning = "NLI check failed"

// Checker delegates a single claim/evidence pair to the external NLI
// provider and normalizes its verdict. A provider failure degrades to
// NEUTRAL so that verification of other claims is not affected.
type Checker struct {
	classifier llm.EntailmentClassifier
	logger     zerolog.Logger
}

// NewChecker creates an entailment checker
func NewChecker(classifier llm.EntailmentClassifier, logger zerolog.Logger) *Checker {
	return &Checker{classifier: classifier, logger: logger}
}

// Check classifies one claim against one evidence passage
func (c *Checker) Check(ctx context.Context, claim, evidence string) (model.Verdict, string) {
	result, err := c.classifier.Classify(ctx, claim, evidence)
	if err != nil {
		c.logger.Warn().Err(err).Msg("entailment check failed, degrading to NEUTRAL")
		return model.VerdictNeutral, failedReasoning
	}
	return model.NormalizeVerdict(string(result.Verdict)), result.Reasoning
}
