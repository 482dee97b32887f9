package aggregate

import (
	"github.com/veracitylab/veracity/internal/model"
)

// Aggregator folds the per-claim verification signals (entailment verdict,
// retrieval quality, citation-mismatch flag, numeric-consistency flag) into
// one confidence score and level, with an explanation list.
type Aggregator struct {
	thresholds model.Thresholds
}

// NewAggregator creates an aggregator with the given scoring constants
func NewAggregator(thresholds model.Thresholds) *Aggregator {
	return &Aggregator{thresholds: thresholds}
}

// Aggregate combines the signals for one claim. The base confidence comes
// from the entailment verdict; the penalties are multiplicative and applied
// independently, with the numeric mismatch the steepest since a hard factual
// conflict should dominate confidence.
func (a *Aggregator) Aggregate(verdict model.Verdict, retrievalSimilarity float64, citationMismatch bool, numeric *model.NumericCheck) model.AggregatedVerdict {
	t := a.thresholds

	confidence := t.SupportedBase
	var issues []string

	switch verdict {
	case model.VerdictSupported:
	case model.VerdictContradicted:
		confidence = t.ContradictedBase
		issues = append(issues, "evidence contradicts the claim")
	default:
		confidence = t.NeutralBase
		issues = append(issues, "evidence neither supports nor contradicts the claim")
	}

	if retrievalSimilarity < t.LowSimilarity {
		confidence *= t.LowSimilarityPenalty
		issues = append(issues, "low semantic similarity between claim and evidence")
	}
	if citationMismatch {
		confidence *= t.CitationMismatchPenalty
		issues = append(issues, "best evidence found outside the cited sources")
	}
	if numeric != nil && !numeric.Match {
		confidence *= t.NumericMismatchPenalty
		issues = append(issues, "numeric values disagree between claim and evidence")
	}

	// All penalty constants are <=1 today; the clamp guards against a future
	// one that is not.
	if confidence > 1 {
		confidence = 1
	} else if confidence < 0 {
		confidence = 0
	}

	return model.AggregatedVerdict{
		Confidence:      confidence,
		ConfidenceLevel: a.Level(confidence),
		Issues:          issues,
	}
}

// Level discretizes a confidence score into high/medium/low
func (a *Aggregator) Level(confidence float64) string {
	switch {
	case confidence >= a.thresholds.HighConfidence:
		return model.ConfidenceHigh
	case confidence >= a.thresholds.MediumConfidence:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}
