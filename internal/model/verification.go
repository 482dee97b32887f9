package model

// RunInput is the complete input to one verification run: the synthesized
// answer and the sources it was built from.
type RunInput struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// RetrievalResult is the ephemeral output of matching one claim embedding
// against all passage embeddings.
type RetrievalResult struct {
	BestPassage        Passage `json:"best_passage"`         // Globally best-matching passage
	GlobalBestSupport  float64 `json:"global_best_support"`  // Top cosine similarity across all passages
	CitedSourceSupport float64 `json:"cited_source_support"` // Top similarity restricted to cited sources (0 if none)
	CitationMismatch   bool    `json:"citation_mismatch"`    // Best evidence lives in an uncited source
}

// NumericCheck compares the numbers stated by a claim against the numbers
// found in its best evidence. Carried as a pointer on VerifiedClaim: nil when
// the claim contains no extractable numbers (vacuously consistent).
type NumericCheck struct {
	ClaimNumbers    []string `json:"claim_numbers"`
	EvidenceNumbers []string `json:"evidence_numbers"`
	Match           bool     `json:"match"`
}

// AggregatedVerdict is the combined confidence for one claim
type AggregatedVerdict struct {
	Confidence      float64  `json:"confidence"`       // In [0,1]
	ConfidenceLevel string   `json:"confidence_level"` // "high", "medium", "low"
	Issues          []string `json:"issues,omitempty"` // Human-readable penalty reasons
}

// Confidence level buckets
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// VerifiedClaim is the terminal, immutable record for one claim. Produced
// exactly once per claim; concurrent workers write disjoint result slots.
type VerifiedClaim struct {
	Claim           ExtractedClaim   `json:"claim"`
	Retrieval       *RetrievalResult `json:"retrieval,omitempty"`
	Verdict         Verdict          `json:"verdict"`
	Reasoning       string           `json:"reasoning,omitempty"`
	Numeric         *NumericCheck    `json:"numeric,omitempty"`
	Confidence      float64          `json:"confidence"`
	ConfidenceLevel string           `json:"confidence_level"`
	Issues          []string         `json:"issues,omitempty"`
}

// VerificationSummary tallies claims by entailment category and mismatch type
type VerificationSummary struct {
	Supported          int `json:"supported"`
	Contradicted       int `json:"contradicted"`
	Neutral            int `json:"neutral"`
	CitationMismatches int `json:"citation_mismatches"`
	NumericMismatches  int `json:"numeric_mismatches"`
}

// VerificationOutput is the full run result. Claims appear in the same order
// as the extracted claims; the engine holds no state after returning it.
type VerificationOutput struct {
	RunID             string              `json:"run_id"`
	Claims            []VerifiedClaim     `json:"claims"`
	OverallConfidence int                 `json:"overall_confidence"` // 0-100, mean of per-claim confidences scaled
	Summary           VerificationSummary `json:"summary"`
	DurationMS        int64               `json:"duration_ms"` // Wall-clock duration
}
