package model

import "strings"

// ExtractedClaim is an atomic factual statement taken from the answer
type ExtractedClaim struct {
	Text         string `json:"text"`                    // The claim text itself
	ID           string `json:"id"`                      // Sequential id, "c1".."cN"
	CitedSources []int  `json:"cited_sources,omitempty"` // 1-indexed source numbers the answer attributed this claim to
}

// Verdict classifies how evidence relates to a claim
type Verdict string

const (
	VerdictSupported    Verdict = "SUPPORTED"    // Evidence logically supports the claim
	VerdictContradicted Verdict = "CONTRADICTED" // Evidence logically contradicts the claim
	VerdictNeutral      Verdict = "NEUTRAL"      // Evidence neither supports nor contradicts
)

// NormalizeVerdict maps free-form classifier output onto the verdict enum.
// Anything unrecognized is treated as NEUTRAL.
func NormalizeVerdict(raw string) Verdict {
	switch Verdict(strings.ToUpper(strings.TrimSpace(raw))) {
	case VerdictSupported:
		return VerdictSupported
	case VerdictContradicted:
		return VerdictContradicted
	default:
		return VerdictNeutral
	}
}
