package numeric

import (
	"math"
	"sort"
	"strings"

	"github.com/veracitylab/veracity/internal/model"
)

// Tolerances control fuzzy numeric comparison. Defaults match the tuned
// constants in model.DefaultThresholds.
type Tolerances struct {
	Percent float64 // absolute tolerance for percentage pairs
	Ratio   float64 // relative tolerance for other magnitudes
	Range   float64 // relative tolerance for range endpoint comparison
}

// DefaultTolerances returns the tuned comparison tolerances
func DefaultTolerances() Tolerances {
	return Tolerances{Percent: 0.5, Ratio: 0.05, Range: 0.10}
}

// CheckConsistency compares the numbers stated by a claim against the numbers
// found in its best evidence. A claim with no numbers trivially matches. The
// strict pass requires every claim number (skipping 4-digit years) to
// fuzzy-match some evidence number. When the strict pass fails it falls back
// to range semantics: claims routinely state a range ("$400-$800") while
// evidence states a different but overlapping one ("$400-$600"), and naive
// set equality over-penalizes legitimate paraphrase.
func CheckConsistency(claimNumbers, evidenceNumbers []string, tol Tolerances) model.NumericCheck {
	check := model.NumericCheck{
		ClaimNumbers:    claimNumbers,
		EvidenceNumbers: evidenceNumbers,
	}

	if len(claimNumbers) == 0 {
		check.Match = true
		return check
	}

	// Strict pass: every non-year claim number must fuzzy-match some
	// evidence number.
	strict := true
	compared := false
	for _, raw := range claimNumbers {
		if IsYear(raw) {
			continue
		}
		value, ok := NormalizeNumber(raw)
		if !ok {
			continue
		}
		compared = true
		if !matchesAny(raw, value, evidenceNumbers, tol) {
			strict = false
			break
		}
	}
	if !compared || strict {
		// Only years or unparseable tokens: nothing to contradict.
		check.Match = true
		return check
	}

	// Range fallback over the sorted non-year values of each side.
	claimValues := sortedValues(claimNumbers)
	evidenceValues := sortedValues(evidenceNumbers)

	switch {
	case len(claimValues) >= 2 && len(evidenceValues) >= 2:
		check.Match = rangesOverlap(claimValues, evidenceValues, tol.Range)
	case len(claimValues) == 1 && len(evidenceValues) >= 2:
		check.Match = claimValues[0] >= evidenceValues[0] &&
			claimValues[0] <= evidenceValues[len(evidenceValues)-1]
	case len(claimValues) >= 2 && len(evidenceValues) == 1:
		check.Match = evidenceValues[0] >= claimValues[0] &&
			evidenceValues[0] <= claimValues[len(claimValues)-1]
	}

	return check
}

// matchesAny reports whether the claim value fuzzy-matches any evidence
// number. Percentage pairs use an absolute tolerance, everything else a
// relative one.
func matchesAny(claimRaw string, claimValue float64, evidenceNumbers []string, tol Tolerances) bool {
	claimIsPercent := strings.Contains(claimRaw, "%")
	for _, raw := range evidenceNumbers {
		value, ok := NormalizeNumber(raw)
		if !ok {
			continue
		}
		if claimIsPercent && strings.Contains(raw, "%") {
			if math.Abs(claimValue-value) <= tol.Percent {
				return true
			}
			continue
		}
		if roughlyEqual(claimValue, value, tol.Ratio) {
			return true
		}
	}
	return false
}

// rangesOverlap compares [min,max] intervals: they must intersect, and the
// minimums or the maximums must be roughly equal.
func rangesOverlap(a, b []float64, tolerance float64) bool {
	minA, maxA := a[0], a[len(a)-1]
	minB, maxB := b[0], b[len(b)-1]
	if minA > maxB || minB > maxA {
		return false
	}
	return roughlyEqual(minA, minB, tolerance) || roughlyEqual(maxA, maxB, tolerance)
}

// roughlyEqual compares two values within a relative tolerance
func roughlyEqual(a, b, tolerance float64) bool {
	if a == b {
		return true
	}
	denom := math.Max(math.Abs(a), math.Abs(b))
	if denom == 0 {
		return false
	}
	return math.Abs(a-b)/denom <= tolerance
}

// sortedValues normalizes the non-year numbers of one side, ascending
func sortedValues(raws []string) []float64 {
	var values []float64
	for _, raw := range raws {
		if IsYear(raw) {
			continue
		}
		if v, ok := NormalizeNumber(raw); ok {
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values
}
