package aggregate

import (
	"math"
	"testing"

	"github.com/veracitylab/veracity/internal/model"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(model.DefaultThresholds())
}

func TestAggregateSupportedClean(t *testing.T) {
	a := newTestAggregator()
	got := a.Aggregate(model.VerdictSupported, 0.8, false, nil)

	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got.Confidence)
	}
	if got.ConfidenceLevel != model.ConfidenceHigh {
		t.Errorf("level = %q, want high", got.ConfidenceLevel)
	}
	if len(got.Issues) != 0 {
		t.Errorf("unexpected issues: %v", got.Issues)
	}
}

func TestAggregateNeutral(t *testing.T) {
	a := newTestAggregator()
	got := a.Aggregate(model.VerdictNeutral, 0.8, false, nil)

	if got.Confidence != 0.55 {
		t.Errorf("confidence = %v, want 0.55", got.Confidence)
	}
	if got.ConfidenceLevel != model.ConfidenceMedium {
		t.Errorf("level = %q, want medium", got.ConfidenceLevel)
	}
	if len(got.Issues) != 1 {
		t.Errorf("want one issue, got %v", got.Issues)
	}
}

func TestAggregateContradicted(t *testing.T) {
	a := newTestAggregator()
	got := a.Aggregate(model.VerdictContradicted, 0.8, false, nil)

	if got.Confidence != 0.15 {
		t.Errorf("confidence = %v, want 0.15", got.Confidence)
	}
	if got.ConfidenceLevel != model.ConfidenceLow {
		t.Errorf("level = %q, want low", got.ConfidenceLevel)
	}
}

func TestAggregateLowSimilarityPenalty(t *testing.T) {
	a := newTestAggregator()
	got := a.Aggregate(model.VerdictSupported, 0.3, false, nil)

	if math.Abs(got.Confidence-0.7) > 1e-9 {
		t.Errorf("confidence = %v, want 0.7", got.Confidence)
	}
	if len(got.Issues) != 1 {
		t.Errorf("want one issue, got %v", got.Issues)
	}
}

func TestAggregateCitationMismatchPenalty(t *testing.T) {
	a := newTestAggregator()
	got := a.Aggregate(model.VerdictSupported, 0.8, true, nil)

	if math.Abs(got.Confidence-0.85) > 1e-9 {
		t.Errorf("confidence = %v, want 0.85", got.Confidence)
	}
}

func TestAggregateNumericMismatchPenalty(t *testing.T) {
	a := newTestAggregator()
	numeric := &model.NumericCheck{Match: false}
	got := a.Aggregate(model.VerdictSupported, 0.8, false, numeric)

	if math.Abs(got.Confidence-0.4) > 1e-9 {
		t.Errorf("confidence = %v, want 0.4", got.Confidence)
	}
	if got.ConfidenceLevel != model.ConfidenceLow {
		t.Errorf("level = %q, want low", got.ConfidenceLevel)
	}
}

func TestAggregateNumericMatchNoPenalty(t *testing.T) {
	a := newTestAggregator()
	numeric := &model.NumericCheck{Match: true}
	got := a.Aggregate(model.VerdictSupported, 0.8, false, numeric)

	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got.Confidence)
	}
}

func TestAggregatePenaltiesStack(t *testing.T) {
	a := newTestAggregator()
	numeric := &model.NumericCheck{Match: false}
	got := a.Aggregate(model.VerdictNeutral, 0.3, true, numeric)

	// 0.55 * 0.7 * 0.85 * 0.4
	want := 0.55 * 0.7 * 0.85 * 0.4
	if math.Abs(got.Confidence-want) > 1e-9 {
		t.Errorf("confidence = %v, want %v", got.Confidence, want)
	}
	if len(got.Issues) != 4 {
		t.Errorf("want four issues, got %v", got.Issues)
	}
	if got.Confidence < 0 || got.Confidence > 1 {
		t.Errorf("confidence out of range: %v", got.Confidence)
	}
}

func TestLevelBoundaries(t *testing.T) {
	a := newTestAggregator()

	tests := []struct {
		confidence float64
		want       string
	}{
		{1.0, model.ConfidenceHigh},
		{0.72, model.ConfidenceHigh},
		{0.7199, model.ConfidenceMedium},
		{0.42, model.ConfidenceMedium},
		{0.4199, model.ConfidenceLow},
		{0, model.ConfidenceLow},
	}

	for _, tt := range tests {
		if got := a.Level(tt.confidence); got != tt.want {
			t.Errorf("Level(%v) = %q, want %q", tt.confidence, got, tt.want)
		}
	}
}
