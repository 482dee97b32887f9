package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/veracitylab/veracity/internal/model"
)

// Renderer writes verification reports as JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full output as indented JSON
func (r *Renderer) RenderJSON(output *model.VerificationOutput, path string) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report
func (r *Renderer) RenderMarkdown(output *model.VerificationOutput, path string) error {
	var b strings.Builder

	b.WriteString("# Verification Report\n\n")
	fmt.Fprintf(&b, "**Run:** `%s`  \n", output.RunID)
	fmt.Fprintf(&b, "**Overall confidence:** %d/100  \n", output.OverallConfidence)
	fmt.Fprintf(&b, "**Duration:** %dms\n\n", output.DurationMS)

	s := output.Summary
	fmt.Fprintf(&b, "| Supported | Contradicted | Neutral | Citation mismatches | Numeric mismatches |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n", s.Supported, s.Contradicted, s.Neutral, s.CitationMismatches, s.NumericMismatches)

	b.WriteString("## Claims\n\n")
	for i, claim := range output.Claims {
		fmt.Fprintf(&b, "### %d. %s %s\n\n", i+1, verdictBadge(claim.Verdict), claim.Claim.Text)
		fmt.Fprintf(&b, "- **Confidence:** %.2f (%s)\n", claim.Confidence, claim.ConfidenceLevel)
		if claim.Reasoning != "" {
			fmt.Fprintf(&b, "- **Reasoning:** %s\n", claim.Reasoning)
		}
		if claim.Retrieval != nil {
			fmt.Fprintf(&b, "- **Best evidence:** [%d] %s (similarity %.2f)\n",
				claim.Retrieval.BestPassage.SourceIndex, claim.Retrieval.BestPassage.SourceTitle, claim.Retrieval.GlobalBestSupport)
		}
		if claim.Numeric != nil {
			status := "consistent"
			if !claim.Numeric.Match {
				status = "MISMATCH"
			}
			fmt.Fprintf(&b, "- **Numbers:** %s (claim: %s; evidence: %s)\n",
				status, strings.Join(claim.Numeric.ClaimNumbers, ", "), strings.Join(claim.Numeric.EvidenceNumbers, ", "))
		}
		for _, issue := range claim.Issues {
			fmt.Fprintf(&b, "- ⚠ %s\n", issue)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\nGenerated by veracity\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderSummary prints a compact run summary to stdout
func (r *Renderer) RenderSummary(output *model.VerificationOutput) {
	s := output.Summary
	fmt.Printf("\nVerified %d claims in %dms\n", len(output.Claims), output.DurationMS)
	fmt.Printf("  Supported:    %d\n", s.Supported)
	fmt.Printf("  Contradicted: %d\n", s.Contradicted)
	fmt.Printf("  Neutral:      %d\n", s.Neutral)
	if s.CitationMismatches > 0 {
		fmt.Printf("  Citation mismatches: %d\n", s.CitationMismatches)
	}
	if s.NumericMismatches > 0 {
		fmt.Printf("  Numeric mismatches:  %d\n", s.NumericMismatches)
	}
	fmt.Printf("Overall confidence: %d/100\n", output.OverallConfidence)
}

func verdictBadge(verdict model.Verdict) string {
	switch verdict {
	case model.VerdictSupported:
		return "✅"
	case model.VerdictContradicted:
		return "❌"
	default:
		return "➖"
	}
}
