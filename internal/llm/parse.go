package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/veracitylab/veracity/internal/model"
)

// claimsResponse is the expected claim-extraction JSON shape
type claimsResponse struct {
	Claims []struct {
		Text         string `json:"text"`
		CitedSources []int  `json:"cited_sources"`
	} `json:"claims"`
}

// decodeStrictJSON parses a chat response that should be strict JSON,
// tolerating the markdown code fences some models wrap around it.
func decodeStrictJSON(raw string, v interface{}) error {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// parseEntailment decodes and normalizes an NLI response
func parseEntailment(raw string) (*EntailmentResult, error) {
	var resp struct {
		Verdict   string `json:"verdict"`
		Reasoning string `json:"reasoning"`
	}
	if err := decodeStrictJSON(raw, &resp); err != nil {
		return nil, err
	}
	return &EntailmentResult{
		Verdict:   model.NormalizeVerdict(resp.Verdict),
		Reasoning: strings.TrimSpace(resp.Reasoning),
	}, nil
}

// parseClaims decodes a claim-extraction response and drops empty texts.
// The orchestrator re-numbers ids, so none are assigned here.
func parseClaims(raw string) ([]model.ExtractedClaim, error) {
	var resp claimsResponse
	if err := decodeStrictJSON(raw, &resp); err != nil {
		return nil, err
	}

	var claims []model.ExtractedClaim
	for _, c := range resp.Claims {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}
		claims = append(claims, model.ExtractedClaim{
			Text:         text,
			CitedSources: c.CitedSources,
		})
	}
	return claims, nil
}
