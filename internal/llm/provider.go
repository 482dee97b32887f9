package llm

import (
	"context"

	"github.com/veracitylab/veracity/internal/model"
)

// The verification engine depends on three external capabilities. They are
// narrow interfaces so production clients and deterministic test fakes are
// interchangeable.

// Embedder produces embedding vectors for a batch of texts
type Embedder interface {
	// Embed returns one vector per input text, order-preserving. All vectors
	// within one call share the same dimension.
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// EntailmentClassifier judges one claim/evidence pair
type EntailmentClassifier interface {
	// Classify returns whether the evidence supports, contradicts, or is
	// neutral toward the claim, with free-text reasoning.
	Classify(ctx context.Context, claim, evidence string) (*EntailmentResult, error)
}

// ClaimExtractor pulls atomic factual statements from a synthesized answer
type ClaimExtractor interface {
	// ExtractClaims returns at most maxClaims claims, best-effort. Callers
	// truncate and re-number ids sequentially.
	ExtractClaims(ctx context.Context, answer string, maxClaims int) ([]model.ExtractedClaim, error)
}

// EntailmentResult is the normalized NLI provider output
type EntailmentResult struct {
	Verdict   model.Verdict `json:"verdict"`
	Reasoning string        `json:"reasoning"`
}

// Client bundles the three capabilities one provider serves
type Client interface {
	// Name returns the provider name
	Name() string

	Embedder
	EntailmentClassifier
	ClaimExtractor

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "ollama"
	Provider string

	// ChatModel for claim extraction and entailment classification
	ChatModel string

	// EmbeddingModel for claim and passage embeddings
	EmbeddingModel string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for chat responses
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "openai",
		ChatModel:      "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-small",
		Timeout:        30,
		MaxTokens:      1000,
	}
}

// ConfigFromModel converts model.ProviderConfig to llm.Config
func ConfigFromModel(c model.ProviderConfig) Config {
	return Config{
		Provider:       c.Name,
		ChatModel:      c.ChatModel,
		EmbeddingModel: c.EmbeddingModel,
		APIKey:         c.APIKey,
		BaseURL:        c.BaseURL,
		Timeout:        c.Timeout,
		MaxTokens:      c.MaxTokens,
		HTTPProxy:      c.HTTPProxy,
		HTTPSProxy:     c.HTTPSProxy,
		NoProxy:        c.NoProxy,
	}
}

// Prompts shared by the chat-based providers. Both demand strict JSON so the
// responses parse without free-text scraping.

const extractionSystemPrompt = `You are a claim extraction engine. Respond with strict JSON only: {"claims":[{"text":string,"cited_sources":int[]}]}. Extract the atomic factual claims from the answer, one statement per claim. Map cited_sources from bracketed citation markers like [2]; use an empty array when a claim carries no citation. Do not invent citations and do not paraphrase beyond splitting compound statements.`

const entailmentSystemPrompt = `You are a natural language inference classifier. Respond with strict JSON only: {"verdict":"SUPPORTED"|"CONTRADICTED"|"NEUTRAL","reasoning":string}. Judge whether the evidence supports, contradicts, or is neutral toward the claim. Judge strictly from the evidence text; do not use outside knowledge.`
