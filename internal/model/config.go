package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete Veracity configuration
type Config struct {
	Provider     ProviderConfig     `yaml:"provider" json:"provider"`
	Verification VerificationConfig `yaml:"verification" json:"verification"`
	Thresholds   Thresholds         `yaml:"thresholds" json:"thresholds"`
	Cache        CacheConfig        `yaml:"cache" json:"cache"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit" json:"rate_limit"`
	Output       OutputConfig       `yaml:"output" json:"output"`
}

// ProviderConfig configures the external capability provider (embeddings,
// entailment classification, claim extraction).
type ProviderConfig struct {
	// Name selects the provider: "openai" or "ollama"
	Name string `yaml:"name" json:"name"`

	// ChatModel is used for claim extraction and entailment classification
	ChatModel string `yaml:"chat_model" json:"chat_model"`

	// EmbeddingModel is used for claim and passage embeddings
	EmbeddingModel string `yaml:"embedding_model" json:"embedding_model"`

	// APIKey for hosted providers (recommended via environment variable)
	APIKey string `yaml:"api_key,omitempty" json:"-"`

	// BaseURL for custom endpoints (e.g., Ollama, OpenAI-compatible gateways)
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`

	// Timeout for a single API request, in seconds
	Timeout int `yaml:"timeout" json:"timeout"`

	// MaxTokens for chat-based responses
	MaxTokens int `yaml:"max_tokens" json:"max_tokens"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// VerificationConfig bounds one verification run
type VerificationConfig struct {
	// MaxClaims caps how many claims are extracted and verified
	MaxClaims int `yaml:"max_claims" json:"max_claims"`

	// Concurrency is the fixed per-claim worker budget (typical range 4-10)
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// MinSentenceChars drops shorter sentences during chunking
	MinSentenceChars int `yaml:"min_sentence_chars" json:"min_sentence_chars"`
}

// Thresholds collects the empirically tuned scoring constants. They are
// configuration rather than literals so callers can recalibrate without a
// code change.
type Thresholds struct {
	// CitationMismatchGap is the similarity gap between the global best and
	// the best cited passage beyond which a citation mismatch is flagged
	CitationMismatchGap float64 `yaml:"citation_mismatch_gap" json:"citation_mismatch_gap"`

	// LowSimilarity is the retrieval similarity below which confidence is penalized
	LowSimilarity float64 `yaml:"low_similarity" json:"low_similarity"`

	// Numeric comparison tolerances
	PercentTolerance float64 `yaml:"percent_tolerance" json:"percent_tolerance"` // absolute, percentage pairs
	RatioTolerance   float64 `yaml:"ratio_tolerance" json:"ratio_tolerance"`     // relative, other magnitudes
	RangeTolerance   float64 `yaml:"range_tolerance" json:"range_tolerance"`     // relative, range endpoints

	// Base confidence per entailment verdict
	SupportedBase    float64 `yaml:"supported_base" json:"supported_base"`
	NeutralBase      float64 `yaml:"neutral_base" json:"neutral_base"`
	ContradictedBase float64 `yaml:"contradicted_base" json:"contradicted_base"`

	// Multiplicative penalties, applied independently
	LowSimilarityPenalty    float64 `yaml:"low_similarity_penalty" json:"low_similarity_penalty"`
	CitationMismatchPenalty float64 `yaml:"citation_mismatch_penalty" json:"citation_mismatch_penalty"`
	NumericMismatchPenalty  float64 `yaml:"numeric_mismatch_penalty" json:"numeric_mismatch_penalty"`

	// Confidence level cut-offs
	HighConfidence   float64 `yaml:"high_confidence" json:"high_confidence"`
	MediumConfidence float64 `yaml:"medium_confidence" json:"medium_confidence"`
}

// CacheConfig configures the embedding cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// RateLimitConfig throttles outbound provider calls
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" json:"verbose"`
	IncludeFooter bool `yaml:"include_footer" json:"include_footer"`
}

// DefaultThresholds returns the tuned scoring constants
func DefaultThresholds() Thresholds {
	return Thresholds{
		CitationMismatchGap:     0.12,
		LowSimilarity:           0.45,
		PercentTolerance:        0.5,
		RatioTolerance:          0.05,
		RangeTolerance:          0.10,
		SupportedBase:           1.0,
		NeutralBase:             0.55,
		ContradictedBase:        0.15,
		LowSimilarityPenalty:    0.7,
		CitationMismatchPenalty: 0.85,
		NumericMismatchPenalty:  0.4,
		HighConfidence:          0.72,
		MediumConfidence:        0.42,
	}
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Name:           "openai",
			ChatModel:      "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			Timeout:        30,
			MaxTokens:      1000,
		},
		Verification: VerificationConfig{
			MaxClaims:        10,
			Concurrency:      6,
			MinSentenceChars: 20,
		},
		Thresholds: DefaultThresholds(),
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             10,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// defaultCacheDir resolves the embedding cache location
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".veracity-cache"
	}
	return filepath.Join(home, ".veracity", "cache")
}
