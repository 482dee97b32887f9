package llm

import (
	"fmt"
)

// NewClient creates a provider client based on the configuration
func NewClient(config Config) (Client, error) {
	switch config.Provider {
	case "openai":
		return NewOpenAIClient(config)
	case "ollama":
		return NewOllamaClient(config)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, ollama)", config.Provider)
	}
}
