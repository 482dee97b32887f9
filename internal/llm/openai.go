package llm

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/veracitylab/veracity/internal/model"
)

// OpenAIClient implements the Client interface for OpenAI (and
// OpenAI-compatible) APIs.
type OpenAIClient struct {
	client *openai.Client
	config Config
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(config Config) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name
func (c *OpenAIClient) Name() string {
	return "openai"
}

// IsAvailable checks if the provider is properly configured
func (c *OpenAIClient) IsAvailable(ctx context.Context) bool {
	// Lightweight API call; surfaces API key problems early
	_, err := c.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "OpenAI API check failed: %v\n", err)
		return false
	}
	return true
}

// Embed returns one embedding vector per input text in a single batched call
func (c *OpenAIClient) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddingModel := c.config.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = string(openai.SmallEmbedding3)
	}

	ctxWithTimeout, cancel := c.timeoutContext(ctx)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctxWithTimeout, openai.EmbeddingRequestStrings{
		Input: texts,
		Model: openai.EmbeddingModel(embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI embeddings error: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	// The API documents input order; sorting by Index makes it explicit.
	sort.Slice(resp.Data, func(i, j int) bool { return resp.Data[i].Index < resp.Data[j].Index })

	vectors := make([][]float64, len(resp.Data))
	for i, d := range resp.Data {
		vector := make([]float64, len(d.Embedding))
		for j, v := range d.Embedding {
			vector[j] = float64(v)
		}
		vectors[i] = vector
	}
	return vectors, nil
}

// Classify judges one claim/evidence pair via a chat completion
func (c *OpenAIClient) Classify(ctx context.Context, claim, evidence string) (*EntailmentResult, error) {
	prompt := fmt.Sprintf("Claim: %s\n\nEvidence: %s", claim, evidence)

	raw, err := c.chat(ctx, entailmentSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	return parseEntailment(raw)
}

// ExtractClaims pulls atomic factual claims out of the answer
func (c *OpenAIClient) ExtractClaims(ctx context.Context, answer string, maxClaims int) ([]model.ExtractedClaim, error) {
	prompt := fmt.Sprintf("Extract at most %d claims from this answer:\n\n%s", maxClaims, answer)

	raw, err := c.chat(ctx, extractionSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	return parseClaims(raw)
}

// chat performs a single low-temperature chat completion
func (c *OpenAIClient) chat(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	chatModel := c.config.ChatModel
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}

	maxTokens := c.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	ctxWithTimeout, cancel := c.timeoutContext(ctx)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0, // deterministic, factual output
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) timeoutContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(c.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
