package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/veracitylab/veracity/internal/model"
	"github.com/veracitylab/veracity/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	timeout        time.Duration
	maxClaims      int
	claimWorkers   int
	provider       string
	chatModel      string
	embeddingModel string
	noCache        bool
	noFooter       bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <input.json>",
	Short: "Verify a research answer against its sources",
	Long: `Verify reads an input file containing a synthesized answer and the
sources it cites, then:
- Extracts the atomic factual claims from the answer
- Chunks the source snippets into overlapping passages
- Retrieves the best evidence per claim by embedding similarity
- Classifies each claim as supported, contradicted, or neutral
- Cross-checks numeric values between claim and evidence
- Reports a calibrated confidence per claim

The input file is JSON: {"answer": "...", "sources": [{"id": "...",
"title": "...", "url": "...", "snippet": "..."}]}.

Example:
  veracity verify answer.json
  veracity verify answer.json --json report.json --md report.md
  veracity verify answer.json --provider ollama --chat-model llama3.1:8b --embedding-model nomic-embed-text`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	// Output flags
	verifyCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	verifyCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	verifyCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Run flags
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().IntVar(&maxClaims, "max-claims", 0, "cap on extracted claims (0 = config default)")
	verifyCmd.Flags().IntVar(&claimWorkers, "concurrency", 0, "concurrent claim workers (0 = config default)")
	verifyCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the embedding cache")

	// Provider flags
	verifyCmd.Flags().StringVar(&provider, "provider", "", "provider (openai, ollama; default from config)")
	verifyCmd.Flags().StringVar(&chatModel, "chat-model", "", "chat model for extraction and entailment")
	verifyCmd.Flags().StringVar(&embeddingModel, "embedding-model", "", "embedding model for retrieval")
}

func runVerify(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	input, err := loadRunInput(inputPath)
	if err != nil {
		return err
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Verifying: %s\n", inputPath)
		fmt.Fprintf(os.Stderr, "Provider:  %s (%s / %s)\n", cfg.Provider.Name, cfg.Provider.ChatModel, cfg.Provider.EmbeddingModel)
		fmt.Fprintf(os.Stderr, "Sources:   %d\n", len(input.Sources))
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.NewPipeline(cfg, logger)
	if err != nil {
		return err
	}

	if verbose {
		if err := p.CheckProvider(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	output, err := p.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	return p.RenderReport(output, outJSON, outMD, verbose)
}

// buildConfig layers the CLI flags and provider environment variables over
// the file-backed configuration.
func buildConfig() (*model.Config, error) {
	cfg := loadConfig()

	if provider != "" {
		cfg.Provider.Name = provider
	}
	if chatModel != "" {
		cfg.Provider.ChatModel = chatModel
	}
	if embeddingModel != "" {
		cfg.Provider.EmbeddingModel = embeddingModel
	}
	if maxClaims > 0 {
		cfg.Verification.MaxClaims = maxClaims
	}
	if claimWorkers > 0 {
		cfg.Verification.Concurrency = claimWorkers
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	switch cfg.Provider.Name {
	case "openai":
		if cfg.Provider.APIKey == "" {
			cfg.Provider.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.Provider.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Provider.BaseURL = baseURL
		}
	}

	return cfg, nil
}
