package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/veracitylab/veracity/internal/model"
)

// Runner verifies a single answer/sources input. It is the narrow view of
// the pipeline that batch processing needs.
type Runner interface {
	Run(ctx context.Context, input model.RunInput) (*model.VerificationOutput, error)
}

// BatchResult pairs an input file with its verification outcome
type BatchResult struct {
	Path   string
	Output *model.VerificationOutput
	Error  error
}

// BatchProcessor verifies multiple input files concurrently
type BatchProcessor struct {
	runner      Runner
	loader      func(path string) (model.RunInput, error)
	concurrency int
}

// NewBatchProcessor creates a new batch processor. The loader reads and
// parses one input file into a run input.
func NewBatchProcessor(runner Runner, loader func(path string) (model.RunInput, error), concurrency int) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		loader:      loader,
		concurrency: concurrency,
	}
}

// ProcessPaths verifies multiple input files concurrently, preserving
// input order in the results.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*BatchResult {
	if len(paths) == 0 {
		return []*BatchResult{}
	}

	pool := NewPool[*BatchResult](b.concurrency, len(paths))
	pool.Start(ctx)

	for _, path := range paths {
		path := path
		pool.Submit(func(ctx context.Context) *BatchResult {
			input, err := b.loader(path)
			if err != nil {
				return &BatchResult{Path: path, Error: fmt.Errorf("load input: %w", err)}
			}
			output, err := b.runner.Run(ctx, input)
			return &BatchResult{Path: path, Output: output, Error: err}
		})
	}

	return pool.Wait()
}

// ProcessFile reads input paths from a list file and verifies them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*BatchResult, error) {
	paths, err := ReadInputPaths(listPath)
	if err != nil {
		return nil, fmt.Errorf("read input list: %w", err)
	}

	return b.ProcessPaths(ctx, paths), nil
}

// ReadInputPaths reads input file paths from a list file (one per line)
func ReadInputPaths(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
