package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/veracitylab/veracity/internal/model"
)

// loadRunInput reads and validates one verification input file: a JSON
// document with the synthesized answer and its sources.
func loadRunInput(path string) (model.RunInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RunInput{}, fmt.Errorf("read input file: %w", err)
	}

	var input model.RunInput
	if err := json.Unmarshal(data, &input); err != nil {
		return model.RunInput{}, fmt.Errorf("parse input file: %w", err)
	}

	if strings.TrimSpace(input.Answer) == "" {
		return model.RunInput{}, fmt.Errorf("input has no answer text")
	}

	return input, nil
}
