package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRunInput(t *testing.T) {
	path := writeInput(t, `{
		"answer": "Revenue grew 12% in 2021. [1]",
		"sources": [
			{"id": "s1", "title": "Annual report", "url": "https://example.com/ar", "snippet": "Revenue grew 12 percent."}
		]
	}`)

	input, err := loadRunInput(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Answer == "" {
		t.Error("answer not loaded")
	}
	if len(input.Sources) != 1 || input.Sources[0].ID != "s1" {
		t.Errorf("sources = %+v", input.Sources)
	}
}

func TestLoadRunInputMissingFile(t *testing.T) {
	if _, err := loadRunInput(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRunInputInvalidJSON(t *testing.T) {
	path := writeInput(t, "not json at all")
	if _, err := loadRunInput(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadRunInputEmptyAnswer(t *testing.T) {
	path := writeInput(t, `{"answer": "   ", "sources": []}`)
	if _, err := loadRunInput(path); err == nil {
		t.Error("expected error for blank answer")
	}
}
