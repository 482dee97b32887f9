package cli

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"inputs/answer-1.json", "answer-1"},
		{"report one.json", "report-one"},
		{"weird:name?.json", "weird_name_"},
		{"plain", "plain"},
		{".json", "report"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
