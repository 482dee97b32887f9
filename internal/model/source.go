package model

import "time"

// Source is a retrieved document the answer was synthesized from.
// Immutable once produced by search; owned by the verification run.
type Source struct {
	ID          string     `json:"id"`                     // Stable identifier from the search layer
	Title       string     `json:"title"`                  // Display title
	URL         string     `json:"url"`                    // Origin URL
	Snippet     string     `json:"snippet"`                // Raw retrieved text
	PublishedAt *time.Time `json:"published_at,omitempty"` // Optional publish date
}

// Passage is a windowed span of sentences derived from exactly one Source.
// Passages are pure derived data, recreated fresh per verification run.
type Passage struct {
	Text        string `json:"text"`
	SourceID    string `json:"source_id"`
	SourceIndex int    `json:"source_index"` // 1-based, matches the [n] citation numbering
	SourceTitle string `json:"source_title"`
}
