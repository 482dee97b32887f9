package chunk

import (
	"strings"

	"github.com/veracitylab/veracity/internal/model"
)

// defaultMinSentenceChars drops fragments too short to carry a fact
const defaultMinSentenceChars = 20

// windowSizes are the passage granularities emitted per starting sentence
var windowSizes = []int{1, 2, 3}

// Chunker splits source snippets into sentence-level units and builds
// overlapping multi-sentence passages, so retrieval can match a claim against
// either a single precise sentence or its surrounding context.
type Chunker struct {
	minSentenceChars int
}

// NewChunker creates a chunker with the given minimum sentence length
// (0 falls back to the default).
func NewChunker(minSentenceChars int) *Chunker {
	if minSentenceChars <= 0 {
		minSentenceChars = defaultMinSentenceChars
	}
	return &Chunker{minSentenceChars: minSentenceChars}
}

// ChunkSources derives passages from every source. Pure function of its
// input: running it twice on the same source list yields identical output.
// An empty source list yields an empty passage list; a source with an empty
// or whitespace-only snippet yields zero passages, not an error.
func (c *Chunker) ChunkSources(sources []model.Source) []model.Passage {
	var passages []model.Passage

	for i, source := range sources {
		sourceIndex := i + 1 // matches the [n] citation numbering
		text := strings.TrimSpace(stripHTML(source.Snippet))
		if text == "" {
			continue
		}

		var sentences []string
		for _, sentence := range splitSentences(text) {
			if len(sentence) >= c.minSentenceChars {
				sentences = append(sentences, sentence)
			}
		}

		if len(sentences) == 0 {
			// Segmentation produced nothing usable; fall back to the whole
			// snippet if it meets the minimum length.
			if len(text) >= c.minSentenceChars {
				passages = append(passages, newPassage(text, source, sourceIndex))
			}
			continue
		}

		for j := range sentences {
			for _, size := range windowSizes {
				if j+size <= len(sentences) {
					passages = append(passages, newPassage(
						strings.Join(sentences[j:j+size], " "), source, sourceIndex))
				}
			}
		}
	}

	return passages
}

func newPassage(text string, source model.Source, sourceIndex int) model.Passage {
	return model.Passage{
		Text:        text,
		SourceID:    source.ID,
		SourceIndex: sourceIndex,
		SourceTitle: source.Title,
	}
}
