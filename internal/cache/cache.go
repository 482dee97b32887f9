// Package cache stores embedding vectors keyed by model and text so repeated
// verification runs do not re-pay for identical embeddings.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the embedding vector store interface
type Cache interface {
	// Get retrieves a vector by key, reporting whether it was present
	Get(key string) ([]float64, bool)

	// Set stores a vector with the given TTL (0 means the backend default)
	Set(key string, vector []float64, ttl time.Duration) error

	// Delete removes a single entry
	Delete(key string) error

	// Clear removes all entries
	Clear() error
}

// Key derives a stable cache key from the embedding model and the exact
// input text. Different models produce incompatible vectors, so the model
// name is part of the key.
func Key(embeddingModel, text string) string {
	h := sha256.Sum256([]byte(embeddingModel + "\x00" + text))
	return "veracity:v1:" + hex.EncodeToString(h[:])
}
