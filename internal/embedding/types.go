// Package embedding defines the Embedder capability spec.md §4.3 treats as
// an external collaborator: a deterministic map from text to a
// fixed-dimension vector. It ships a dependency-free StaticEmbedder so the
// rest of the engine runs standalone, plus an LRU-caching decorator.
package embedding

import (
	"context"
	"math"
	"strings"

	"github.com/movieidx/movieidx/internal/errs"
)

// Embedder generates vector embeddings for text. Implementations must be
// safe for concurrent use and deterministic for a fixed ModelName.
type Embedder interface {
	// Embed generates the embedding for a single text. Returns an
	// EmptyText error if text is empty or whitespace-only, per spec.md §7.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, preserving
	// input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding dimension D.
	Dimensions() int

	// ModelName returns the model identifier used in cache fingerprints.
	ModelName() string
}

// CosineSimilarity computes dot(a,b) / (|a| * |b|). By convention,
// similarity(0, _) = 0, per spec.md §4.4.
func CosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// requireNonEmpty enforces the EmptyText contract shared by every Embedder.
func requireNonEmpty(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.New(errs.EmptyText, "embedding requested for whitespace-only text")
	}
	return nil
}
