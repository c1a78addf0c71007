package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/movieidx/movieidx/internal/errs"
)

// StaticDimensions is the embedding dimension StaticEmbedder produces,
// chosen to match spec.md §4.3's documented default of D=384.
const StaticDimensions = 384

const (
	tokenWeight = 0.7
	ngramWeight = 0.3
	ngramSize   = 3
)

var wordRegex = regexp.MustCompile(`[a-zA-Z0-9]+`)

// StaticEmbedder produces deterministic, dependency-free embeddings from a
// hashed bag of lowercased words plus character trigrams. It stands in for
// "a pre-trained sentence-embedding model" (spec.md §1) so the engine runs
// without a network model server.
type StaticEmbedder struct{}

// NewStaticEmbedder creates a StaticEmbedder.
func NewStaticEmbedder() *StaticEmbedder {
	return &StaticEmbedder{}
}

// Embed generates the embedding for a single text.
func (e *StaticEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if err := requireNonEmpty(text); err != nil {
		return nil, err
	}
	return normalizeVector(e.vectorize(text)), nil
}

// EmbedBatch generates embeddings for multiple texts, preserving order.
func (e *StaticEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, errs.Wrap(errs.ExternalFailure, "embed batch item", err)
		}
		results[i] = vec
	}
	return results, nil
}

// Dimensions returns StaticDimensions.
func (e *StaticEmbedder) Dimensions() int { return StaticDimensions }

// ModelName identifies this embedder in cache fingerprints.
func (e *StaticEmbedder) ModelName() string { return "static-384" }

func (e *StaticEmbedder) vectorize(text string) []float32 {
	vector := make([]float32, StaticDimensions)

	for _, word := range wordRegex.FindAllString(strings.ToLower(text), -1) {
		vector[hashToIndex(word, StaticDimensions)] += tokenWeight
	}

	letters := foldToLetters(text)
	for _, gram := range ngrams(letters, ngramSize) {
		vector[hashToIndex(gram, StaticDimensions)] += ngramWeight
	}

	return vector
}

func foldToLetters(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func ngrams(s string, n int) []string {
	if len(s) < n {
		return nil
	}
	out := make([]string, 0, len(s)-n+1)
	for i := 0; i <= len(s)-n; i++ {
		out = append(out, s[i:i+n])
	}
	return out
}

func hashToIndex(s string, size int) int {
	h := fnv.New64()
	_, _ = h.Write([]byte(s))
	return int(h.Sum64() % uint64(size))
}

func normalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	if sumSquares == 0 {
		return v
	}
	magnitude := math.Sqrt(sumSquares)
	out := make([]float32, len(v))
	for i, val := range v {
		out[i] = float32(float64(val) / magnitude)
	}
	return out
}
