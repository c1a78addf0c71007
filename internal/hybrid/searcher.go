// Package hybrid fuses a lexical BM25 ranking and a dense chunked-semantic
// ranking into a single ordering, by either weighted linear combination of
// min-max-normalized scores or Reciprocal Rank Fusion, per spec.md §4.5.
package hybrid

import (
	"context"

	"github.com/movieidx/movieidx/internal/corpus"
)

// Result pairs a document with a relevance score. Rank within a result
// slice is positional: Result[0] is the best match.
type Result struct {
	Document corpus.Document
	Score    float64
}

// Searcher is the capability both the lexical and semantic backends
// satisfy: given a query and a limit, produce a ranked candidate list.
// HybridRanker depends on this interface, never on a concrete index type,
// so the two backends compose rather than specialize one another.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}
