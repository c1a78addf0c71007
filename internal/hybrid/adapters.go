package hybrid

import (
	"context"

	"github.com/movieidx/movieidx/internal/lexical"
	"github.com/movieidx/movieidx/internal/semantic"
)

// LexicalSearcher adapts a lexical.Index to the Searcher interface.
type LexicalSearcher struct {
	Index *lexical.Index
}

// Search runs BM25 top-k search. lexical.Index.BM25Search is synchronous
// and does no I/O, so ctx is accepted only to satisfy Searcher.
func (s LexicalSearcher) Search(_ context.Context, query string, limit int) ([]Result, error) {
	scored := s.Index.BM25Search(query, limit)
	results := make([]Result, len(scored))
	for i, sd := range scored {
		results[i] = Result{Document: sd.Document, Score: sd.Score}
	}
	return results, nil
}

// SemanticSearcher adapts a semantic.Index to the Searcher interface.
type SemanticSearcher struct {
	Index *semantic.Index
}

// Search runs best-chunk-per-document cosine search.
func (s SemanticSearcher) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	scored, err := s.Index.SearchChunks(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(scored))
	for i, sd := range scored {
		results[i] = Result{Document: sd.Document, Score: sd.Score}
	}
	return results, nil
}
