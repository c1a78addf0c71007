package hybrid

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/movieidx/movieidx/internal/corpus"
)

// DefaultOverfetchFactor is C in spec.md §4.5: each backend is asked for
// limit*C candidates before fusion trims back to limit, to guard against
// low overlap between the lexical and semantic top-limit lists.
const DefaultOverfetchFactor = 500

// DefaultRRFConstant is k in the Reciprocal Rank Fusion formula.
const DefaultRRFConstant = 60

// Ranker fuses a lexical and a semantic Searcher into one ranking.
type Ranker struct {
	lexical         Searcher
	semantic        Searcher
	overfetchFactor int
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithLexicalSearcher sets the lexical backend.
func WithLexicalSearcher(s Searcher) Option {
	return func(r *Ranker) { r.lexical = s }
}

// WithSemanticSearcher sets the semantic backend.
func WithSemanticSearcher(s Searcher) Option {
	return func(r *Ranker) { r.semantic = s }
}

// WithOverfetchFactor overrides DefaultOverfetchFactor.
func WithOverfetchFactor(c int) Option {
	return func(r *Ranker) { r.overfetchFactor = c }
}

// New builds a Ranker from options. Both WithLexicalSearcher and
// WithSemanticSearcher are required.
func New(opts ...Option) *Ranker {
	r := &Ranker{overfetchFactor: DefaultOverfetchFactor}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// fetch runs both backends in parallel at the over-fetched candidate pool
// size, tolerating either backend failing by returning it empty — fusion
// degrades gracefully to whichever side succeeded.
func (r *Ranker) fetch(ctx context.Context, query string, limit int) (lexical, semantic []Result) {
	pool := limit * r.overfetchFactor
	if pool <= 0 {
		pool = limit
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results, err := r.lexical.Search(gctx, query, pool)
		if err == nil {
			lexical = results
		}
		return nil
	})
	g.Go(func() error {
		results, err := r.semantic.Search(gctx, query, pool)
		if err == nil {
			semantic = results
		}
		return nil
	})
	_ = g.Wait()
	return lexical, semantic
}

// Normalize min-max normalizes scores in place order. An empty input
// returns an empty (non-nil) slice; a degenerate (all-equal) input
// collapses to all 1.0, per spec.md §4.5 step 2 / law 5.
func Normalize(scores []float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	if min == max {
		for i := range out {
			out[i] = 1.0
		}
		return out
	}
	for i, s := range scores {
		out[i] = (s - min) / (max - min)
	}
	return out
}

// Weighted performs weighted linear fusion: each side's scores are
// min-max normalized independently, then combined as
// alpha*lexical + (1-alpha)*semantic, with an absent side defaulting to 0.
func (r *Ranker) Weighted(ctx context.Context, query string, alpha float64, limit int) []Result {
	lexResults, semResults := r.fetch(ctx, query, limit)

	lexScores := make([]float64, len(lexResults))
	for i, res := range lexResults {
		lexScores[i] = res.Score
	}
	semScores := make([]float64, len(semResults))
	for i, res := range semResults {
		semScores[i] = res.Score
	}
	lexNorm := Normalize(lexScores)
	semNorm := Normalize(semScores)

	docs := make(map[uint64]corpus.Document)
	hybrid := make(map[uint64]float64)

	for i, res := range lexResults {
		docs[res.Document.ID] = res.Document
		hybrid[res.Document.ID] += alpha * lexNorm[i]
	}
	for i, res := range semResults {
		docs[res.Document.ID] = res.Document
		hybrid[res.Document.ID] += (1 - alpha) * semNorm[i]
	}

	return rankAndTruncate(docs, hybrid, limit)
}

// RRF performs Reciprocal Rank Fusion: rrf_score(d) = Σ 1/(k+rank_i(d))
// over every candidate list d appears in, rank 1-based.
func (r *Ranker) RRF(ctx context.Context, query string, k int, limit int) []Result {
	if k <= 0 {
		k = DefaultRRFConstant
	}
	lexResults, semResults := r.fetch(ctx, query, limit)

	docs := make(map[uint64]corpus.Document)
	scores := make(map[uint64]float64)

	accumulate := func(results []Result) {
		for rank, res := range results {
			docs[res.Document.ID] = res.Document
			scores[res.Document.ID] += 1.0 / float64(k+rank+1)
		}
	}
	accumulate(lexResults)
	accumulate(semResults)

	return rankAndTruncate(docs, scores, limit)
}

// rankAndTruncate sorts documents by descending score, breaking ties by
// ascending doc_id per spec.md §4.5, and returns at most limit results.
func rankAndTruncate(docs map[uint64]corpus.Document, scores map[uint64]float64, limit int) []Result {
	results := make([]Result, 0, len(docs))
	for id, doc := range docs {
		results = append(results, Result{Document: doc, Score: scores[id]})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ID < results[j].Document.ID
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
