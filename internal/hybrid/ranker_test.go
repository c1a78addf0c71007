package hybrid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/movieidx/movieidx/internal/corpus"
)

// fakeSearcher returns a fixed, pre-ranked result list regardless of query.
type fakeSearcher struct{ results []Result }

func (f fakeSearcher) Search(_ context.Context, _ string, limit int) ([]Result, error) {
	if limit > 0 && limit < len(f.results) {
		return f.results[:limit], nil
	}
	return f.results, nil
}

func doc(id uint64) corpus.Document { return corpus.Document{ID: id, Title: string(rune('A' + id - 1))} }

func TestNormalizeEmptyReturnsEmpty(t *testing.T) {
	assert.Equal(t, []float64{}, Normalize(nil))
}

func TestNormalizeDegenerateCollapsesToOne(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 1}, Normalize([]float64{5, 5, 5}))
}

func TestNormalizeBounds(t *testing.T) {
	out := Normalize([]float64{10, 0, 5})
	assert.Equal(t, 1.0, out[0])
	assert.Equal(t, 0.0, out[1])
	assert.Equal(t, 0.5, out[2])
}

func TestS4RRFOrdering(t *testing.T) {
	a, b, c := doc(1), doc(2), doc(3)
	lex := fakeSearcher{results: []Result{{Document: a, Score: 1}, {Document: b, Score: 0.5}}}
	sem := fakeSearcher{results: []Result{{Document: b, Score: 1}, {Document: c, Score: 0.5}}}

	r := New(WithLexicalSearcher(lex), WithSemanticSearcher(sem), WithOverfetchFactor(1))
	results := r.RRF(context.Background(), "query", 60, 3)

	assert.Equal(t, []uint64{2, 1, 3}, ids(results))
	assert.InDelta(t, 1.0/61, results[1].Score, 1e-9)
	assert.InDelta(t, 1.0/62+1.0/61, results[0].Score, 1e-9)
	assert.InDelta(t, 1.0/62, results[2].Score, 1e-9)
}

func TestS5WeightedTieBreak(t *testing.T) {
	a, b := doc(1), doc(2)
	lex := fakeSearcher{results: []Result{{Document: a, Score: 10}, {Document: b, Score: 0}}}
	sem := fakeSearcher{results: []Result{{Document: a, Score: 0}, {Document: b, Score: 10}}}

	r := New(WithLexicalSearcher(lex), WithSemanticSearcher(sem), WithOverfetchFactor(1))
	results := r.Weighted(context.Background(), "query", 0.5, 2)

	assert.Equal(t, []uint64{1, 2}, ids(results))
	assert.InDelta(t, 0.5, results[0].Score, 1e-9)
	assert.InDelta(t, 0.5, results[1].Score, 1e-9)
}

func TestWeightedBoundaryAlphaOneEqualsLexical(t *testing.T) {
	a, b := doc(1), doc(2)
	lex := fakeSearcher{results: []Result{{Document: a, Score: 10}, {Document: b, Score: 2}}}
	sem := fakeSearcher{results: []Result{{Document: b, Score: 10}, {Document: a, Score: 2}}}

	r := New(WithLexicalSearcher(lex), WithSemanticSearcher(sem), WithOverfetchFactor(1))
	results := r.Weighted(context.Background(), "query", 1.0, 2)

	assert.Equal(t, []uint64{1, 2}, ids(results))
}

func TestWeightedBoundaryAlphaZeroEqualsSemantic(t *testing.T) {
	a, b := doc(1), doc(2)
	lex := fakeSearcher{results: []Result{{Document: a, Score: 10}, {Document: b, Score: 2}}}
	sem := fakeSearcher{results: []Result{{Document: b, Score: 10}, {Document: a, Score: 2}}}

	r := New(WithLexicalSearcher(lex), WithSemanticSearcher(sem), WithOverfetchFactor(1))
	results := r.Weighted(context.Background(), "query", 0.0, 2)

	assert.Equal(t, []uint64{2, 1}, ids(results))
}

func ids(results []Result) []uint64 {
	out := make([]uint64, len(results))
	for i, r := range results {
		out[i] = r.Document.ID
	}
	return out
}
