package evaluate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieidx/movieidx/internal/corpus"
	"github.com/movieidx/movieidx/internal/hybrid"
)

type fixedSearcher struct{ results []hybrid.Result }

func (f fixedSearcher) Search(_ context.Context, _ string, limit int) ([]hybrid.Result, error) {
	if limit > 0 && limit < len(f.results) {
		return f.results[:limit], nil
	}
	return f.results, nil
}

func titled(id uint64, title string) hybrid.Result {
	return hybrid.Result{Document: corpus.Document{ID: id, Title: title}, Score: 1}
}

// TestS6PrecisionRecallF1 reproduces the seed scenario: relevant={X,Y,Z},
// retrieved top-5=[X,Y,Q,R,S] -> P=0.4, R=0.667, F1=0.5.
func TestS6PrecisionRecallF1(t *testing.T) {
	lex := fixedSearcher{results: []hybrid.Result{
		titled(1, "X"), titled(2, "Y"), titled(3, "Q"), titled(4, "R"), titled(5, "S"),
	}}
	sem := fixedSearcher{}
	ranker := hybrid.New(hybrid.WithLexicalSearcher(lex), hybrid.WithSemanticSearcher(sem), hybrid.WithOverfetchFactor(1))

	cases := []Case{{Query: "q", RelevantDocs: []string{"X", "Y", "Z"}}}
	report := Run(context.Background(), ranker, cases, WeightedStrategy(1.0), 5)

	require.Len(t, report.Results, 1)
	r := report.Results[0]
	assert.InDelta(t, 0.4, r.Precision, 1e-9)
	assert.InDelta(t, 2.0/3.0, r.Recall, 1e-9)
	assert.InDelta(t, 0.5, r.F1, 1e-9)
	assert.NotEmpty(t, report.ID)
}

func TestRunContinuesAfterEmptyRetrieval(t *testing.T) {
	lex := fixedSearcher{}
	sem := fixedSearcher{}
	ranker := hybrid.New(hybrid.WithLexicalSearcher(lex), hybrid.WithSemanticSearcher(sem), hybrid.WithOverfetchFactor(1))

	cases := []Case{
		{Query: "empty", RelevantDocs: []string{"X"}},
		{Query: "also empty", RelevantDocs: nil},
	}
	report := Run(context.Background(), ranker, cases, RRFStrategy(60), 5)

	require.Len(t, report.Results, 2)
	assert.Equal(t, 0.0, report.Results[0].Precision)
	assert.Equal(t, 0.0, report.Results[0].Recall)
	assert.Equal(t, 0.0, report.Results[1].F1)
}
