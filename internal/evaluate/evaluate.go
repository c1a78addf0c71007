// Package evaluate runs labelled retrieval cases through a fusion ranker
// and scores precision, recall, and F1 at a fixed cutoff, per spec.md §4.6.
package evaluate

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/movieidx/movieidx/internal/hybrid"
)

// Case is a single labelled query: the relevant documents are identified
// by title, matched case-sensitively against retrieved results.
type Case struct {
	Query        string
	RelevantDocs []string
}

// CaseResult holds one case's outcome. Err is set, and the score fields
// left zero, when scoring the case panicked; Run still continues on to
// the remaining cases. A backend search error does not set Err: the
// Ranker drops that backend's results, so the case is scored on fewer
// retrieved documents.
type CaseResult struct {
	Query     string
	Precision float64
	Recall    float64
	F1        float64
	Retrieved []string
	Relevant  []string
	Err       error
}

// Report wraps a batch of CaseResults with an identifier unique to the run.
type Report struct {
	ID      string
	Results []CaseResult
}

// FusionStrategy selects which Ranker method Run drives the cases through.
type FusionStrategy func(ctx context.Context, r *hybrid.Ranker, query string, limit int) []hybrid.Result

// RRFStrategy returns a FusionStrategy using RRF with the given k, the
// spec's default evaluation configuration.
func RRFStrategy(k int) FusionStrategy {
	return func(ctx context.Context, r *hybrid.Ranker, query string, limit int) []hybrid.Result {
		return r.RRF(ctx, query, k, limit)
	}
}

// WeightedStrategy returns a FusionStrategy using weighted fusion at alpha.
func WeightedStrategy(alpha float64) FusionStrategy {
	return func(ctx context.Context, r *hybrid.Ranker, query string, limit int) []hybrid.Result {
		return r.Weighted(ctx, query, alpha, limit)
	}
}

// Run retrieves the top limit documents for every case via strategy and
// scores each independently. A single case never aborts the batch; its
// CaseResult simply carries whatever was retrieved.
func Run(ctx context.Context, ranker *hybrid.Ranker, cases []Case, strategy FusionStrategy, limit int) Report {
	results := make([]CaseResult, len(cases))
	for i, c := range cases {
		results[i] = scoreCase(ctx, ranker, c, strategy, limit)
	}
	return Report{ID: uuid.NewString(), Results: results}
}

func scoreCase(ctx context.Context, ranker *hybrid.Ranker, c Case, strategy FusionStrategy, limit int) (result CaseResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = CaseResult{Query: c.Query, Err: fmt.Errorf("case %q panicked: %v", c.Query, rec)}
		}
	}()

	retrieved := strategy(ctx, ranker, c.Query, limit)

	titles := make([]string, len(retrieved))
	for i, r := range retrieved {
		titles[i] = r.Document.Title
	}

	relevant := make(map[string]struct{}, len(c.RelevantDocs))
	for _, title := range c.RelevantDocs {
		relevant[title] = struct{}{}
	}

	var hits int
	for _, title := range titles {
		if _, ok := relevant[title]; ok {
			hits++
		}
	}

	var precision, recall float64
	if len(titles) > 0 {
		precision = float64(hits) / float64(len(titles))
	}
	if len(c.RelevantDocs) > 0 {
		recall = float64(hits) / float64(len(c.RelevantDocs))
	}
	var f1 float64
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return CaseResult{
		Query:     c.Query,
		Precision: precision,
		Recall:    recall,
		F1:        f1,
		Retrieved: titles,
		Relevant:  c.RelevantDocs,
	}
}
