package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/movieidx/movieidx/internal/clifmt"
	"github.com/movieidx/movieidx/internal/llmboundary"
)

func newWeightedSearchCmd() *cobra.Command {
	var alpha float64
	var limit int
	c := &cobra.Command{
		Use:   "weighted-search <query>",
		Short: "Weighted linear fusion of lexical and semantic scores",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadFullEngine(cmd.Context())
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			results := e.ranker().Weighted(cmd.Context(), query, alpha, limit)

			out := clifmt.New(cmd.OutOrStdout())
			rows := make([]clifmt.Result, len(results))
			for i, r := range results {
				rows[i] = clifmt.Result{DocID: r.Document.ID, Title: r.Document.Title, Score: r.Score, Description: r.Document.Description}
			}
			out.ResultTable(rows)
			return nil
		},
	}
	c.Flags().Float64Var(&alpha, "alpha", 0.5, "lexical weight in [0,1]; 1-alpha is the semantic weight")
	c.Flags().IntVar(&limit, "limit", 10, "maximum results")
	return c
}

func newRRFSearchCmd() *cobra.Command {
	var k, limit int
	var enhanceFlag, rerankFlag string
	c := &cobra.Command{
		Use:   "rrf-search <query>",
		Short: "Reciprocal Rank Fusion of lexical and semantic rankings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRRFSearch(cmd, strings.Join(args, " "), k, limit, enhanceFlag, rerankFlag)
		},
	}
	c.Flags().IntVarP(&k, "k", "k", 60, "RRF smoothing constant")
	c.Flags().IntVar(&limit, "limit", 10, "maximum results")
	c.Flags().StringVar(&enhanceFlag, "enhance", "", "query enhancement mode: expand|rewrite|spell")
	c.Flags().StringVar(&rerankFlag, "rerank-method", "", "rerank method: individual|batch|cross_encoder")
	return c
}

func runRRFSearch(cmd *cobra.Command, query string, k, limit int, enhanceFlag, rerankFlag string) error {
	e, err := loadFullEngine(cmd.Context())
	if err != nil {
		return err
	}

	var enhancer llmboundary.Enhancer = llmboundary.NoopEnhancer{}
	if enhanceFlag != "" {
		stub, err := llmboundary.NewStubEnhancer()
		if err != nil {
			return err
		}
		enhancer = stub
	}
	enhanced, err := enhancer.Enhance(cmd.Context(), query, llmboundary.EnhanceMode(enhanceFlag))
	if err != nil {
		return err
	}

	results := e.ranker().RRF(cmd.Context(), enhanced, k, limit)

	var reranker llmboundary.Reranker = llmboundary.NoopReranker{}
	if rerankFlag != "" {
		stub, err := llmboundary.NewStubReranker()
		if err != nil {
			return err
		}
		reranker = stub
	}
	results, err = reranker.Rerank(cmd.Context(), enhanced, results, llmboundary.RerankMethod(rerankFlag))
	if err != nil {
		return err
	}

	out := clifmt.New(cmd.OutOrStdout())
	rows := make([]clifmt.Result, len(results))
	for i, r := range results {
		rows[i] = clifmt.Result{DocID: r.Document.ID, Title: r.Document.Title, Score: r.Score, Description: r.Document.Description}
	}
	out.ResultTable(rows)
	return nil
}
