package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/movieidx/movieidx/internal/clifmt"
)

// defaultSearchLimit caps the non-ranked token-postings fallback search,
// per spec.md §9: a diagnostic path, not a ranking path.
const defaultSearchLimit = 10

func newSearchCmd() *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "search <query>",
		Short: "Token-postings union search (unranked, diagnostic)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), limit)
		},
	}
	c.Flags().IntVar(&limit, "limit", defaultSearchLimit, "maximum results")
	return c
}

func runSearch(cmd *cobra.Command, query string, limit int) error {
	e, err := loadLexicalEngine()
	if err != nil {
		return err
	}

	tokens := e.pipeline.Normalize(query)
	seen := make(map[uint64]struct{})
	var ids []uint64
	for _, token := range tokens {
		docs, err := e.lexical.GetDocuments(token)
		if err != nil {
			continue // a token that does not re-normalize to exactly one token contributes no postings
		}
		for _, id := range docs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
			if len(ids) >= limit {
				break
			}
		}
		if len(ids) >= limit {
			break
		}
	}

	out := clifmt.New(cmd.OutOrStdout())
	results := make([]clifmt.Result, 0, len(ids))
	for _, id := range ids {
		doc, ok := e.lexical.Document(id)
		if !ok {
			continue
		}
		results = append(results, clifmt.Result{DocID: doc.ID, Title: doc.Title, Description: doc.Description})
	}
	out.ResultTable(results)
	return nil
}

func newBM25SearchCmd() *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "bm25search <query>",
		Short: "BM25 top-k lexical search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBM25Search(cmd, strings.Join(args, " "), limit)
		},
	}
	c.Flags().IntVar(&limit, "limit", 10, "maximum results")
	return c
}

func runBM25Search(cmd *cobra.Command, query string, limit int) error {
	e, err := loadLexicalEngine()
	if err != nil {
		return err
	}
	scored := e.lexical.BM25Search(query, limit)

	out := clifmt.New(cmd.OutOrStdout())
	results := make([]clifmt.Result, len(scored))
	for i, sd := range scored {
		results[i] = clifmt.Result{DocID: sd.Document.ID, Title: sd.Document.Title, Score: sd.Score, Description: sd.Document.Description}
	}
	out.ResultTable(results)
	return nil
}
