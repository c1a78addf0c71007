package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newDiagnosticCmds returns the scalar diagnostic commands spec.md §6
// names: tf, idf, tfidf, bm25tf, bm25idf.
func newDiagnosticCmds() []*cobra.Command {
	return []*cobra.Command{
		newTFCmd(),
		newIDFCmd(),
		newTFIDFCmd(),
		newBM25TFCmd(),
		newBM25IDFCmd(),
	}
}

func parseDocID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid doc_id %q: %w", s, err)
	}
	return id, nil
}

func newTFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tf <doc_id> <term>",
		Short: "Raw term frequency of term in a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID, err := parseDocID(args[0])
			if err != nil {
				return err
			}
			e, err := loadLexicalEngine()
			if err != nil {
				return err
			}
			tf, err := e.lexical.GetTF(docID, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tf)
			return nil
		},
	}
}

func newIDFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "idf <term>",
		Short: "Smoothed inverse document frequency of term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadLexicalEngine()
			if err != nil {
				return err
			}
			idf, err := e.lexical.GetIDF(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), idf)
			return nil
		},
	}
}

func newTFIDFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tfidf <doc_id> <term>",
		Short: "Raw term frequency times smoothed IDF",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID, err := parseDocID(args[0])
			if err != nil {
				return err
			}
			e, err := loadLexicalEngine()
			if err != nil {
				return err
			}
			tf, err := e.lexical.GetTF(docID, args[1])
			if err != nil {
				return err
			}
			idf, err := e.lexical.GetIDF(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), float64(tf)*idf)
			return nil
		},
	}
}

func newBM25TFCmd() *cobra.Command {
	var k1, b float64
	c := &cobra.Command{
		Use:   "bm25tf <doc_id> <term> [k1 b]",
		Short: "Length-normalized BM25 term-frequency component",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			docID, err := parseDocID(args[0])
			if err != nil {
				return err
			}
			if len(args) >= 3 {
				if k1, err = strconv.ParseFloat(args[2], 64); err != nil {
					return fmt.Errorf("invalid k1: %w", err)
				}
			}
			if len(args) >= 4 {
				if b, err = strconv.ParseFloat(args[3], 64); err != nil {
					return fmt.Errorf("invalid b: %w", err)
				}
			}
			e, err := loadLexicalEngine()
			if err != nil {
				return err
			}
			if len(args) < 3 {
				k1 = e.cfg.BM25.K1
			}
			if len(args) < 4 {
				b = e.cfg.BM25.B
			}
			score, err := e.lexical.GetBM25TF(docID, args[1], k1, b)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), score)
			return nil
		},
	}
	return c
}

func newBM25IDFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bm25idf <term>",
		Short: "Lucene-style BM25 IDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadLexicalEngine()
			if err != nil {
				return err
			}
			idf, err := e.lexical.GetBM25IDF(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), idf)
			return nil
		},
	}
}
