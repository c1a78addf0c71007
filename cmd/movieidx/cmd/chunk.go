package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/movieidx/movieidx/internal/clifmt"
	"github.com/movieidx/movieidx/internal/semantic"
)

// wordWindowChunk splits text on raw spaces and slides a window of
// chunkSize words forward by chunkSize-overlap each step, with a final
// partial window appended — the simple word-count utility `chunk`
// exposes, distinct from semantic_chunk's sentence-aware windows.
func wordWindowChunk(text string, chunkSize, overlap int) [][]string {
	words := strings.Split(text, " ")
	stride := chunkSize - overlap
	if stride <= 0 {
		stride = 1
	}

	var chunks [][]string
	for len(words) > chunkSize {
		chunk := make([]string, chunkSize)
		copy(chunk, words[:chunkSize])
		chunks = append(chunks, chunk)
		words = words[stride:]
	}
	if len(words) > 0 {
		chunk := make([]string, len(words))
		copy(chunk, words)
		chunks = append(chunks, chunk)
	}
	return chunks
}

func newChunkCmd() *cobra.Command {
	var chunkSize, overlap int
	c := &cobra.Command{
		Use:   "chunk <text>",
		Short: "Word-window chunking utility",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			chunks := wordWindowChunk(text, chunkSize, overlap)
			fmt.Fprintf(cmd.OutOrStdout(), "Chunking %d characters\n", len(text))
			for i, chunk := range chunks {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, strings.Join(chunk, " "))
			}
			return nil
		},
	}
	c.Flags().IntVar(&chunkSize, "chunk-size", 4, "words per chunk")
	c.Flags().IntVar(&overlap, "overlap", 1, "overlapping words between consecutive chunks")
	return c
}

func newSemanticChunkCmd() *cobra.Command {
	var maxChunkSize, overlap int
	c := &cobra.Command{
		Use:   "semantic_chunk <text>",
		Short: "Sentence-window chunking utility",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			windows := semantic.SentenceChunk(text, maxChunkSize, overlap)
			for i, window := range windows {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, strings.Join(window, " "))
			}
			return nil
		},
	}
	c.Flags().IntVar(&maxChunkSize, "max-chunk-size", 4, "sentences per chunk")
	c.Flags().IntVar(&overlap, "overlap", 1, "overlapping sentences between consecutive chunks")
	return c
}

func newSearchChunkedCmd() *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "search_chunked <query>",
		Short: "Chunked semantic top-k search",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearchChunked(cmd, strings.Join(args, " "), limit)
		},
	}
	c.Flags().IntVar(&limit, "limit", 10, "maximum results")
	return c
}

func runSearchChunked(cmd *cobra.Command, query string, limit int) error {
	e, err := loadFullEngine(cmd.Context())
	if err != nil {
		return err
	}
	results, err := e.semantic.SearchChunks(cmd.Context(), query, limit)
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
