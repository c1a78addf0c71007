package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/movieidx/movieidx/internal/clifmt"
	"github.com/movieidx/movieidx/internal/semantic"
)

// newEmbedCmds returns the embedding diagnostic commands spec.md §6 names:
// embed_text, embedquery, verify, verify_embeddings, embed_chunks.
func newEmbedCmds() []*cobra.Command {
	return []*cobra.Command{
		newEmbedTextCmd(),
		newEmbedQueryCmd(),
		newVerifyCmd(),
		newVerifyEmbeddingsCmd(),
		newEmbedChunksCmd(),
	}
}

func newEmbedTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "embed_text <text>",
		Short: "Embed arbitrary text and print its vector's dimensionality and the model name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			embedder := newEmbedder(cfg)
			vec, err := embedder.Embed(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dimensions=%d model=%s\n", len(vec), embedder.ModelName())
			return nil
		},
	}
}

func newEmbedQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "embedquery <text>",
		Short: "Embed a query string the same way search does",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			embedder := newEmbedder(cfg)
			vec, err := embedder.Embed(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dimensions=%d first_values=%v\n", len(vec), firstN(vec, 5))
			return nil
		},
	}
}

func firstN(v []float32, n int) []float32 {
	if len(v) < n {
		return v
	}
	return v[:n]
}

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify the configured embedder responds with a vector of the expected dimension",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := clifmt.New(cmd.OutOrStdout())
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			embedder := newEmbedder(cfg)
			vec, err := embedder.Embed(cmd.Context(), "verification probe")
			if err != nil {
				out.Errorf("embed failed: %v", err)
				return err
			}
			if len(vec) != embedder.Dimensions() {
				out.Errorf("expected %d dimensions, got %d", embedder.Dimensions(), len(vec))
				return fmt.Errorf("dimension mismatch")
			}
			out.Success(fmt.Sprintf("embedder %q produced a %d-dimension vector", embedder.ModelName(), len(vec)))
			return nil
		},
	}
}

func newVerifyEmbeddingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify_embeddings",
		Short: "Report the chunk index's document count, chunk count, and embedding dimension",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := clifmt.New(cmd.OutOrStdout())
			e, err := loadFullEngine(cmd.Context())
			if err != nil {
				return err
			}
			if e.semantic.DocCount() == 0 {
				out.Warning("no chunk embeddings built (empty corpus or all descriptions empty)")
				return nil
			}
			out.Success(fmt.Sprintf("%d documents, %d chunks, dimension %d",
				e.semantic.DocCount(), e.semantic.ChunkCount(), e.embedder.Dimensions()))
			return nil
		},
	}
}

func newEmbedChunksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "embed_chunks",
		Short: "Build and persist the chunk embedding matrix",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := clifmt.New(cmd.OutOrStdout())
			e, err := loadLexicalEngine()
			if err != nil {
				return err
			}
			e.embedder = newEmbedder(e.cfg)
			sem := semantic.New(e.embedder, e.cfg.Chunk.Size, e.cfg.Chunk.Overlap)
			if err := sem.Build(cmd.Context(), e.documents); err != nil {
				return err
			}
			if err := sem.Save(e.cfg.Paths.CacheDir, len(e.documents)); err != nil {
				return err
			}
			out.Success(fmt.Sprintf("embedded %d chunks across %d documents", sem.ChunkCount(), sem.DocCount()))
			return nil
		},
	}
}
