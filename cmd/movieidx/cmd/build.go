package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/movieidx/movieidx/internal/clifmt"
	"github.com/movieidx/movieidx/internal/persist"
	"github.com/movieidx/movieidx/internal/semantic"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Rebuild the inverted index and chunk embeddings, persisting both to cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd)
		},
	}
}

func runBuild(cmd *cobra.Command) error {
	out := clifmt.New(cmd.OutOrStdout())
	e, err := loadLexicalEngine()
	if err != nil {
		return err
	}

	lock := persist.NewBuildLock(e.cfg.Paths.CacheDir)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	if err := e.lexical.Save(e.cfg.Paths.CacheDir); err != nil {
		return fmt.Errorf("save lexical index: %w", err)
	}
	out.Success(fmt.Sprintf("lexical index built: %d documents, avg length %.2f",
		e.lexical.DocCount(), e.lexical.AverageDocLength()))

	e.embedder = newEmbedder(e.cfg)
	sem := semantic.New(e.embedder, e.cfg.Chunk.Size, e.cfg.Chunk.Overlap)
	if err := sem.Build(cmd.Context(), e.documents); err != nil {
		return fmt.Errorf("build chunk embeddings: %w", err)
	}
	if err := sem.Save(e.cfg.Paths.CacheDir, len(e.documents)); err != nil {
		return fmt.Errorf("save chunk embeddings: %w", err)
	}
	out.Success(fmt.Sprintf("chunk index built: %d chunks across %d documents",
		sem.ChunkCount(), sem.DocCount()))

	return nil
}
