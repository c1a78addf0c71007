// Package cmd provides the CLI commands for movieidx.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/movieidx/movieidx/internal/obslog"
	"github.com/movieidx/movieidx/pkg/version"
)

var (
	configDir  string
	debugMode  bool
	logCleanup func()
)

// NewRootCmd creates the root command for the movieidx CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "movieidx",
		Short:   "Hybrid BM25 + dense-vector search over a movie corpus",
		Version: version.Version,
		Long: `movieidx builds and queries a hybrid retrieval engine over a corpus
of movie titles and descriptions, combining Okapi BM25 lexical scoring
with cosine similarity over chunked sentence embeddings.`,
		PersistentPreRunE:  setupLogging,
		PersistentPostRunE: teardownLogging,
	}

	cmd.SetVersionTemplate("movieidx version {{.Version}}\n")
	cmd.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing movieidx.yaml")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging to ~/.movieidx/logs/")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newBM25SearchCmd())
	cmd.AddCommand(newDiagnosticCmds()...)
	cmd.AddCommand(newEmbedCmds()...)
	cmd.AddCommand(newChunkCmd())
	cmd.AddCommand(newSemanticChunkCmd())
	cmd.AddCommand(newSearchChunkedCmd())
	cmd.AddCommand(newWeightedSearchCmd())
	cmd.AddCommand(newRRFSearchCmd())
	cmd.AddCommand(newEvaluateCmd())
	cmd.AddCommand(newNormalizeScoresCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func setupLogging(_ *cobra.Command, _ []string) error {
	cfg := obslog.DefaultConfig()
	if debugMode {
		cfg = obslog.DebugConfig()
	}
	logger, cleanup, err := obslog.Setup(cfg)
	if err != nil {
		return err
	}
	logCleanup = cleanup
	slog.SetDefault(logger)
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) error {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
