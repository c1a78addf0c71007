package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/movieidx/movieidx/internal/hybrid"
)

// newNormalizeScoresCmd exposes hybrid.Normalize directly, mirroring the
// standalone normalize diagnostic the fusion commands build on internally.
func newNormalizeScoresCmd() *cobra.Command {
	var scores []float64
	c := &cobra.Command{
		Use:   "normalize-scores",
		Short: "Print the min-max normalization of an arbitrary score list",
		RunE: func(cmd *cobra.Command, args []string) error {
			normalized := hybrid.Normalize(scores)
			for i, s := range scores {
				fmt.Fprintf(cmd.OutOrStdout(), "%g -> %g\n", s, normalized[i])
			}
			return nil
		},
	}
	c.Flags().Float64SliceVar(&scores, "scores", nil, "comma-separated list of raw scores")
	return c
}
