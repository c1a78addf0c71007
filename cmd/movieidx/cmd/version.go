package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/movieidx/movieidx/internal/clifmt"
	"github.com/movieidx/movieidx/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var verbose bool
	c := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			clifmt.New(cmd.OutOrStdout()).FieldTable(version.GetInfo().Fields())
			return nil
		},
	}
	c.Flags().BoolVar(&verbose, "verbose", false, "print version, commit, build date, and platform as separate fields")
	return c
}
