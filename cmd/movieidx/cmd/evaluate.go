package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/movieidx/movieidx/internal/clifmt"
	"github.com/movieidx/movieidx/internal/dataset"
	"github.com/movieidx/movieidx/internal/evaluate"
)

func newEvaluateCmd() *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "evaluate",
		Short: "Run the precision/recall/F1 evaluation harness against the golden dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, limit)
		},
	}
	c.Flags().IntVar(&limit, "limit", 10, "results retrieved per case")
	return c
}

func runEvaluate(cmd *cobra.Command, limit int) error {
	e, err := loadFullEngine(cmd.Context())
	if err != nil {
		return err
	}
	cases, err := dataset.LoadGoldenDataset(e.cfg.Paths.GoldenDataset)
	if err != nil {
		return err
	}

	strategy := evaluate.RRFStrategy(e.cfg.Fusion.RRFConstant)
	report := evaluate.Run(cmd.Context(), e.ranker(), cases, strategy, limit)

	out := clifmt.New(cmd.OutOrStdout())
	var sumP, sumR, sumF1 float64
	for _, r := range report.Results {
		if r.Err != nil {
			out.Warning(fmt.Sprintf("case %q failed: %v", r.Query, r.Err))
			continue
		}
		out.Status("", fmt.Sprintf("%-30s P=%.3f R=%.3f F1=%.3f", r.Query, r.Precision, r.Recall, r.F1))
		out.Status("", fmt.Sprintf("  retrieved: %v", r.Retrieved))
		out.Status("", fmt.Sprintf("  relevant:  %v", r.Relevant))
		sumP += r.Precision
		sumR += r.Recall
		sumF1 += r.F1
	}
	if n := float64(len(report.Results)); n > 0 {
		out.Success(fmt.Sprintf("run %s: mean P=%.3f R=%.3f F1=%.3f over %d cases",
			report.ID, sumP/n, sumR/n, sumF1/n, len(report.Results)))
	}
	return nil
}
