package cmd

import (
	"github.com/huangsam/babscore/core"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/spf13/cobra"
)

// rcaCmd prints the root cause breakdown and the ranked remediations.
var rcaCmd = &cobra.Command{
	Use:   "rca",
	Short: "Break delays down into root causes and rank the remediations.",
	Long: `Compute the contribution of every delay factor, the aggregate RCA value and
the expected impact (EIA) of each candidate solution.

Examples:
  babscore rca
  babscore rca --decay 0.2 --output xlsx --output-file rca.xlsx`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRCA(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run root cause analysis", err)
		}
	},
}
