package cmd

import (
	"github.com/huangsam/babscore/core"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/spf13/cobra"
)

// chaptersCmd scores every chapter and prints the ranked metrics table.
var chaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "Show the chapters ranked by one performance metric.",
	Long: `Score every chapter and rank them by EOR, IKK, KE or DK.

For each chapter babscore computes:
- EOR, the effectiveness of the realization over the time it took
- DK, the delay impact as a percentage of the target duration
- IKK, the weighted composite performance index
- KE, the effectiveness gained per week

Chapters whose metrics are undefined (a zero base in a log or a division)
are kept and listed with their issues instead of failing the run.

Examples:
  # Rank the reference chapters by efficiency
  babscore chapters

  # Rank an edited table by the composite index with the v1 formulas
  babscore chapters --input analisis_program.csv --variant v1 --sort-by ikk

  # Export the scored table as a spreadsheet
  babscore chapters --output xlsx --output-file chapters.xlsx`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteChapters(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot score chapters", err)
		}
	},
}
