package cmd

import (
	"github.com/huangsam/babscore/core"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/spf13/cobra"
)

// formulasCmd prints the formula definitions with the active weights.
var formulasCmd = &cobra.Command{
	Use:     "formulas",
	Short:   "Show every formula with the active weights and constants.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFormulas(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot print formulas", err)
		}
	},
}
