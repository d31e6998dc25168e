package cmd

import (
	"github.com/huangsam/babscore/core"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/spf13/cobra"
)

// insightsCmd prints the highlights of the chapter table.
var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show the most efficient and the most delayed chapter.",
	Long: `Summarize the scored chapters: the chapter with the highest EOR, the chapter
with the largest delay impact and the mean, median, spread and range of each metric.

Examples:
  babscore insights
  babscore insights --input chapters.xlsx --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInsights(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot summarize chapters", err)
		}
	},
}
