package cmd

import (
	"github.com/huangsam/babscore/core"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/spf13/cobra"
)

// projectCmd reduces the chapter or RCA matrix to two principal directions.
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project chapters or RCA factors onto two principal components.",
	Long: `Standardize the selected matrix and project every row onto its first two
principal components, together with the loadings and explained variance.

Examples:
  babscore project
  babscore project --columns eor,ikk,ke
  babscore project --source rca --decay 0.1 --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProject(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot project data", err)
		}
	},
}
