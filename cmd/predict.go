package cmd

import (
	"github.com/huangsam/babscore/core"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/spf13/cobra"
)

// predictCmd fits the duration model and predicts the slider inputs.
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the completion time of a chapter in weeks.",
	Long: `Fit a polynomial ridge regression on the chapter table and predict the
completion time for one set of percentages.

The model is trained on very few rows. Treat the result as an interpolation of
the known chapters rather than a forecast.

Examples:
  # Predict with the default inputs
  babscore predict

  # Predict a harder chapter with the basic feature set
  babscore predict --features basic --target 95 --realized 80 --effectiveness 75

  # Change the model shape
  babscore predict --degree 2 --lambda 0.5`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePredict(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot predict completion time", err)
		}
	},
}
