// Package cmd defines the command-line interface for babscore.
package cmd

import (
	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(rcaCmd)
	rootCmd.AddCommand(formulasCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	defaults := contract.DefaultRawInput()

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("input", "i", "", "Chapter table to score (.csv, .xlsx or .parquet); defaults to the reference chapters")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet or xlsx")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to ('auto' picks "+contract.DefaultOutputBaseName+".<format>)")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("variant", string(schema.V2WithDiscipline), "Formula variant: v1 or v2")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Flags of chaptersCmd
	chaptersCmd.Flags().String("sort-by", defaults.SortBy, "Ranking metric: eor or ikk or ke or dk")
	chaptersCmd.Flags().IntP("limit", "l", defaults.Limit, "Number of chapters to display")

	// Flags of predictCmd
	predictCmd.Flags().String("features", "", "Predictor feature set: full or basic (defaults to the variant's set)")
	predictCmd.Flags().Int("degree", defaults.Degree, "Polynomial degree of the feature expansion (1-5)")
	predictCmd.Flags().Float64("lambda", defaults.Lambda, "Ridge regularization strength (>= 0)")
	predictCmd.Flags().Float64("target", defaults.Target, "Target percentage (80-100)")
	predictCmd.Flags().Float64("realized", defaults.Realized, "Realized percentage (70-100)")
	predictCmd.Flags().Float64("effectiveness", defaults.Effectiveness, "Effectiveness percentage (70-100)")
	predictCmd.Flags().Float64("complexity", defaults.Complexity, "Complexity percentage (60-100)")
	predictCmd.Flags().Float64("discipline", defaults.Discipline, "Discipline percentage (70-100)")

	// Flags of projectCmd
	projectCmd.Flags().String("source", defaults.Source, "Matrix to project: chapters or rca")
	projectCmd.Flags().String("columns", "", "Comma-separated chapter columns to project (default: the chapter percentages and eor)")
	projectCmd.Flags().Float64("decay", defaults.Decay, "Time decay rate of the RCA factors (>= 0)")

	// Flags of rcaCmd
	rcaCmd.Flags().Float64("decay", defaults.Decay, "Time decay rate of the RCA factors (>= 0)")
}
