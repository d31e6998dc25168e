package cmd

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/huangsam/babscore/schema"
	"github.com/spf13/cobra"
)

// buildVersion returns the linker version, or the module version for `go install` builds.
func buildVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// versionCmd prints build details along with the formula variants this binary scores with.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of babscore.",
	Long: `Display the release, commit, build timestamp and Go runtime of this binary,
followed by the formula variants it can score chapters with.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		variants := make([]string, 0, len(schema.ValidVariants))
		for _, v := range []schema.FormulaVariant{schema.V1Simple, schema.V2WithDiscipline} {
			variants = append(variants, string(v))
		}
		cmd.Printf("babscore %s (commit %s, built %s)\n", buildVersion(), commit, date)
		cmd.Printf("  Go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		cmd.Printf("  Variants: %s (default %s)\n", strings.Join(variants, ", "), schema.V2WithDiscipline)
	},
}
