package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/internal/dataset"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// profiler writes CPU and heap profiles under a file prefix.
// The zero value is disabled.
type profiler struct {
	prefix  string
	cpuFile *os.File
}

// prof is the profiler of the running command.
var prof profiler

func (p *profiler) start(prefix string) error {
	if prefix == "" || p.cpuFile != nil {
		return nil
	}
	f, err := os.Create(prefix + ".cpu.prof")
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("could not start CPU profiling: %w", err)
	}
	p.prefix, p.cpuFile = prefix, f
	fmt.Fprintf(os.Stderr, "🔬 Profiling to %s.cpu.prof and %s.mem.prof\n", prefix, prefix)
	return nil
}

func (p *profiler) stop() error {
	if p.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	if err := p.cpuFile.Close(); err != nil {
		return fmt.Errorf("could not close CPU profile: %w", err)
	}
	p.cpuFile = nil

	memFile, err := os.Create(p.prefix + ".mem.prof")
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer func() { _ = memFile.Close() }()
	if err := pprof.WriteHeapProfile(memFile); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	fmt.Fprintf(os.Stderr, "🔬 Profiling complete. Inspect with 'go tool pprof %s.cpu.prof'\n", p.prefix)
	return nil
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "babscore",
	Short:              "Score program chapters and explain what slows them down.",
	Long:               `babscore computes chapter performance metrics, predicts completion time and breaks delays down into root causes.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A missing .env file is fine; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		contract.LogWarn("Cannot load .env file", err)
	}

	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".babscore") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	viper.SetEnvPrefix("BABSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Defaults match the flag defaults so commands without a flag still resolve.
	defaults := contract.DefaultRawInput()
	viper.SetDefault("output", defaults.Output)
	viper.SetDefault("precision", defaults.Precision)
	viper.SetDefault("variant", defaults.Variant)
	viper.SetDefault("color", defaults.Color)
	viper.SetDefault("sort-by", defaults.SortBy)
	viper.SetDefault("limit", defaults.Limit)
	viper.SetDefault("degree", defaults.Degree)
	viper.SetDefault("lambda", defaults.Lambda)
	viper.SetDefault("target", defaults.Target)
	viper.SetDefault("realized", defaults.Realized)
	viper.SetDefault("effectiveness", defaults.Effectiveness)
	viper.SetDefault("complexity", defaults.Complexity)
	viper.SetDefault("discipline", defaults.Discipline)
	viper.SetDefault("source", defaults.Source)
	viper.SetDefault("decay", defaults.Decay)
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(ctx context.Context, cmd *cobra.Command, _ []string) error {
	if err := prof.start(strings.TrimSpace(viper.GetString("profile"))); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}

	// Flags shared by several commands are bound to the one that runs.
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("unable to bind flags: %w", err)
	}

	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing into the global 'cfg'.
	if err := contract.ProcessAndValidate(ctx, cfg, dataset.NewFileLoader(), input); err != nil {
		return err
	}

	color.NoColor = !cfg.UseColors
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// StopProfiling flushes the profiles of the last command, if any.
func StopProfiling() error {
	return prof.stop()
}
