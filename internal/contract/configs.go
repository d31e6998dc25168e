package contract

import (
	"context"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/huangsam/babscore/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	MaxPrecision       = 4
)

// weightSumTolerance absorbs float rounding when summing IKK weights.
const weightSumTolerance = 1e-9

// SliderRange is the accepted interval of one prediction input.
type SliderRange struct {
	Min, Max, Default float64
}

// SliderRanges are the accepted intervals of the prediction inputs, keyed by feature.
var SliderRanges = map[schema.FeatureKey]SliderRange{
	schema.FeatureTarget:        {Min: 80, Max: 100, Default: 100},
	schema.FeatureRealized:      {Min: 70, Max: 100, Default: 90},
	schema.FeatureEffectiveness: {Min: 70, Max: 100, Default: 85},
	schema.FeatureComplexity:    {Min: 60, Max: 100, Default: 80},
	schema.FeatureDiscipline:    {Min: 70, Max: 100, Default: 90},
}

// IKKWeightsRaw holds the custom IKK weights from the YAML config file.
// Use float64 pointers so unset weights keep their defaults.
type IKKWeightsRaw struct {
	Realized      *float64 `mapstructure:"realized"`
	Effectiveness *float64 `mapstructure:"effectiveness"`
	Procedure     *float64 `mapstructure:"procedure_compliance"`
	Contribution  *float64 `mapstructure:"contribution"`
}

// WeightsRawInput holds all custom weight definitions from the YAML config file.
type WeightsRawInput struct {
	IKK *IKKWeightsRaw `mapstructure:"ikk"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath string
	Chapters  []schema.ChapterRecord

	Variant    schema.FormulaVariant
	FeatureSet schema.FeatureSet
	Degree     int
	Lambda     float64

	// IKKWeights is the final weights map, computed from defaults + custom overrides
	IKKWeights map[schema.WeightKey]float64

	RankBy      schema.RankMetric
	ResultLimit int

	Slider schema.FeatureVector

	Source  schema.ProjectionSource
	Columns []string
	Decay   float64

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Input      string `mapstructure:"input"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Variant    string `mapstructure:"variant"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`

	// --- Fields from chaptersCmd.Flags() ---
	SortBy string `mapstructure:"sort-by"`
	Limit  int    `mapstructure:"limit"`

	// --- Fields from predictCmd.Flags() ---
	Features      string  `mapstructure:"features"`
	Degree        int     `mapstructure:"degree"`
	Lambda        float64 `mapstructure:"lambda"`
	Target        float64 `mapstructure:"target"`
	Realized      float64 `mapstructure:"realized"`
	Effectiveness float64 `mapstructure:"effectiveness"`
	Complexity    float64 `mapstructure:"complexity"`
	Discipline    float64 `mapstructure:"discipline"`

	// --- Fields from projectCmd.Flags() ---
	Source  string `mapstructure:"source"`
	Columns string `mapstructure:"columns"`

	// --- Fields from rcaCmd.Flags() ---
	Decay float64 `mapstructure:"decay"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// DefaultRawInput returns the raw input that matches the flag defaults.
func DefaultRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:        string(schema.TextOut),
		Precision:     DefaultPrecision,
		Variant:       string(schema.V2WithDiscipline),
		Color:         "yes",
		SortBy:        string(schema.RankByEOR),
		Limit:         DefaultResultLimit,
		Degree:        schema.DefaultPolyDegree,
		Lambda:        schema.DefaultRidgeLambda,
		Target:        SliderRanges[schema.FeatureTarget].Default,
		Realized:      SliderRanges[schema.FeatureRealized].Default,
		Effectiveness: SliderRanges[schema.FeatureEffectiveness].Default,
		Complexity:    SliderRanges[schema.FeatureComplexity].Default,
		Discipline:    SliderRanges[schema.FeatureDiscipline].Default,
		Source:        string(schema.ChapterSource),
		Decay:         schema.ReferenceRCAParams().Decay,
	}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Chapters = slices.Clone(c.Chapters)
	clone.Columns = slices.Clone(c.Columns)
	if c.IKKWeights != nil {
		clone.IKKWeights = make(map[schema.WeightKey]float64, len(c.IKKWeights))
		maps.Copy(clone.IKKWeights, c.IKKWeights)
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, loader ChapterLoader, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processModelOptions(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processSlider(cfg, input); err != nil {
		return err
	}
	if err := processProjection(cfg, input); err != nil {
		return err
	}
	if err := resolveChapters(ctx, cfg, loader, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	cfg.RankBy = schema.RankMetric(strings.ToLower(input.SortBy))
	if _, ok := schema.ValidRankMetrics[cfg.RankBy]; !ok {
		return fmt.Errorf("invalid sort metric '%s'. must be eor, ikk, ke, dk", input.SortBy)
	}

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet, xlsx", input.Output)
	}

	cfg.OutputFile = ResolveOutputFile(strings.TrimSpace(input.OutputFile), cfg.Output)
	if cfg.OutputFile == "" && (cfg.Output == schema.ParquetOut || cfg.Output == schema.XLSXOut) {
		return fmt.Errorf("--output-file is required for %s output", cfg.Output)
	}

	return nil
}

// processModelOptions handles the formula variant and the regression settings.
func processModelOptions(cfg *Config, input *ConfigRawInput) error {
	cfg.Variant = schema.FormulaVariant(strings.ToLower(input.Variant))
	if _, ok := schema.ValidVariants[cfg.Variant]; !ok {
		return fmt.Errorf("invalid variant '%s'. must be v1, v2", input.Variant)
	}

	cfg.FeatureSet = schema.DefaultFeatureSet(cfg.Variant)
	if input.Features != "" {
		cfg.FeatureSet = schema.FeatureSet(strings.ToLower(input.Features))
		if _, ok := schema.ValidFeatureSets[cfg.FeatureSet]; !ok {
			return fmt.Errorf("invalid feature set '%s'. must be full, basic", input.Features)
		}
	}

	if input.Degree < 1 || input.Degree > 5 {
		return fmt.Errorf("degree must be between 1 and 5 (received %d)", input.Degree)
	}
	cfg.Degree = input.Degree

	if !(input.Lambda >= 0) || math.IsInf(input.Lambda, 0) {
		return fmt.Errorf("lambda must be a finite number >= 0 (received %g)", input.Lambda)
	}
	cfg.Lambda = input.Lambda

	return nil
}

// ProcessWeightsRawInput merges the raw IKK overrides into the default weights.
// If validateSum is true, it validates that the merged weights sum to 1.0.
func ProcessWeightsRawInput(weights WeightsRawInput, validateSum bool) (map[schema.WeightKey]float64, error) {
	result := schema.GetDefaultIKKWeights()
	if weights.IKK == nil {
		return result, nil
	}

	overrides := map[schema.WeightKey]*float64{
		schema.WeightRealized:      weights.IKK.Realized,
		schema.WeightEffectiveness: weights.IKK.Effectiveness,
		schema.WeightProcedure:     weights.IKK.Procedure,
		schema.WeightContribution:  weights.IKK.Contribution,
	}
	for key, v := range overrides {
		if v == nil {
			continue
		}
		if *v < 0 || math.IsNaN(*v) {
			return nil, fmt.Errorf("ikk weight %s must be >= 0, got %g", key, *v)
		}
		result[key] = *v
	}

	if validateSum {
		sum := 0.0
		for _, k := range schema.AllWeightKeys {
			sum += result[k]
		}
		if math.Abs(sum-1) > weightSumTolerance {
			return nil, fmt.Errorf("ikk weights must sum to 1.0, got %g", sum)
		}
	}
	return result, nil
}

// processCustomWeights computes the final IKK weights.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}
	cfg.IKKWeights = weights
	return nil
}

// ValidateSlider checks every prediction input against its accepted range.
func ValidateSlider(v schema.FeatureVector) error {
	values := map[schema.FeatureKey]float64{
		schema.FeatureTarget:        v.Target,
		schema.FeatureRealized:      v.Realized,
		schema.FeatureEffectiveness: v.Effectiveness,
		schema.FeatureComplexity:    v.Complexity,
		schema.FeatureDiscipline:    v.Discipline,
	}
	for _, key := range schema.FullFeatures.Columns() {
		r := SliderRanges[key]
		if val := values[key]; !(val >= r.Min && val <= r.Max) {
			return fmt.Errorf("%s must be between %g and %g (received %g)", key, r.Min, r.Max, val)
		}
	}
	return nil
}

// processSlider builds the prediction inputs.
func processSlider(cfg *Config, input *ConfigRawInput) error {
	v := schema.FeatureVector{
		Target:        input.Target,
		Realized:      input.Realized,
		Effectiveness: input.Effectiveness,
		Complexity:    input.Complexity,
		Discipline:    input.Discipline,
	}
	if err := ValidateSlider(v); err != nil {
		return err
	}
	cfg.Slider = v
	return nil
}

// processProjection handles the projection source, columns and the RCA decay.
func processProjection(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.ProjectionSource(strings.ToLower(input.Source))
	if _, ok := schema.ValidProjectionSources[cfg.Source]; !ok {
		return fmt.Errorf("invalid projection source '%s'. must be chapters, rca", input.Source)
	}

	cfg.Columns = nil
	if input.Columns != "" {
		for c := range strings.SplitSeq(input.Columns, ",") {
			if trimmed := strings.TrimSpace(c); trimmed != "" {
				cfg.Columns = append(cfg.Columns, strings.ToLower(trimmed))
			}
		}
	}

	if !(input.Decay >= 0) || math.IsInf(input.Decay, 0) {
		return fmt.Errorf("decay must be a finite number >= 0 (received %g)", input.Decay)
	}
	cfg.Decay = input.Decay
	return nil
}

// resolveChapters loads the chapter table, falling back to the reference chapters.
func resolveChapters(ctx context.Context, cfg *Config, loader ChapterLoader, input *ConfigRawInput) error {
	cfg.InputPath = strings.TrimSpace(input.Input)
	if cfg.InputPath == "" {
		cfg.Chapters = schema.ReferenceChapters()
		return nil
	}
	if loader == nil {
		return fmt.Errorf("no chapter loader available for %s", cfg.InputPath)
	}
	records, err := loader.LoadChapters(ctx, cfg.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load chapters from %s: %w", cfg.InputPath, err)
	}
	if err := schema.ValidateChapters(records); err != nil {
		return fmt.Errorf("invalid chapters in %s: %w", cfg.InputPath, err)
	}
	cfg.Chapters = records
	return nil
}

// RowLimit returns the number of ranked chapters to emit. Tabular file exports
// (CSV, XLSX, Parquet) carry one row per chapter, so they are never limited.
func (c *Config) RowLimit() int {
	switch c.Output {
	case schema.CSVOut, schema.XLSXOut, schema.ParquetOut:
		return 0
	}
	return c.ResultLimit
}

// RCAParams returns the reference RCA dataset with the configured decay.
func (c *Config) RCAParams() schema.RCAParams {
	return schema.ReferenceRCAParams().WithDecay(c.Decay)
}

// RawInputFromConfig rebuilds the raw input that reproduces a validated config.
// The chapter table and IKK weights are not part of the result.
func RawInputFromConfig(cfg *Config) *ConfigRawInput {
	color := "no"
	if cfg.UseColors {
		color = "yes"
	}
	return &ConfigRawInput{
		Output:        string(cfg.Output),
		OutputFile:    cfg.OutputFile,
		Precision:     cfg.Precision,
		Variant:       string(cfg.Variant),
		Color:         color,
		Width:         cfg.Width,
		SortBy:        string(cfg.RankBy),
		Limit:         cfg.ResultLimit,
		Features:      string(cfg.FeatureSet),
		Degree:        cfg.Degree,
		Lambda:        cfg.Lambda,
		Target:        cfg.Slider.Target,
		Realized:      cfg.Slider.Realized,
		Effectiveness: cfg.Slider.Effectiveness,
		Complexity:    cfg.Slider.Complexity,
		Discipline:    cfg.Slider.Discipline,
		Source:        string(cfg.Source),
		Columns:       strings.Join(cfg.Columns, ","),
		Decay:         cfg.Decay,
	}
}

// Revalidate re-applies the raw input to an already loaded config.
// Chapters and IKK weights are kept as they are.
func Revalidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processModelOptions(cfg, input); err != nil {
		return err
	}
	if err := processSlider(cfg, input); err != nil {
		return err
	}
	return processProjection(cfg, input)
}
