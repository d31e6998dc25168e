package schema

// Custom string types for type safety.
type (
	// FormulaVariant selects the constants and terms of the EOR formula.
	FormulaVariant string

	// FeatureSet selects the columns used by the duration predictor.
	FeatureSet string

	// FeatureKey names a single predictor column.
	FeatureKey string

	// WeightKey names a term of the IKK weighted sum.
	WeightKey string

	// RankMetric represents the derived metric used for ranking chapters.
	RankMetric string

	// OutputMode represents the format of the output.
	OutputMode string

	// ProjectionSource selects the matrix projected by the projector.
	ProjectionSource string
)

// All formula variants supported.
const (
	V1Simple         FormulaVariant = "v1"
	V2WithDiscipline FormulaVariant = "v2" // default
)

// All feature sets supported.
const (
	FullFeatures  FeatureSet = "full" // default
	BasicFeatures FeatureSet = "basic"
)

// Predictor columns.
const (
	FeatureTarget        FeatureKey = "target_pct"
	FeatureRealized      FeatureKey = "realized_pct"
	FeatureEffectiveness FeatureKey = "effectiveness_pct"
	FeatureComplexity    FeatureKey = "complexity_pct"
	FeatureDiscipline    FeatureKey = "discipline_pct"
)

// IKK weight keys.
const (
	WeightRealized      WeightKey = "realized"
	WeightEffectiveness WeightKey = "effectiveness"
	WeightProcedure     WeightKey = "procedure_compliance"
	WeightContribution  WeightKey = "contribution"
)

// All ranking metrics supported.
const (
	RankByEOR RankMetric = "eor" // default
	RankByIKK RankMetric = "ikk"
	RankByKE  RankMetric = "ke"
	RankByDK  RankMetric = "dk"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
	XLSXOut    OutputMode = "xlsx"
)

// All projection sources supported.
const (
	ChapterSource ProjectionSource = "chapters" // default
	RCASource     ProjectionSource = "rca"
)

// Field names shared by CSV headers, JSON keys and DomainError messages.
const (
	FieldName                   = "name"
	FieldTargetPct              = "target_pct"
	FieldRealizedPct            = "realized_pct"
	FieldEffectivenessPct       = "effectiveness_pct"
	FieldComplexityPct          = "complexity_pct"
	FieldContributionPct        = "contribution_pct"
	FieldProcedureCompliancePct = "procedure_compliance_pct"
	FieldDisciplinePct          = "discipline_pct"
	FieldTargetWeeks            = "target_weeks"
	FieldRealizedWeeks          = "realized_weeks"
	FieldEOR                    = "eor"
	FieldDelayImpactPct         = "delay_impact_pct"
	FieldIKK                    = "ikk"
	FieldKE                     = "ke"
	FieldIssues                 = "issues"
	FieldRank                   = "rank"
	FieldLabel                  = "label"
	FieldVariant                = "variant"
)

// Prediction defaults taken from the dashboard model.
const (
	DefaultPolyDegree  = 3
	DefaultRidgeLambda = 0.1
)

// VariantParams holds the constants of one EOR formula variant.
type VariantParams struct {
	Alpha          float64 // Exponent applied to the realization product
	Beta           float64 // Exponent applied to the realized duration
	UsesDiscipline bool    // Whether discipline_pct joins the realization product
	LogField       string  // Field whose log penalizes the score
}

// ValidVariants lists all valid formula variants.
var ValidVariants = map[FormulaVariant]struct{}{
	V1Simple:         {},
	V2WithDiscipline: {},
}

// ValidFeatureSets lists all valid feature sets.
var ValidFeatureSets = map[FeatureSet]struct{}{
	FullFeatures:  {},
	BasicFeatures: {},
}

// ValidRankMetrics lists all valid ranking metrics.
var ValidRankMetrics = map[RankMetric]struct{}{
	RankByEOR: {},
	RankByIKK: {},
	RankByKE:  {},
	RankByDK:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
	XLSXOut:    {},
}

// ValidProjectionSources lists all valid projection sources.
var ValidProjectionSources = map[ProjectionSource]struct{}{
	ChapterSource: {},
	RCASource:     {},
}

// GetVariantParams returns the EOR constants of a formula variant.
func GetVariantParams(v FormulaVariant) VariantParams {
	switch v {
	case V1Simple:
		return VariantParams{Alpha: 1.2, Beta: 1.5, UsesDiscipline: false, LogField: FieldTargetPct}
	default: // V2WithDiscipline
		return VariantParams{Alpha: 1.3, Beta: 1.7, UsesDiscipline: true, LogField: FieldComplexityPct}
	}
}

// DefaultFeatureSet returns the predictor columns that pair with a formula variant.
func DefaultFeatureSet(v FormulaVariant) FeatureSet {
	if v == V1Simple {
		return BasicFeatures
	}
	return FullFeatures
}

// Columns returns the ordered predictor columns of the feature set.
func (fs FeatureSet) Columns() []FeatureKey {
	if fs == BasicFeatures {
		return []FeatureKey{FeatureTarget, FeatureRealized, FeatureEffectiveness}
	}
	return []FeatureKey{FeatureTarget, FeatureRealized, FeatureEffectiveness, FeatureComplexity, FeatureDiscipline}
}

// GetDefaultIKKWeights returns the default weights of the IKK composite index.
func GetDefaultIKKWeights() map[WeightKey]float64 {
	return map[WeightKey]float64{
		WeightRealized:      0.4,
		WeightEffectiveness: 0.3,
		WeightProcedure:     0.2,
		WeightContribution:  0.1,
	}
}

// AllWeightKeys returns the IKK weight keys in display order.
var AllWeightKeys = []WeightKey{WeightRealized, WeightEffectiveness, WeightProcedure, WeightContribution}

// DefaultProjectionColumns are the chapter fields used for the 2-D projection.
var DefaultProjectionColumns = []string{
	FieldRealizedPct,
	FieldEffectivenessPct,
	FieldComplexityPct,
	FieldContributionPct,
	FieldProcedureCompliancePct,
	FieldDisciplinePct,
	FieldEOR,
}

// RCA factor fields used for the 2-D projection of the factor table.
const (
	FieldCI           = "ci"
	FieldCV           = "cv"
	FieldIC           = "ic"
	FieldTimePeriod   = "time_period"
	FieldContribution = "contribution"
)

// RCAProjectionColumns are the factor fields used for the 2-D projection.
var RCAProjectionColumns = []string{FieldCI, FieldCV, FieldIC, FieldTimePeriod, FieldContribution}

// ChapterInputFields are the raw chapter columns, in table order.
var ChapterInputFields = []string{
	FieldName,
	FieldTargetPct,
	FieldRealizedPct,
	FieldEffectivenessPct,
	FieldComplexityPct,
	FieldContributionPct,
	FieldProcedureCompliancePct,
	FieldDisciplinePct,
	FieldTargetWeeks,
	FieldRealizedWeeks,
}

// ChapterDerivedFields are the derived chapter columns, in table order.
var ChapterDerivedFields = []string{FieldEOR, FieldDelayImpactPct, FieldIKK, FieldKE}
