// Package schema has models, constants and reference datasets for all parts of babscore.
package schema

import (
	"fmt"
	"math"
	"strings"
)

// ChapterRecord represents the raw progress inputs for a single guidebook chapter (Bab).
// Percentages are nominally in [0,100] and durations are measured in weeks.
type ChapterRecord struct {
	Name                   string  `json:"name"`                     // Chapter identifier, unique within a run
	TargetPct              float64 `json:"target_pct"`               // Planned completion target
	RealizedPct            float64 `json:"realized_pct"`             // Realized completion
	EffectivenessPct       float64 `json:"effectiveness_pct"`        // Effectiveness of the delivered work
	ComplexityPct          float64 `json:"complexity_pct"`           // Perceived chapter complexity
	ContributionPct        float64 `json:"contribution_pct"`         // Share of the guidebook carried by this chapter
	ProcedureCompliancePct float64 `json:"procedure_compliance_pct"` // Adherence to the writing procedure
	DisciplinePct          float64 `json:"discipline_pct"`           // Team discipline on the chapter
	TargetWeeks            float64 `json:"target_weeks"`             // Planned duration
	RealizedWeeks          float64 `json:"realized_weeks"`           // Realized duration
}

// ChapterResult is a ChapterRecord enriched with the derived metrics.
// Optional metrics are nil when their formula could not be evaluated for the row;
// the reason is kept in Issues.
type ChapterResult struct {
	ChapterRecord
	Variant        FormulaVariant `json:"variant"`
	EOR            *float64       `json:"eor"`
	DelayImpactPct *float64       `json:"delay_impact_pct"`
	IKK            *float64       `json:"ikk"`
	KE             *float64       `json:"ke"`
	Issues         []error        `json:"-"`
}

// OK reports whether every derived metric was computed.
func (r ChapterResult) OK() bool {
	return len(r.Issues) == 0
}

// IssueStrings returns the per-row issues as plain strings.
func (r ChapterResult) IssueStrings() []string {
	out := make([]string, 0, len(r.Issues))
	for _, err := range r.Issues {
		out = append(out, err.Error())
	}
	return out
}

// IssueText joins the per-row issues for single-cell outputs.
func (r ChapterResult) IssueText() string {
	return strings.Join(r.IssueStrings(), "; ")
}

// MetricValue returns the value of a derived metric, and false if it is undefined.
func (r ChapterResult) MetricValue(m RankMetric) (float64, bool) {
	switch m {
	case RankByIKK:
		return deref(r.IKK)
	case RankByKE:
		return deref(r.KE)
	case RankByDK:
		return deref(r.DelayImpactPct)
	default:
		return deref(r.EOR)
	}
}

// FieldValue returns the numeric value of an input or derived field by its name,
// and false if the field is unknown or undefined for this row.
func (r ChapterResult) FieldValue(name string) (float64, bool) {
	switch name {
	case FieldEOR:
		return deref(r.EOR)
	case FieldDelayImpactPct:
		return deref(r.DelayImpactPct)
	case FieldIKK:
		return deref(r.IKK)
	case FieldKE:
		return deref(r.KE)
	}
	for _, f := range r.numericFields() {
		if f.name == name {
			return f.value, true
		}
	}
	return 0, false
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

// FeatureVector holds the slider-style inputs used for duration prediction.
type FeatureVector struct {
	Target        float64 `json:"target_pct"`
	Realized      float64 `json:"realized_pct"`
	Effectiveness float64 `json:"effectiveness_pct"`
	Complexity    float64 `json:"complexity_pct"`
	Discipline    float64 `json:"discipline_pct"`
}

// FeatureVectorOf extracts the prediction features of a chapter.
func FeatureVectorOf(rec ChapterRecord) FeatureVector {
	return FeatureVector{
		Target:        rec.TargetPct,
		Realized:      rec.RealizedPct,
		Effectiveness: rec.EffectivenessPct,
		Complexity:    rec.ComplexityPct,
		Discipline:    rec.DisciplinePct,
	}
}

// Values returns the vector restricted to the columns of the feature set, in column order.
func (v FeatureVector) Values(fs FeatureSet) []float64 {
	cols := fs.Columns()
	out := make([]float64, len(cols))
	for i, c := range cols {
		switch c {
		case FeatureTarget:
			out[i] = v.Target
		case FeatureRealized:
			out[i] = v.Realized
		case FeatureEffectiveness:
			out[i] = v.Effectiveness
		case FeatureComplexity:
			out[i] = v.Complexity
		case FeatureDiscipline:
			out[i] = v.Discipline
		}
	}
	return out
}

// NewChapterRecord validates the raw fields and returns a ChapterRecord.
// Only structural problems are rejected here; formula domains are checked per metric.
func NewChapterRecord(name string, targetPct, realizedPct, effectivenessPct, complexityPct, contributionPct, procedurePct, disciplinePct, targetWeeks, realizedWeeks float64) (ChapterRecord, error) {
	rec := ChapterRecord{
		Name:                   strings.TrimSpace(name),
		TargetPct:              targetPct,
		RealizedPct:            realizedPct,
		EffectivenessPct:       effectivenessPct,
		ComplexityPct:          complexityPct,
		ContributionPct:        contributionPct,
		ProcedureCompliancePct: procedurePct,
		DisciplinePct:          disciplinePct,
		TargetWeeks:            targetWeeks,
		RealizedWeeks:          realizedWeeks,
	}
	if err := rec.Validate(); err != nil {
		return ChapterRecord{}, err
	}
	return rec, nil
}

// Validate checks that the record has a name and only finite numeric fields.
func (rec ChapterRecord) Validate() error {
	if strings.TrimSpace(rec.Name) == "" {
		return fmt.Errorf("chapter name cannot be empty")
	}
	for _, f := range rec.numericFields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &DomainError{Row: rec.Name, Field: f.name, Value: f.value, Reason: "must be a finite number"}
		}
	}
	return nil
}

type namedValue struct {
	name  string
	value float64
}

func (rec ChapterRecord) numericFields() []namedValue {
	return []namedValue{
		{FieldTargetPct, rec.TargetPct},
		{FieldRealizedPct, rec.RealizedPct},
		{FieldEffectivenessPct, rec.EffectivenessPct},
		{FieldComplexityPct, rec.ComplexityPct},
		{FieldContributionPct, rec.ContributionPct},
		{FieldProcedureCompliancePct, rec.ProcedureCompliancePct},
		{FieldDisciplinePct, rec.DisciplinePct},
		{FieldTargetWeeks, rec.TargetWeeks},
		{FieldRealizedWeeks, rec.RealizedWeeks},
	}
}

// ValidateChapters validates every record and enforces unique names within the set.
func ValidateChapters(records []ChapterRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("no chapter records provided")
	}
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if _, dup := seen[rec.Name]; dup {
			return fmt.Errorf("row %d: duplicate chapter name %q", i+1, rec.Name)
		}
		seen[rec.Name] = struct{}{}
	}
	return nil
}
