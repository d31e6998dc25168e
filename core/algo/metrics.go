// Package algo holds the pure per-chapter formulas, the RCA engine and ranking helpers.
package algo

import (
	"math"

	"github.com/huangsam/babscore/schema"
)

// ComputeEOR calculates the relative operational efficiency of a chapter.
//
//	EOR = (realized * effectiveness [* discipline])^alpha / (realized_weeks^beta * ln(x))
//
// where x is complexity_pct+1 for V2WithDiscipline and target_pct for V1Simple.
// The log term must be strictly positive, so complexity_pct must be > 0 (v2)
// and target_pct must be > 1 (v1).
func ComputeEOR(rec schema.ChapterRecord, variant schema.FormulaVariant) (float64, error) {
	p := schema.GetVariantParams(variant)

	type factor struct {
		field string
		value float64
	}
	factors := []factor{
		{schema.FieldRealizedPct, rec.RealizedPct},
		{schema.FieldEffectivenessPct, rec.EffectivenessPct},
	}
	if p.UsesDiscipline {
		factors = append(factors, factor{schema.FieldDisciplinePct, rec.DisciplinePct})
	}

	product := 1.0
	for _, f := range factors {
		if !(f.value >= 0) {
			return 0, domainErr(rec.Name, f.field, f.value, "must be >= 0")
		}
		product *= f.value
	}

	if !(rec.RealizedWeeks > 0) {
		return 0, domainErr(rec.Name, schema.FieldRealizedWeeks, rec.RealizedWeeks, "must be > 0")
	}

	var logTerm float64
	switch p.LogField {
	case schema.FieldTargetPct:
		if !(rec.TargetPct > 1) {
			return 0, domainErr(rec.Name, schema.FieldTargetPct, rec.TargetPct, "must be > 1 for ln(target_pct)")
		}
		logTerm = math.Log(rec.TargetPct)
	default:
		if !(rec.ComplexityPct > 0) {
			return 0, domainErr(rec.Name, schema.FieldComplexityPct, rec.ComplexityPct, "must be > 0 for ln(complexity_pct+1)")
		}
		logTerm = math.Log(rec.ComplexityPct + 1)
	}

	eor := math.Pow(product, p.Alpha) / (math.Pow(rec.RealizedWeeks, p.Beta) * logTerm)
	if math.IsNaN(eor) || math.IsInf(eor, 0) {
		return 0, domainErr(rec.Name, schema.FieldEOR, eor, "is not representable")
	}
	return eor, nil
}

// ComputeDK calculates the delay impact as a percentage of the target duration.
func ComputeDK(realizedWeeks, targetWeeks float64) (float64, error) {
	if !(targetWeeks > 0) {
		return 0, domainErr("", schema.FieldTargetWeeks, targetWeeks, "must be > 0")
	}
	return math.Abs(realizedWeeks-targetWeeks) / targetWeeks * 100, nil
}

// ComputeIKK calculates the composite performance index as a weighted sum.
// A nil weights map falls back to the default weights.
func ComputeIKK(rec schema.ChapterRecord, weights map[schema.WeightKey]float64) float64 {
	if weights == nil {
		weights = schema.GetDefaultIKKWeights()
	}
	return weights[schema.WeightRealized]*rec.RealizedPct +
		weights[schema.WeightEffectiveness]*rec.EffectivenessPct +
		weights[schema.WeightProcedure]*rec.ProcedureCompliancePct +
		weights[schema.WeightContribution]*rec.ContributionPct
}

// ComputeKE scales an EOR value by the contribution of the chapter.
func ComputeKE(eor, contributionPct float64) float64 {
	return eor * contributionPct / 100
}

// ScoreChapter derives every metric for a single record. Formula failures are
// kept as issues on the result and leave the affected metrics nil. An invalid
// record leaves every derived metric nil, IKK included.
func ScoreChapter(rec schema.ChapterRecord, variant schema.FormulaVariant, weights map[schema.WeightKey]float64) schema.ChapterResult {
	result := schema.ChapterResult{ChapterRecord: rec, Variant: variant}

	if err := rec.Validate(); err != nil {
		result.Issues = append(result.Issues, err)
		return result
	}

	ikk := ComputeIKK(rec, weights)
	result.IKK = &ikk

	if eor, err := ComputeEOR(rec, variant); err != nil {
		result.Issues = append(result.Issues, err)
	} else {
		ke := ComputeKE(eor, rec.ContributionPct)
		result.EOR = &eor
		result.KE = &ke
	}

	if dk, err := ComputeDK(rec.RealizedWeeks, rec.TargetWeeks); err != nil {
		result.Issues = append(result.Issues, withRow(err, rec.Name))
	} else {
		result.DelayImpactPct = &dk
	}

	return result
}

// ScoreChapters scores every record independently and returns a new result slice
// in input order. The input records are not modified.
func ScoreChapters(records []schema.ChapterRecord, variant schema.FormulaVariant, weights map[schema.WeightKey]float64) []schema.ChapterResult {
	results := make([]schema.ChapterResult, len(records))
	for i, rec := range records {
		results[i] = ScoreChapter(rec, variant, weights)
	}
	return results
}

func domainErr(row, field string, value float64, reason string) error {
	return &schema.DomainError{Row: row, Field: field, Value: value, Reason: reason}
}

func withRow(err error, row string) error {
	if de, ok := err.(*schema.DomainError); ok && de.Row == "" {
		clone := *de
		clone.Row = row
		return &clone
	}
	return err
}
