package algo

import (
	"math"
	"testing"

	"github.com/huangsam/babscore/schema"
)

// FuzzComputeEOR checks that EOR is either rejected or finite and non-negative.
func FuzzComputeEOR(f *testing.F) {
	for _, rec := range schema.ReferenceChapters() {
		f.Add(rec.TargetPct, rec.RealizedPct, rec.EffectivenessPct, rec.ComplexityPct,
			rec.DisciplinePct, rec.TargetWeeks, rec.RealizedWeeks, true)
	}
	f.Add(0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, false)
	f.Add(1.0, 100.0, 100.0, -0.5, 100.0, 1.0, 1e-9, true)

	f.Fuzz(func(t *testing.T, target, realized, eff, complexity, discipline, targetWeeks, realizedWeeks float64, v2 bool) {
		rec := schema.ChapterRecord{
			Name:             "fuzz",
			TargetPct:        target,
			RealizedPct:      realized,
			EffectivenessPct: eff,
			ComplexityPct:    complexity,
			DisciplinePct:    discipline,
			TargetWeeks:      targetWeeks,
			RealizedWeeks:    realizedWeeks,
		}
		variant := schema.V1Simple
		if v2 {
			variant = schema.V2WithDiscipline
		}

		eor, err := ComputeEOR(rec, variant)
		if err != nil {
			return
		}
		if math.IsNaN(eor) || math.IsInf(eor, 0) || eor < 0 {
			t.Errorf("ComputeEOR returned %v for %+v", eor, rec)
		}

		result := ScoreChapter(rec, variant, nil)
		if result.EOR == nil && len(result.Issues) == 0 {
			t.Errorf("ScoreChapter dropped EOR without an issue for %+v", rec)
		}
	})
}
