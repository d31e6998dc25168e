package schema

// ReferenceChapters returns the five reference chapters of the guidebook program.
// A fresh slice is returned on every call so callers may not share state.
func ReferenceChapters() []ChapterRecord {
	return []ChapterRecord{
		{Name: "Pendahuluan", TargetPct: 100, RealizedPct: 100, EffectivenessPct: 90, TargetWeeks: 2, RealizedWeeks: 2, ComplexityPct: 70, ContributionPct: 20, ProcedureCompliancePct: 95, DisciplinePct: 98},
		{Name: "Pemeriksaan Dewasa", TargetPct: 100, RealizedPct: 95, EffectivenessPct: 85, TargetWeeks: 4, RealizedWeeks: 5, ComplexityPct: 80, ContributionPct: 25, ProcedureCompliancePct: 90, DisciplinePct: 93},
		{Name: "Manajemen Farmasi", TargetPct: 100, RealizedPct: 90, EffectivenessPct: 80, TargetWeeks: 3, RealizedWeeks: 4, ComplexityPct: 85, ContributionPct: 30, ProcedureCompliancePct: 85, DisciplinePct: 85},
		{Name: "Alur Pengobatan", TargetPct: 100, RealizedPct: 85, EffectivenessPct: 75, TargetWeeks: 3, RealizedWeeks: 5, ComplexityPct: 90, ContributionPct: 15, ProcedureCompliancePct: 80, DisciplinePct: 78},
		{Name: "Penutup", TargetPct: 100, RealizedPct: 100, EffectivenessPct: 90, TargetWeeks: 2, RealizedWeeks: 2, ComplexityPct: 75, ContributionPct: 10, ProcedureCompliancePct: 100, DisciplinePct: 96},
	}
}

// ReferenceRCAParams returns the synthetic root cause analysis dataset.
// Each index describes one contributing factor observed at a time period.
func ReferenceRCAParams() RCAParams {
	return RCAParams{
		CP:          1.10, // procedure compliance multiplier
		PD:          0.90, // process discipline multiplier
		SD:          1.05, // schedule deviation multiplier
		ST:          0.95, // staffing multiplier
		SI:          1.00, // stakeholder involvement multiplier
		MP:          0.60, // management pressure
		VF:          0.40, // variability factor
		PI:          1.00,
		Decay:       0.10,
		Labels:      []string{"Review Tertunda", "Data Tidak Lengkap", "Revisi Berulang", "Koordinasi Lemah", "Beban Kerja"},
		CI:          []float64{0.8, 0.6, 0.7, 0.5, 0.9},
		CV:          []float64{0.7, 0.5, 0.6, 0.4, 0.8},
		IC:          []float64{1.2, 0.9, 1.5, 1.1, 1.3},
		TimePeriods: []float64{1, 2, 3, 4, 5},
	}
}

// ReferenceSolutions returns the catalog of remediation candidates for expected impact analysis.
func ReferenceSolutions() []Solution {
	return []Solution{
		{Name: "Pelatihan Ulang Tim", ImpactReduction: 30, Cost: 10, PriorityWeight: 0.9},
		{Name: "Standardisasi SOP", ImpactReduction: 25, Cost: 5, PriorityWeight: 0.8},
		{Name: "Penambahan Reviewer", ImpactReduction: 20, Cost: 8, PriorityWeight: 0.7},
		{Name: "Penjadwalan Ulang Milestone", ImpactReduction: 15, Cost: 3, PriorityWeight: 0.6},
	}
}
