package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/schema"
)

// getDisplayNameForFormula returns the display name with emoji for a given formula name.
func getDisplayNameForFormula(name string) string {
	switch name {
	case schema.FieldEOR:
		return "⚙️  EOR"
	case "dk":
		return "⏳ DK"
	case schema.FieldIKK:
		return "📊 IKK"
	case schema.FieldKE:
		return "🎯 KE"
	case "rca":
		return "🔎 RCA"
	case "eia":
		return "💡 EIA"
	default:
		return strings.ToUpper(name)
	}
}

// formatIKKWeights renders the IKK weighted sum with the active weights.
func formatIKKWeights(weights map[schema.WeightKey]float64) string {
	terms := map[schema.WeightKey]string{
		schema.WeightRealized:      schema.FieldRealizedPct,
		schema.WeightEffectiveness: schema.FieldEffectivenessPct,
		schema.WeightProcedure:     schema.FieldProcedureCompliancePct,
		schema.WeightContribution:  schema.FieldContributionPct,
	}
	var parts []string
	for _, key := range schema.AllWeightKeys {
		if w, ok := weights[key]; ok && w > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", w, terms[key]))
		}
	}
	return strings.Join(parts, " + ")
}

// formatEOR renders the EOR formula of a variant with its constants.
func formatEOR(p schema.VariantParams) string {
	product := "realized_pct*effectiveness_pct"
	if p.UsesDiscipline {
		product += "*discipline_pct"
	}
	logTerm := "ln(complexity_pct+1)"
	if p.LogField == schema.FieldTargetPct {
		logTerm = "ln(target_pct)"
	}
	return fmt.Sprintf("(%s)^%g / (realized_weeks^%g * %s)", product, p.Alpha, p.Beta, logTerm)
}

// buildFormulasRenderModel constructs the render model with the active weights and constants.
func buildFormulasRenderModel(cfg *contract.Config) *schema.FormulasRenderModel {
	weights := cfg.IKKWeights
	if weights == nil {
		weights = schema.GetDefaultIKKWeights()
	}
	vp := schema.GetVariantParams(cfg.Variant)
	rca := cfg.RCAParams()

	ikkParams := make(map[string]float64, len(weights))
	for k, v := range weights {
		ikkParams[string(k)] = v
	}

	return &schema.FormulasRenderModel{
		Title:       "Guidebook Program Metrics",
		Description: "Per-chapter metrics are recomputed from the raw inputs on every run",
		Variant:     cfg.Variant,
		Formulas: []schema.FormulaDefinition{
			{
				Name:    schema.FieldEOR,
				Title:   "Relative operational efficiency",
				Purpose: "Output per unit of realized time, penalized by " + strings.TrimSuffix(vp.LogField, "_pct"),
				Formula: formatEOR(vp),
				Params:  map[string]float64{"alpha": vp.Alpha, "beta": vp.Beta},
			},
			{
				Name:    "dk",
				Title:   "Delay impact",
				Purpose: "Schedule deviation as a percentage of the target duration",
				Formula: "|realized_weeks - target_weeks| / target_weeks * 100",
			},
			{
				Name:    schema.FieldIKK,
				Title:   "Composite performance index",
				Purpose: "Weighted sum of realization, effectiveness, compliance and contribution",
				Formula: formatIKKWeights(weights),
				Params:  ikkParams,
			},
			{
				Name:    schema.FieldKE,
				Title:   "Efficiency contribution",
				Purpose: "Share of EOR carried into the guidebook",
				Formula: "eor * contribution_pct / 100",
			},
			{
				Name:    "rca",
				Title:   "Root cause aggregate",
				Purpose: "Time-decayed contribution of each factor, scaled by the process multipliers",
				Formula: "sum((pi + ln(1+ci*cv)/sqrt(ic)) * exp(-decay*t)) * cp*pd*sd*st*si*(mp+vf)",
				Params: map[string]float64{
					"pi": rca.PI, "decay": rca.Decay, "cp": rca.CP, "pd": rca.PD,
					"sd": rca.SD, "st": rca.ST, "si": rca.SI, "mp": rca.MP, "vf": rca.VF,
				},
			},
			{
				Name:    "eia",
				Title:   "Expected impact",
				Purpose: "Impact reduction per unit cost, weighted by priority",
				Formula: "impact_reduction / cost * priority_weight",
			},
		},
	}
}

// PrintFormulaDefinitions displays the formal definitions of every metric.
// This is a static display that does not score any chapter.
func PrintFormulaDefinitions(cfg *contract.Config) error {
	renderModel := buildFormulasRenderModel(cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFormulasCSV(w, renderModel)
		}, "Wrote CSV")
	case schema.XLSXOut:
		rows := make([][]any, len(renderModel.Formulas))
		for i, f := range renderModel.Formulas {
			rows[i] = []any{f.Name, f.Title, f.Purpose, f.Formula}
		}
		return writeXLSX(cfg.OutputFile, []sheet{{name: "Formulas", header: []string{"name", "title", "purpose", "formula"}, rows: rows}}, "Wrote XLSX")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for formulas")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFormulasText(w, renderModel)
		}, "Wrote text")
	}
}

func writeFormulasCSV(w io.Writer, renderModel *schema.FormulasRenderModel) error {
	return writeCSVWithHeader(w, []string{"name", "title", "purpose", "formula"}, func(cw *csv.Writer) error {
		for _, f := range renderModel.Formulas {
			if err := cw.Write([]string{f.Name, f.Title, f.Purpose, f.Formula}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func writeFormulasText(w io.Writer, renderModel *schema.FormulasRenderModel) error {
	title := fmt.Sprintf("📘 %s (variant %s)", renderModel.Title, renderModel.Variant)
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n%s\n\n", title, strings.Repeat("=", len([]rune(title))), renderModel.Description); err != nil {
		return err
	}
	for _, f := range renderModel.Formulas {
		if _, err := fmt.Fprintf(w, "%s: %s\n", getDisplayNameForFormula(f.Name), f.Title); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Purpose: %s\n", f.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Formula: %s\n\n", f.Formula); err != nil {
			return err
		}
	}
	return nil
}
