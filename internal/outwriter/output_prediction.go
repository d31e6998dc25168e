package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/schema"
)

var predictionHeader = []string{
	schema.FieldTargetPct,
	schema.FieldRealizedPct,
	schema.FieldEffectivenessPct,
	schema.FieldComplexityPct,
	schema.FieldDisciplinePct,
	"feature_set",
	"degree",
	"lambda",
	"training_rows",
	"terms",
	"predicted_weeks",
}

// WritePredictionResult outputs a prediction, dispatching based on the output format configured.
func WritePredictionResult(result schema.PredictionResult, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, predictionHeader, func(cw *csv.Writer) error {
				return cw.Write(predictionRecord(result, fmtFloat))
			})
		}, "Wrote CSV")
	case schema.XLSXOut:
		in := result.Inputs
		row := []any{in.Target, in.Realized, in.Effectiveness, in.Complexity, in.Discipline,
			string(result.FeatureSet), result.Degree, result.Lambda, result.TrainingRows, result.Terms, result.PredictedWeeks}
		return writeXLSX(cfg.OutputFile, []sheet{{name: "Prediction", header: predictionHeader, rows: [][]any{row}}}, "Wrote XLSX")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for predictions")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePredictionText(w, result, fmtFloat, intFmt)
		}, "Wrote text")
	}
}

func predictionRecord(result schema.PredictionResult, fmtFloat func(float64) string) []string {
	in := result.Inputs
	return []string{
		formatExact(in.Target),
		formatExact(in.Realized),
		formatExact(in.Effectiveness),
		formatExact(in.Complexity),
		formatExact(in.Discipline),
		string(result.FeatureSet),
		strconv.Itoa(result.Degree),
		formatExact(result.Lambda),
		strconv.Itoa(result.TrainingRows),
		strconv.Itoa(result.Terms),
		fmtFloat(result.PredictedWeeks),
	}
}

// writePredictionText echoes the inputs and prints the predicted duration.
func writePredictionText(w io.Writer, result schema.PredictionResult, fmtFloat func(float64) string, intFmt string) error {
	in := result.Inputs
	lines := []struct {
		label string
		value float64
		used  bool
	}{
		{"Target", in.Target, true},
		{"Realized", in.Realized, true},
		{"Effectiveness", in.Effectiveness, true},
		{"Complexity", in.Complexity, result.FeatureSet == schema.FullFeatures},
		{"Discipline", in.Discipline, result.FeatureSet == schema.FullFeatures},
	}

	if _, err := fmt.Fprintf(w, "📝 Inputs (%s feature set)\n", result.FeatureSet); err != nil {
		return err
	}
	for _, l := range lines {
		if !l.used {
			continue
		}
		if _, err := fmt.Fprintf(w, "   %-14s %s%%\n", l.label+":", formatExact(l.value)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\n⏱️  Predicted completion: %s weeks\n", fmtFloat(result.PredictedWeeks)); err != nil {
		return err
	}
	modelLine := "   Ridge on degree-" + intFmt + " polynomial, lambda %s, " + intFmt + " terms, " + intFmt + " training rows\n"
	if _, err := fmt.Fprintf(w, modelLine, result.Degree, formatExact(result.Lambda), result.Terms, result.TrainingRows); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "   Interpolation over the reference chapters, not a validated forecast"); err != nil {
		return err
	}
	return nil
}
