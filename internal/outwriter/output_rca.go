package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/internal/parquet"
	"github.com/huangsam/babscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var (
	factorHeader = []string{
		schema.FieldLabel,
		schema.FieldCI,
		schema.FieldCV,
		schema.FieldIC,
		schema.FieldTimePeriod,
		"base",
		"decay_weight",
		schema.FieldContribution,
	}
	solutionHeader = []string{schema.FieldRank, schema.FieldName, "impact_reduction", "cost", "priority_weight", "eia"}
)

// rcaOutput is the JSON document of the RCA command.
type rcaOutput struct {
	RCA       schema.RCAResult   `json:"rca"`
	Solutions []schema.EIAResult `json:"solutions"`
}

// WriteRCAResult outputs the RCA breakdown and ranked solutions, dispatching based on the output format configured.
// CSV and Parquet carry the factor table only.
func WriteRCAResult(result schema.RCAResult, solutions []schema.EIAResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rcaOutput{RCA: result, Solutions: solutions})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFactorCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.XLSXOut:
		return writeXLSX(cfg.OutputFile, rcaSheets(result, solutions), "Wrote XLSX")
	case schema.ParquetOut:
		if err := parquet.WriteFactorsParquet(result, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		logWrote("Wrote Parquet", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRCAText(w, result, solutions, fmtFloat)
		}, "Wrote text")
	}
}

func writeFactorCSV(w io.Writer, result schema.RCAResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, factorHeader, func(cw *csv.Writer) error {
		for _, c := range result.Contributions {
			rec := []string{
				c.Label,
				formatExact(c.CI),
				formatExact(c.CV),
				formatExact(c.IC),
				formatExact(c.TimePeriod),
				fmtFloat(c.Base),
				fmtFloat(c.DecayWeight),
				fmtFloat(c.Contribution),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func rcaSheets(result schema.RCAResult, solutions []schema.EIAResult) []sheet {
	factors := make([][]any, len(result.Contributions))
	for i, c := range result.Contributions {
		factors[i] = []any{c.Label, c.CI, c.CV, c.IC, c.TimePeriod, c.Base, c.DecayWeight, c.Contribution}
	}
	ranked := make([][]any, len(solutions))
	for i, s := range solutions {
		ranked[i] = []any{i + 1, s.Name, s.ImpactReduction, s.Cost, s.PriorityWeight, s.EIA}
	}
	summary := [][]any{
		{"sum", result.Sum},
		{"multiplier", result.Multiplier},
		{"rca", result.Aggregate},
	}
	return []sheet{
		{name: "Factors", header: factorHeader, rows: factors},
		{name: "Solutions", header: solutionHeader, rows: ranked},
		{name: "Summary", header: []string{"measure", "value"}, rows: summary},
	}
}

func writeRCAText(w io.Writer, result schema.RCAResult, solutions []schema.EIAResult, fmtFloat func(float64) string) error {
	factors := tablewriter.NewWriter(w)
	factors.Header([]string{"Factor", "CI", "CV", "IC", "T", "Base", "Decay W", "Contribution"})
	factors.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, c := range result.Contributions {
		data = append(data, []string{
			c.Label,
			formatExact(c.CI),
			formatExact(c.CV),
			formatExact(c.IC),
			formatExact(c.TimePeriod),
			fmtFloat(c.Base),
			fmtFloat(c.DecayWeight),
			fmtFloat(c.Contribution),
		})
	}
	if err := factors.Bulk(data); err != nil {
		return err
	}
	if err := factors.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Σ contributions %s × multiplier %s\n", fmtFloat(result.Sum), fmtFloat(result.Multiplier)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "🔎 RCA = %s\n\n", fmtFloat(result.Aggregate)); err != nil {
		return err
	}

	ranked := tablewriter.NewWriter(w)
	ranked.Header([]string{"Rank", "Solution", "Impact", "Cost", "Priority", "EIA"})
	ranked.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data = nil
	for i, s := range solutions {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Name,
			formatExact(s.ImpactReduction),
			formatExact(s.Cost),
			formatExact(s.PriorityWeight),
			fmtFloat(s.EIA),
		})
	}
	if err := ranked.Bulk(data); err != nil {
		return err
	}
	return ranked.Render()
}
