package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/internal/parquet"
	"github.com/huangsam/babscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var projectionHeader = []string{schema.FieldName, "pc1", "pc2"}

// WriteProjectionResult outputs a projection, dispatching based on the output format configured.
func WriteProjectionResult(proj schema.Projection, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, proj)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectionCSV(w, proj, fmtFloat)
		}, "Wrote CSV")
	case schema.XLSXOut:
		return writeXLSX(cfg.OutputFile, projectionSheets(proj), "Wrote XLSX")
	case schema.ParquetOut:
		if err := parquet.WriteProjectionParquet(proj, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		logWrote("Wrote Parquet", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectionText(w, proj, fmtFloat)
		}, "Wrote text")
	}
}

func writeProjectionCSV(w io.Writer, proj schema.Projection, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, projectionHeader, func(cw *csv.Writer) error {
		for _, p := range proj.Points {
			if err := cw.Write([]string{p.Name, fmtFloat(p.PC1), fmtFloat(p.PC2)}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func projectionSheets(proj schema.Projection) []sheet {
	points := make([][]any, len(proj.Points))
	for i, p := range proj.Points {
		points[i] = []any{p.Name, p.PC1, p.PC2}
	}
	loadings := make([][]any, len(proj.Columns))
	for i, c := range proj.Columns {
		loadings[i] = []any{c, loadingAt(proj, 0, i), loadingAt(proj, 1, i)}
	}
	return []sheet{
		{name: "Points", header: projectionHeader, rows: points},
		{name: "Loadings", header: []string{"column", "pc1", "pc2"}, rows: loadings},
	}
}

func loadingAt(proj schema.Projection, component, column int) float64 {
	if column < len(proj.Loadings[component]) {
		return proj.Loadings[component][column]
	}
	return 0
}

func writeProjectionText(w io.Writer, proj schema.Projection, fmtFloat func(float64) string) error {
	points := tablewriter.NewWriter(w)
	points.Header([]string{"Name", "PC1", "PC2"})
	points.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, p := range proj.Points {
		data = append(data, []string{p.Name, fmtFloat(p.PC1), fmtFloat(p.PC2)})
	}
	if err := points.Bulk(data); err != nil {
		return err
	}
	if err := points.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Explained variance: PC1 %s, PC2 %s (source %s)\n",
		fmtFloat(proj.ExplainedVarianceRatio[0]), fmtFloat(proj.ExplainedVarianceRatio[1]), proj.Source); err != nil {
		return err
	}
	if len(proj.Skipped) > 0 {
		if _, err := fmt.Fprintf(w, "⚠️  Skipped rows with undefined values: %s\n", strings.Join(proj.Skipped, ", ")); err != nil {
			return err
		}
	}

	loadings := tablewriter.NewWriter(w)
	loadings.Header([]string{"Column", "PC1", "PC2"})
	loadings.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data = nil
	for i, c := range proj.Columns {
		data = append(data, []string{c, fmtFloat(loadingAt(proj, 0, i)), fmtFloat(loadingAt(proj, 1, i))})
	}
	if err := loadings.Bulk(data); err != nil {
		return err
	}
	return loadings.Render()
}
