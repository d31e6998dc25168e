package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/internal/parquet"
	"github.com/huangsam/babscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// ChapterCSVHeader returns the columns of an exported chapter table.
// The raw inputs come first so the table can be parsed back and re-scored.
func ChapterCSVHeader() []string {
	header := []string{schema.FieldRank}
	header = append(header, schema.ChapterInputFields...)
	header = append(header, schema.FieldVariant)
	header = append(header, schema.ChapterDerivedFields...)
	return append(header, schema.FieldLabel, schema.FieldIssues)
}

// WriteChapterResults outputs scored chapters, dispatching based on the output format configured.
func WriteChapterResults(results []schema.ChapterResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichChapters(results))
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteChapterCSV(w, results, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.XLSXOut:
		if err := writeXLSX(cfg.OutputFile, []sheet{chapterSheet(results)}, "Wrote XLSX"); err != nil {
			return fmt.Errorf("error writing XLSX output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteChaptersParquet(results, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		logWrote("Wrote Parquet", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeChapterTable(w, results, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
	return nil
}

// WriteChapterCSV writes scored chapters as CSV. Undefined metrics are left empty.
func WriteChapterCSV(w io.Writer, results []schema.ChapterResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, ChapterCSVHeader(), func(cw *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.Name,
				formatExact(r.TargetPct),
				formatExact(r.RealizedPct),
				formatExact(r.EffectivenessPct),
				formatExact(r.ComplexityPct),
				formatExact(r.ContributionPct),
				formatExact(r.ProcedureCompliancePct),
				formatExact(r.DisciplinePct),
				formatExact(r.TargetWeeks),
				formatExact(r.RealizedWeeks),
				string(r.Variant),
				formatOptional(r.EOR, fmtFloat, ""),
				formatOptional(r.DelayImpactPct, fmtFloat, ""),
				formatOptional(r.IKK, fmtFloat, ""),
				formatOptional(r.KE, fmtFloat, ""),
				schema.GetResultLabel(r.IKK),
				r.IssueText(),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

// chapterSheet builds the XLSX sheet of scored chapters with numeric cells.
func chapterSheet(results []schema.ChapterResult) sheet {
	rows := make([][]any, len(results))
	for i, r := range results {
		rows[i] = []any{
			i + 1,
			r.Name,
			r.TargetPct,
			r.RealizedPct,
			r.EffectivenessPct,
			r.ComplexityPct,
			r.ContributionPct,
			r.ProcedureCompliancePct,
			r.DisciplinePct,
			r.TargetWeeks,
			r.RealizedWeeks,
			string(r.Variant),
			optionalCell(r.EOR),
			optionalCell(r.DelayImpactPct),
			optionalCell(r.IKK),
			optionalCell(r.KE),
			schema.GetResultLabel(r.IKK),
			r.IssueText(),
		}
	}
	return sheet{name: "Chapters", header: ChapterCSVHeader(), rows: rows}
}

// writeChapterTable generates and writes the human-readable table.
func writeChapterTable(w io.Writer, results []schema.ChapterResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	invalid := 0
	for _, r := range results {
		if !r.OK() {
			invalid++
		}
	}

	table := tablewriter.NewWriter(w)
	headers := []string{"Rank", "Chapter", "EOR", "DK %", "IKK", "KE", "Label"}
	if invalid > 0 {
		headers = append(headers, "Issues")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg, invalid > 0)
	var data [][]string
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.Name, nameWidth),
			formatOptional(r.EOR, fmtFloat, undefinedCell),
			formatOptional(r.DelayImpactPct, fmtFloat, undefinedCell),
			formatOptional(r.IKK, fmtFloat, undefinedCell),
			formatOptional(r.KE, fmtFloat, undefinedCell),
			contract.GetResultColorLabel(r.IKK),
		}
		if invalid > 0 {
			row = append(row, r.IssueText())
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d chapters ranked by %s (variant %s, %d with issues)\n",
		len(results), cfg.RankBy, cfg.Variant, invalid); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scored in %v\n", duration); err != nil {
		return err
	}
	return nil
}
