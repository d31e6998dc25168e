// Package parquet provides data structures and functions for exporting babscore
// tables to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/babscore/schema"
	"github.com/parquet-go/parquet-go"
)

// ChapterRow represents one scored chapter.
// Derived metrics are nullable since a formula may be undefined for the row.
type ChapterRow struct {
	Name                   string   `parquet:"name,snappy"`
	Variant                string   `parquet:"variant,snappy"`
	TargetPct              float64  `parquet:"target_pct,snappy"`
	RealizedPct            float64  `parquet:"realized_pct,snappy"`
	EffectivenessPct       float64  `parquet:"effectiveness_pct,snappy"`
	ComplexityPct          float64  `parquet:"complexity_pct,snappy"`
	ContributionPct        float64  `parquet:"contribution_pct,snappy"`
	ProcedureCompliancePct float64  `parquet:"procedure_compliance_pct,snappy"`
	DisciplinePct          float64  `parquet:"discipline_pct,snappy"`
	TargetWeeks            float64  `parquet:"target_weeks,snappy"`
	RealizedWeeks          float64  `parquet:"realized_weeks,snappy"`
	EOR                    *float64 `parquet:"eor,optional,snappy"`
	DelayImpactPct         *float64 `parquet:"delay_impact_pct,optional,snappy"`
	IKK                    *float64 `parquet:"ikk,snappy,optional"`
	KE                     *float64 `parquet:"ke,optional,snappy"`
	Label                  string   `parquet:"label,snappy"`
	Issues                 *string  `parquet:"issues,optional,snappy"`
}

// FactorRow represents the time-decayed contribution of one RCA factor.
type FactorRow struct {
	Label        string  `parquet:"label,snappy"`
	CI           float64 `parquet:"ci,snappy"`
	CV           float64 `parquet:"cv,snappy"`
	IC           float64 `parquet:"ic,snappy"`
	TimePeriod   float64 `parquet:"time_period,snappy"`
	Base         float64 `parquet:"base,snappy"`
	DecayWeight  float64 `parquet:"decay_weight,snappy"`
	Contribution float64 `parquet:"contribution,snappy"`
}

// ProjectedRow represents one row mapped onto the top-2 principal directions.
type ProjectedRow struct {
	Source string  `parquet:"source,snappy"`
	Name   string  `parquet:"name,snappy"`
	PC1    float64 `parquet:"pc1,snappy"`
	PC2    float64 `parquet:"pc2,snappy"`
}

// writeParquet writes a slice of rows to a Parquet file.
// The schema is automatically derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// readParquet reads every row of a Parquet file.
func readParquet[T any](inputPath string) ([]T, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows[:n], nil
}

// WriteChaptersParquet writes scored chapters to a Parquet file.
func WriteChaptersParquet(results []schema.ChapterResult, outputPath string) error {
	return writeParquet(ConvertChapterResults(results), outputPath)
}

// WriteFactorsParquet writes the RCA factor contributions to a Parquet file.
func WriteFactorsParquet(result schema.RCAResult, outputPath string) error {
	return writeParquet(ConvertRCAResult(result), outputPath)
}

// WriteProjectionParquet writes projected points to a Parquet file.
func WriteProjectionParquet(proj schema.Projection, outputPath string) error {
	return writeParquet(ConvertProjection(proj), outputPath)
}

// ReadChapterRows reads the chapter rows of a Parquet file.
func ReadChapterRows(inputPath string) ([]ChapterRow, error) {
	return readParquet[ChapterRow](inputPath)
}

// ReadFactorRows reads the RCA factor rows of a Parquet file.
func ReadFactorRows(inputPath string) ([]FactorRow, error) {
	return readParquet[FactorRow](inputPath)
}

// ReadProjectedRows reads the projected rows of a Parquet file.
func ReadProjectedRows(inputPath string) ([]ProjectedRow, error) {
	return readParquet[ProjectedRow](inputPath)
}

// ReadChapterRecords reads the raw chapter inputs of a Parquet file.
// Derived columns are ignored; they are recomputed on every run.
func ReadChapterRecords(inputPath string) ([]schema.ChapterRecord, error) {
	rows, err := ReadChapterRows(inputPath)
	if err != nil {
		return nil, err
	}
	records := make([]schema.ChapterRecord, 0, len(rows))
	for i, r := range rows {
		rec, err := schema.NewChapterRecord(r.Name, r.TargetPct, r.RealizedPct, r.EffectivenessPct,
			r.ComplexityPct, r.ContributionPct, r.ProcedureCompliancePct, r.DisciplinePct,
			r.TargetWeeks, r.RealizedWeeks)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ConvertChapterResults converts schema.ChapterResult to ChapterRow for Parquet export.
func ConvertChapterResults(results []schema.ChapterResult) []ChapterRow {
	rows := make([]ChapterRow, len(results))
	for i, r := range results {
		rows[i] = ChapterRow{
			Name:                   r.Name,
			Variant:                string(r.Variant),
			TargetPct:              r.TargetPct,
			RealizedPct:            r.RealizedPct,
			EffectivenessPct:       r.EffectivenessPct,
			ComplexityPct:          r.ComplexityPct,
			ContributionPct:        r.ContributionPct,
			ProcedureCompliancePct: r.ProcedureCompliancePct,
			DisciplinePct:          r.DisciplinePct,
			TargetWeeks:            r.TargetWeeks,
			RealizedWeeks:          r.RealizedWeeks,
			EOR:                    r.EOR,
			DelayImpactPct:         r.DelayImpactPct,
			IKK:                    r.IKK,
			KE:                     r.KE,
			Label:                  schema.GetResultLabel(r.IKK),
		}
		if !r.OK() {
			issues := r.IssueText()
			rows[i].Issues = &issues
		}
	}
	return rows
}

// ConvertRCAResult converts the factor contributions of an RCA result for Parquet export.
func ConvertRCAResult(result schema.RCAResult) []FactorRow {
	rows := make([]FactorRow, len(result.Contributions))
	for i, c := range result.Contributions {
		rows[i] = FactorRow{
			Label:        c.Label,
			CI:           c.CI,
			CV:           c.CV,
			IC:           c.IC,
			TimePeriod:   c.TimePeriod,
			Base:         c.Base,
			DecayWeight:  c.DecayWeight,
			Contribution: c.Contribution,
		}
	}
	return rows
}

// ConvertProjection converts projected points for Parquet export.
func ConvertProjection(proj schema.Projection) []ProjectedRow {
	rows := make([]ProjectedRow, len(proj.Points))
	for i, p := range proj.Points {
		rows[i] = ProjectedRow{Source: string(proj.Source), Name: p.Name, PC1: p.PC1, PC2: p.PC2}
	}
	return rows
}
