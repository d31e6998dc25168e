// Package dataset parses chapter tables exported as CSV, XLSX or Parquet back into records.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/internal/parquet"
	"github.com/huangsam/babscore/schema"
	"github.com/xuri/excelize/v2"
)

// FileLoader reads chapter tables from the local filesystem.
// The format is chosen from the file extension.
type FileLoader struct{}

var _ contract.ChapterLoader = &FileLoader{} // Compile-time check

// NewFileLoader creates a loader for local chapter tables.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// LoadChapters implements the ChapterLoader interface.
func (l *FileLoader) LoadChapters(ctx context.Context, path string) ([]schema.ChapterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(path)
	case ".xlsx":
		return ReadXLSX(path)
	case ".parquet":
		return parquet.ReadChapterRecords(path)
	default:
		return nil, fmt.Errorf("unsupported chapter table %q: expected .csv, .xlsx or .parquet", path)
	}
}

// ReadCSV reads a chapter table from a CSV file.
func ReadCSV(path string) ([]schema.ChapterRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return ParseRows(rows)
}

// ReadXLSX reads a chapter table from the first sheet of a workbook.
func ReadXLSX(path string) ([]schema.ChapterRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %q has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return ParseRows(rows)
}

// ParseRows converts a header row and data rows into chapter records.
// Columns are matched by name; derived and unknown columns are ignored.
func ParseRows(rows [][]string) ([]schema.ChapterRecord, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("table must have a header row and at least one data row")
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, field := range schema.ChapterInputFields {
		if _, ok := index[field]; !ok {
			return nil, fmt.Errorf("missing required column %q", field)
		}
	}

	records := make([]schema.ChapterRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		rec, err := parseRecord(row, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table has no chapter rows")
	}
	return records, nil
}

func parseRecord(row []string, index map[string]int) (schema.ChapterRecord, error) {
	cell := func(field string) string {
		if i := index[field]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	values := make(map[string]float64, len(schema.ChapterInputFields)-1)
	for _, field := range schema.ChapterInputFields[1:] {
		raw := cell(field)
		if raw == "" {
			return schema.ChapterRecord{}, fmt.Errorf("column %q is empty", field)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return schema.ChapterRecord{}, fmt.Errorf("column %q: invalid number %q", field, raw)
		}
		values[field] = v
	}

	return schema.NewChapterRecord(
		cell(schema.FieldName),
		values[schema.FieldTargetPct],
		values[schema.FieldRealizedPct],
		values[schema.FieldEffectivenessPct],
		values[schema.FieldComplexityPct],
		values[schema.FieldContributionPct],
		values[schema.FieldProcedureCompliancePct],
		values[schema.FieldDisciplinePct],
		values[schema.FieldTargetWeeks],
		values[schema.FieldRealizedWeeks],
	)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
