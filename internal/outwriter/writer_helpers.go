package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/xuri/excelize/v2"
)

// undefinedCell is displayed in place of a metric whose formula could not be evaluated.
const undefinedCell = "-"

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		logWrote(successMsg, outputFile)
	}
	return nil
}

// logWrote reports a written output file on stderr.
func logWrote(successMsg, outputFile string) {
	fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader creates a CSV writer, writes a header, and then the data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(csvWriter); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// formatOptional formats a nullable metric, using fallback when it is undefined.
func formatOptional(v *float64, fmtFloat func(float64) string, fallback string) string {
	if v == nil {
		return fallback
	}
	return fmtFloat(*v)
}

// formatExact formats a raw input without losing precision, so exported tables parse back unchanged.
func formatExact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// optionalCell returns the spreadsheet value of a nullable metric.
func optionalCell(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// sheet is one worksheet of an XLSX workbook.
type sheet struct {
	name   string
	header []string
	rows   [][]any
}

// writeXLSX writes the sheets to a new workbook at outputFile.
// The first sheet replaces the default one and stays active.
func writeXLSX(outputFile string, sheets []sheet, successMsg string) error {
	if outputFile == "" {
		return fmt.Errorf("xlsx output requires --output-file")
	}
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", s.name, err)
		}
		if err := writeSheetRows(f, s); err != nil {
			return err
		}
	}

	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	logWrote(successMsg, outputFile)
	return nil
}

// writeSheetRows writes the header on row 1 and the data below it, leaving nil cells unset.
func writeSheetRows(f *excelize.File, s sheet) error {
	for c, h := range s.header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(s.name, cell, h); err != nil {
			return fmt.Errorf("failed to write header of sheet %q: %w", s.name, err)
		}
	}
	for r, row := range s.rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(s.name, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d of sheet %q: %w", r+1, s.name, err)
			}
		}
	}
	return nil
}
