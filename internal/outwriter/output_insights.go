package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

var insightsHeader = []string{"metric", "count", "mean", "median", "stddev", "min", "max"}

// WriteInsightsResult outputs the chapter summary, dispatching based on the output format configured.
func WriteInsightsResult(insights schema.Insights, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, insights)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeInsightsCSV(w, insights, fmtFloat)
		}, "Wrote CSV")
	case schema.XLSXOut:
		return writeXLSX(cfg.OutputFile, []sheet{insightsSheet(insights)}, "Wrote XLSX")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for insights")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeInsightsText(w, insights, fmtFloat)
		}, "Wrote text")
	}
}

func writeInsightsCSV(w io.Writer, insights schema.Insights, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, insightsHeader, func(cw *csv.Writer) error {
		for _, s := range insights.Summaries {
			rec := []string{
				string(s.Metric),
				strconv.Itoa(s.Count),
				fmtFloat(s.Mean),
				fmtFloat(s.Median),
				fmtFloat(s.StdDev),
				fmtFloat(s.Min),
				fmtFloat(s.Max),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func insightsSheet(insights schema.Insights) sheet {
	rows := make([][]any, len(insights.Summaries))
	for i, s := range insights.Summaries {
		rows[i] = []any{string(s.Metric), s.Count, s.Mean, s.Median, s.StdDev, s.Min, s.Max}
	}
	return sheet{name: "Insights", header: insightsHeader, rows: rows}
}

func writeInsightsText(w io.Writer, insights schema.Insights, fmtFloat func(float64) string) error {
	if insights.TopEfficiency != nil {
		if _, err := fmt.Fprintf(w, "🏆 Highest efficiency: %s (EOR %s)\n",
			insights.TopEfficiency.Name, fmtFloat(insights.TopEfficiency.Value)); err != nil {
			return err
		}
	}
	if insights.TopDelay != nil {
		if _, err := fmt.Fprintf(w, "⏳ Largest delay impact: %s (DK %s%%)\n",
			insights.TopDelay.Name, fmtFloat(insights.TopDelay.Value)); err != nil {
			return err
		}
	}
	if insights.InvalidRows > 0 {
		if _, err := fmt.Fprintf(w, "⚠️  %d chapters have undefined metrics\n", insights.InvalidRows); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	headers := make([]string, len(insightsHeader))
	for i, h := range insightsHeader {
		headers[i] = strings.ToUpper(h)
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range insights.Summaries {
		data = append(data, []string{
			strings.ToUpper(string(s.Metric)),
			strconv.Itoa(s.Count),
			fmtFloat(s.Mean),
			fmtFloat(s.Median),
			fmtFloat(s.StdDev),
			fmtFloat(s.Min),
			fmtFloat(s.Max),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
