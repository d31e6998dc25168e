package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/babscore/core/algo"
	"github.com/huangsam/babscore/core/project"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/internal/parquet"
	"github.com/huangsam/babscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestConfig(t *testing.T, output schema.OutputMode, fileName string) *contract.Config {
	t.Helper()
	cfg := &contract.Config{
		Variant:    schema.V2WithDiscipline,
		FeatureSet: schema.FullFeatures,
		Degree:     schema.DefaultPolyDegree,
		Lambda:     schema.DefaultRidgeLambda,
		IKKWeights: schema.GetDefaultIKKWeights(),
		RankBy:     schema.RankByEOR,
		Decay:      0.1,
		Precision:  2,
		Output:     output,
		Width:      120,
	}
	if fileName != "" {
		cfg.OutputFile = filepath.Join(t.TempDir(), fileName)
	}
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func disableColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

func scoredWithIssue() []schema.ChapterResult {
	records := schema.ReferenceChapters()
	records[3].ComplexityPct = 0
	return algo.ScoreChapters(records, schema.V2WithDiscipline, nil)
}

func TestWriteChaptersCSV(t *testing.T) {
	cfg := newTestConfig(t, schema.CSVOut, "chapters.csv")
	results := scoredWithIssue()
	require.NoError(t, NewOutWriter().WriteChapters(results, cfg, time.Millisecond))

	f, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, len(results)+1)
	assert.Equal(t, ChapterCSVHeader(), rows[0])
	assert.Equal(t, "Pendahuluan", rows[1][1])
	assert.Equal(t, "3869683.53", rows[1][12])
	assert.Equal(t, "Excellent", rows[1][16])
	assert.Empty(t, rows[1][17])

	assert.Equal(t, "Alur Pengobatan", rows[4][1])
	assert.Empty(t, rows[4][12], "undefined EOR is an empty cell")
	assert.Empty(t, rows[4][15], "undefined KE is an empty cell")
	assert.Equal(t, "66.67", rows[4][13])
	assert.Contains(t, rows[4][17], schema.FieldComplexityPct)
}

func TestWriteChaptersJSON(t *testing.T) {
	cfg := newTestConfig(t, schema.JSONOut, "chapters.json")
	require.NoError(t, NewOutWriter().WriteChapters(scoredWithIssue(), cfg, time.Millisecond))

	var out []map[string]any
	require.NoError(t, json.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &out))
	require.Len(t, out, 5)
	assert.Equal(t, float64(1), out[0]["rank"])
	assert.Equal(t, "Excellent", out[0]["label"])
	assert.Equal(t, "v2", out[0]["variant"])
	assert.Nil(t, out[3]["eor"])
	assert.NotEmpty(t, out[3]["issues"])
}

func TestWriteChaptersText(t *testing.T) {
	disableColor(t)
	cfg := newTestConfig(t, schema.TextOut, "chapters.txt")
	require.NoError(t, NewOutWriter().WriteChapters(scoredWithIssue(), cfg, time.Millisecond))

	content := readFile(t, cfg.OutputFile)
	assert.Contains(t, strings.ToUpper(content), "RANK")
	assert.Contains(t, strings.ToUpper(content), "ISSUES")
	assert.Contains(t, content, "Pendahuluan")
	assert.Contains(t, content, "Showing 5 chapters ranked by eor (variant v2, 1 with issues)")
}

func TestWriteChaptersXLSX(t *testing.T) {
	cfg := newTestConfig(t, schema.XLSXOut, "chapters.xlsx")
	require.NoError(t, NewOutWriter().WriteChapters(scoredWithIssue(), cfg, time.Millisecond))

	f, err := excelize.OpenFile(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Chapters")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, ChapterCSVHeader(), rows[0])
	assert.Equal(t, "Penutup", rows[5][1])
}

func TestWriteChaptersParquet(t *testing.T) {
	cfg := newTestConfig(t, schema.ParquetOut, "chapters.parquet")
	require.NoError(t, NewOutWriter().WriteChapters(scoredWithIssue(), cfg, time.Millisecond))

	rows, err := parquet.ReadChapterRows(cfg.OutputFile)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestWriteInsights(t *testing.T) {
	disableColor(t)
	insights, err := algo.SummarizeChapters(scoredWithIssue())
	require.NoError(t, err)

	cfg := newTestConfig(t, schema.TextOut, "insights.txt")
	require.NoError(t, NewOutWriter().WriteInsights(insights, cfg))
	content := readFile(t, cfg.OutputFile)
	assert.Contains(t, content, "Highest efficiency: Pendahuluan")
	assert.Contains(t, content, "Largest delay impact: Alur Pengobatan (DK 66.67%)")
	assert.Contains(t, content, "1 chapters have undefined metrics")

	cfg = newTestConfig(t, schema.CSVOut, "insights.csv")
	require.NoError(t, NewOutWriter().WriteInsights(insights, cfg))
	lines := strings.Split(strings.TrimSpace(readFile(t, cfg.OutputFile)), "\n")
	assert.Equal(t, strings.Join(insightsHeader, ","), lines[0])
	assert.Len(t, lines, len(insights.Summaries)+1)

	cfg = newTestConfig(t, schema.ParquetOut, "insights.parquet")
	assert.Error(t, NewOutWriter().WriteInsights(insights, cfg))
}

func TestWritePrediction(t *testing.T) {
	result := schema.PredictionResult{
		Inputs:         schema.FeatureVector{Target: 100, Realized: 90, Effectiveness: 85, Complexity: 80, Discipline: 90},
		FeatureSet:     schema.FullFeatures,
		PredictedWeeks: 4.054308249107429,
		TrainingRows:   5,
		Terms:          56,
		Degree:         3,
		Lambda:         0.1,
	}

	cfg := newTestConfig(t, schema.TextOut, "predict.txt")
	require.NoError(t, NewOutWriter().WritePrediction(result, cfg))
	content := readFile(t, cfg.OutputFile)
	assert.Contains(t, content, "Predicted completion: 4.05 weeks")
	assert.Contains(t, content, "Discipline:")
	assert.Contains(t, content, "56 terms, 5 training rows")

	cfg = newTestConfig(t, schema.CSVOut, "predict.csv")
	require.NoError(t, NewOutWriter().WritePrediction(result, cfg))
	lines := strings.Split(strings.TrimSpace(readFile(t, cfg.OutputFile)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "100,90,85,80,90,full,3,0.1,5,56,4.05", lines[1])

	basic := result
	basic.FeatureSet = schema.BasicFeatures
	cfg = newTestConfig(t, schema.TextOut, "basic.txt")
	require.NoError(t, NewOutWriter().WritePrediction(basic, cfg))
	assert.NotContains(t, readFile(t, cfg.OutputFile), "Discipline:")
}

func TestWriteProjection(t *testing.T) {
	proj, err := project.ProjectChapters(scoredWithIssue(), nil)
	require.NoError(t, err)

	cfg := newTestConfig(t, schema.CSVOut, "projection.csv")
	require.NoError(t, NewOutWriter().WriteProjection(proj, cfg))
	lines := strings.Split(strings.TrimSpace(readFile(t, cfg.OutputFile)), "\n")
	assert.Equal(t, "name,pc1,pc2", lines[0])
	assert.Len(t, lines, 5, "the row with undefined EOR is skipped")

	cfg = newTestConfig(t, schema.TextOut, "projection.txt")
	require.NoError(t, NewOutWriter().WriteProjection(proj, cfg))
	content := readFile(t, cfg.OutputFile)
	assert.Contains(t, content, "Explained variance")
	assert.Contains(t, content, "Skipped rows with undefined values: Alur Pengobatan")

	cfg = newTestConfig(t, schema.XLSXOut, "projection.xlsx")
	require.NoError(t, NewOutWriter().WriteProjection(proj, cfg))
	f, err := excelize.OpenFile(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"Points", "Loadings"}, f.GetSheetList())
}

func TestWriteRCA(t *testing.T) {
	result, err := algo.ComputeRCA(schema.ReferenceRCAParams())
	require.NoError(t, err)
	solutions, err := algo.ComputeEIA(schema.ReferenceSolutions())
	require.NoError(t, err)

	cfg := newTestConfig(t, schema.TextOut, "rca.txt")
	require.NoError(t, NewOutWriter().WriteRCA(result, solutions, cfg))
	content := readFile(t, cfg.OutputFile)
	assert.Contains(t, content, "RCA = 4.89")
	assert.Contains(t, content, "Standardisasi SOP")

	cfg = newTestConfig(t, schema.JSONOut, "rca.json")
	require.NoError(t, NewOutWriter().WriteRCA(result, solutions, cfg))
	var out rcaOutput
	require.NoError(t, json.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &out))
	assert.InDelta(t, 4.890321408092009, out.RCA.Aggregate, 1e-12)
	assert.Equal(t, "Standardisasi SOP", out.Solutions[0].Name)

	cfg = newTestConfig(t, schema.CSVOut, "rca.csv")
	require.NoError(t, NewOutWriter().WriteRCA(result, solutions, cfg))
	lines := strings.Split(strings.TrimSpace(readFile(t, cfg.OutputFile)), "\n")
	assert.Equal(t, strings.Join(factorHeader, ","), lines[0])
	assert.Len(t, lines, 6)

	cfg = newTestConfig(t, schema.XLSXOut, "rca.xlsx")
	require.NoError(t, NewOutWriter().WriteRCA(result, solutions, cfg))
	f, err := excelize.OpenFile(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"Factors", "Solutions", "Summary"}, f.GetSheetList())
}

func TestWriteFormulas(t *testing.T) {
	cfg := newTestConfig(t, schema.TextOut, "formulas.txt")
	require.NoError(t, NewOutWriter().WriteFormulas(cfg))
	content := readFile(t, cfg.OutputFile)
	assert.Contains(t, content, "(realized_pct*effectiveness_pct*discipline_pct)^1.3 / (realized_weeks^1.7 * ln(complexity_pct+1))")
	assert.Contains(t, content, "0.40*realized_pct + 0.30*effectiveness_pct + 0.20*procedure_compliance_pct + 0.10*contribution_pct")

	cfg = newTestConfig(t, schema.JSONOut, "formulas.json")
	cfg.Variant = schema.V1Simple
	cfg.IKKWeights = map[schema.WeightKey]float64{
		schema.WeightRealized:      0.5,
		schema.WeightEffectiveness: 0.5,
	}
	require.NoError(t, NewOutWriter().WriteFormulas(cfg))
	var model schema.FormulasRenderModel
	require.NoError(t, json.Unmarshal([]byte(readFile(t, cfg.OutputFile)), &model))
	assert.Equal(t, schema.V1Simple, model.Variant)
	require.Len(t, model.Formulas, 6)
	assert.Equal(t, "(realized_pct*effectiveness_pct)^1.2 / (realized_weeks^1.5 * ln(target_pct))", model.Formulas[0].Formula)
	assert.Equal(t, "0.50*realized_pct + 0.50*effectiveness_pct", model.Formulas[2].Formula)
	assert.Equal(t, 0.1, model.Formulas[4].Params["decay"])
}

func TestGetMaxTableNameWidth(t *testing.T) {
	cfg := &contract.Config{Width: 200, Precision: 2}
	assert.Equal(t, 48, GetMaxTableNameWidth(cfg, false))

	cfg.Width = 100
	assert.Equal(t, 26, GetMaxTableNameWidth(cfg, false))
	assert.Equal(t, 12, GetMaxTableNameWidth(cfg, true))
}
