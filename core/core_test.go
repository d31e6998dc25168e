package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *contract.Config {
	t.Helper()
	cfg := &contract.Config{}
	require.NoError(t, contract.ProcessAndValidate(context.Background(), cfg, nil, contract.DefaultRawInput()))
	return cfg
}

func TestGetChapterResults(t *testing.T) {
	cfg := validConfig(t)
	cfg.RankBy = schema.RankByIKK
	cfg.ResultLimit = 3

	ranked, err := GetChapterResults(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Pendahuluan", ranked[0].Name)
	require.NotNil(t, ranked[0].IKK)
	assert.Equal(t, 88.0, *ranked[0].IKK)
	assert.Equal(t, "Pemeriksaan Dewasa", ranked[2].Name)

	cfg.Chapters = nil
	_, err = GetChapterResults(context.Background(), cfg)
	assert.Error(t, err)
}

// manyChapters repeats the reference chapters under unique names.
func manyChapters(n int) []schema.ChapterRecord {
	base := schema.ReferenceChapters()
	records := make([]schema.ChapterRecord, n)
	for i := range records {
		records[i] = base[i%len(base)]
		records[i].Name = fmt.Sprintf("Bab %02d", i+1)
	}
	return records
}

func TestChapterExportsKeepEveryRow(t *testing.T) {
	cfg := validConfig(t)
	cfg.Chapters = manyChapters(40)
	require.Equal(t, contract.DefaultResultLimit, cfg.ResultLimit)

	ranked, err := GetChapterResults(context.Background(), cfg)
	require.NoError(t, err)
	assert.Len(t, ranked, contract.DefaultResultLimit, "text output is limited")

	for _, output := range []schema.OutputMode{schema.CSVOut, schema.XLSXOut, schema.ParquetOut} {
		cfg.Output = output
		ranked, err := GetChapterResults(context.Background(), cfg)
		require.NoError(t, err)
		assert.Len(t, ranked, 40, "%s export carries one row per chapter", output)
	}

	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "analisis_program.csv")
	require.NoError(t, ExecuteChapters(WithSuppressHeader(context.Background()), cfg))

	file, err := os.Open(cfg.OutputFile)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()
	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 41, "header plus one row per chapter")
}

func TestGetInsights(t *testing.T) {
	insights, err := GetInsights(context.Background(), validConfig(t))
	require.NoError(t, err)
	require.NotNil(t, insights.TopEfficiency)
	require.NotNil(t, insights.TopDelay)
	assert.Equal(t, "Pendahuluan", insights.TopEfficiency.Name)
	assert.Equal(t, "Alur Pengobatan", insights.TopDelay.Name)
	assert.Zero(t, insights.InvalidRows)
}

func TestGetPrediction(t *testing.T) {
	cfg := validConfig(t)
	result, err := GetPrediction(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 56, result.Terms)
	assert.Equal(t, 5, result.TrainingRows)
	assert.InDelta(t, 4.054308249107429, result.PredictedWeeks, 1e-3)

	cfg.Lambda = 0
	_, err = GetPrediction(context.Background(), cfg)
	var fitErr *schema.FitError
	assert.True(t, errors.As(err, &fitErr))
}

func TestGetProjection(t *testing.T) {
	cfg := validConfig(t)
	proj, err := GetProjection(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, schema.ChapterSource, proj.Source)
	assert.Len(t, proj.Points, 5)

	cfg.Source = schema.RCASource
	proj, err = GetProjection(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, schema.RCASource, proj.Source)
	assert.Equal(t, schema.RCAProjectionColumns, proj.Columns)
}

func TestGetRCAResults(t *testing.T) {
	cfg := validConfig(t)
	result, solutions, err := GetRCAResults(context.Background(), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 4.890321408092009, result.Aggregate, 1e-12)
	require.Len(t, solutions, 4)
	assert.Equal(t, "Standardisasi SOP", solutions[0].Name)

	cfg.Decay = -1
	_, _, err = GetRCAResults(context.Background(), cfg)
	var domainErr *schema.DomainError
	assert.True(t, errors.As(err, &domainErr))
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := validConfig(t)

	_, err := GetChapterResults(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = GetPrediction(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = GetProjection(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
	_, _, err = GetRCAResults(ctx, cfg)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecutors(t *testing.T) {
	executors := map[string]ExecutorFunc{
		"chapters": ExecuteChapters,
		"insights": ExecuteInsights,
		"predict":  ExecutePredict,
		"project":  ExecuteProject,
		"rca":      ExecuteRCA,
		"formulas": ExecuteFormulas,
	}
	ctx := WithSuppressHeader(context.Background())
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig(t)
			cfg.Output = schema.JSONOut
			cfg.OutputFile = filepath.Join(t.TempDir(), name+".json")
			require.NoError(t, exec(ctx, cfg))

			info, err := os.Stat(cfg.OutputFile)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}

func TestSuppressHeaderConcurrentAccess(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	assert.False(t, shouldSuppressHeader(context.Background()))

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, shouldSuppressHeader(ctx))
		}()
	}
	wg.Wait()
}
