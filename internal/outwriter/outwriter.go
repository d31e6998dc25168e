// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteChapters prints scored chapters using the configured output format.
func (ow *OutWriter) WriteChapters(results []schema.ChapterResult, cfg *contract.Config, duration time.Duration) error {
	return WriteChapterResults(results, cfg, duration)
}

// WriteInsights prints the chapter table summary using the configured output format.
func (ow *OutWriter) WriteInsights(insights schema.Insights, cfg *contract.Config) error {
	return WriteInsightsResult(insights, cfg)
}

// WritePrediction prints a predicted completion time using the configured output format.
func (ow *OutWriter) WritePrediction(result schema.PredictionResult, cfg *contract.Config) error {
	return WritePredictionResult(result, cfg)
}

// WriteProjection prints a 2-D projection using the configured output format.
func (ow *OutWriter) WriteProjection(proj schema.Projection, cfg *contract.Config) error {
	return WriteProjectionResult(proj, cfg)
}

// WriteRCA prints the root cause analysis and ranked solutions using the configured output format.
func (ow *OutWriter) WriteRCA(result schema.RCAResult, solutions []schema.EIAResult, cfg *contract.Config) error {
	return WriteRCAResult(result, solutions, cfg)
}

// WriteFormulas prints the formula definitions with the active weights and constants.
func (ow *OutWriter) WriteFormulas(cfg *contract.Config) error {
	return PrintFormulaDefinitions(cfg)
}
