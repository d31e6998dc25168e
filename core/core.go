// Package core has the entry points that score, summarize, predict, project and analyze
// a validated configuration and hand the results to the output writers.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/babscore/core/algo"
	"github.com/huangsam/babscore/core/predict"
	"github.com/huangsam/babscore/core/project"
	"github.com/huangsam/babscore/internal/contract"
	"github.com/huangsam/babscore/internal/outwriter"
	"github.com/huangsam/babscore/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// GetChapterResults scores the configured chapters and ranks them by the configured metric.
// The result limit applies to displayed output only.
func GetChapterResults(ctx context.Context, cfg *contract.Config) ([]schema.ChapterResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(cfg.Chapters) == 0 {
		return nil, fmt.Errorf("no chapters to score")
	}
	scored := algo.ScoreChapters(cfg.Chapters, cfg.Variant, cfg.IKKWeights)
	return algo.RankChapters(scored, cfg.RankBy, cfg.RowLimit()), nil
}

// GetInsights scores every configured chapter and summarizes the table.
func GetInsights(ctx context.Context, cfg *contract.Config) (schema.Insights, error) {
	if err := ctx.Err(); err != nil {
		return schema.Insights{}, err
	}
	scored := algo.ScoreChapters(cfg.Chapters, cfg.Variant, cfg.IKKWeights)
	return algo.SummarizeChapters(scored)
}

// GetPrediction fits the duration model on the configured chapters and predicts the slider inputs.
func GetPrediction(ctx context.Context, cfg *contract.Config) (schema.PredictionResult, error) {
	if err := ctx.Err(); err != nil {
		return schema.PredictionResult{}, err
	}
	model, err := predict.Fit(cfg.Chapters, predict.Options{
		FeatureSet: cfg.FeatureSet,
		Degree:     cfg.Degree,
		Lambda:     cfg.Lambda,
	})
	if err != nil {
		return schema.PredictionResult{}, err
	}
	return model.Result(cfg.Slider), nil
}

// GetProjection reduces the configured source matrix to two dimensions.
func GetProjection(ctx context.Context, cfg *contract.Config) (schema.Projection, error) {
	if err := ctx.Err(); err != nil {
		return schema.Projection{}, err
	}
	if cfg.Source == schema.RCASource {
		result, err := algo.ComputeRCA(cfg.RCAParams())
		if err != nil {
			return schema.Projection{}, err
		}
		return project.ProjectRCA(result)
	}
	scored := algo.ScoreChapters(cfg.Chapters, cfg.Variant, cfg.IKKWeights)
	return project.ProjectChapters(scored, cfg.Columns)
}

// GetRCAResults computes the root cause breakdown and ranks the remediation catalog.
func GetRCAResults(ctx context.Context, cfg *contract.Config) (schema.RCAResult, []schema.EIAResult, error) {
	if err := ctx.Err(); err != nil {
		return schema.RCAResult{}, nil, err
	}
	result, err := algo.ComputeRCA(cfg.RCAParams())
	if err != nil {
		return schema.RCAResult{}, nil, err
	}
	solutions, err := algo.ComputeEIA(schema.ReferenceSolutions())
	if err != nil {
		return schema.RCAResult{}, nil, err
	}
	return result, solutions, nil
}

// ExecuteChapters scores and ranks the chapters and prints the table.
// It serves as the main entry point for the 'chapters' command.
func ExecuteChapters(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	logHeader(ctx, "scoring %d chapters with variant %s", len(cfg.Chapters), cfg.Variant)
	ranked, err := GetChapterResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteChapters(ranked, cfg, time.Since(start))
}

// ExecuteInsights prints the highlights and descriptive statistics of the chapter table.
func ExecuteInsights(ctx context.Context, cfg *contract.Config) error {
	logHeader(ctx, "summarizing %d chapters with variant %s", len(cfg.Chapters), cfg.Variant)
	insights, err := GetInsights(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteInsights(insights, cfg)
}

// ExecutePredict prints the predicted completion time of the slider inputs.
func ExecutePredict(ctx context.Context, cfg *contract.Config) error {
	logHeader(ctx, "fitting on %d chapters with the %s feature set", len(cfg.Chapters), cfg.FeatureSet)
	result, err := GetPrediction(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WritePrediction(result, cfg)
}

// ExecuteProject prints the 2-D projection of the configured source.
func ExecuteProject(ctx context.Context, cfg *contract.Config) error {
	logHeader(ctx, "projecting %s onto two principal directions", cfg.Source)
	proj, err := GetProjection(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteProjection(proj, cfg)
}

// ExecuteRCA prints the root cause breakdown and the ranked solutions.
func ExecuteRCA(ctx context.Context, cfg *contract.Config) error {
	logHeader(ctx, "root cause analysis with decay %g", cfg.Decay)
	result, solutions, err := GetRCAResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRCA(result, solutions, cfg)
}

// ExecuteFormulas prints the formula definitions with the active weights.
// No chapter is scored.
func ExecuteFormulas(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteFormulas(cfg)
}

// logHeader writes a one-line run header to stderr unless the context suppresses it.
func logHeader(ctx context.Context, format string, args ...any) {
	if shouldSuppressHeader(ctx) {
		return
	}
	fmt.Fprintf(os.Stderr, "📚 babscore: "+format+"\n", args...)
}
