package algo

import (
	"github.com/huangsam/babscore/schema"
	"github.com/montanaflynn/stats"
)

// summaryMetrics is the display order of the per-metric summaries.
var summaryMetrics = []schema.RankMetric{schema.RankByEOR, schema.RankByDK, schema.RankByIKK, schema.RankByKE}

// SummarizeChapters reports the most efficient and most delayed chapters
// along with descriptive statistics of every derived metric.
func SummarizeChapters(results []schema.ChapterResult) (schema.Insights, error) {
	insights := schema.Insights{Summaries: []schema.MetricSummary{}}
	for _, r := range results {
		if !r.OK() {
			insights.InvalidRows++
		}
	}

	insights.TopEfficiency = highlight(results, schema.RankByEOR)
	insights.TopDelay = highlight(results, schema.RankByDK)

	for _, m := range summaryMetrics {
		data := metricValues(results, m)
		if len(data) == 0 {
			continue
		}
		summary, err := summarize(m, data)
		if err != nil {
			return schema.Insights{}, err
		}
		insights.Summaries = append(insights.Summaries, summary)
	}
	return insights, nil
}

func highlight(results []schema.ChapterResult, m schema.RankMetric) *schema.ChapterHighlight {
	var best *schema.ChapterHighlight
	for _, r := range results {
		v, ok := r.MetricValue(m)
		if !ok {
			continue
		}
		if best == nil || v > best.Value {
			best = &schema.ChapterHighlight{Metric: m, Name: r.Name, Value: v}
		}
	}
	return best
}

func metricValues(results []schema.ChapterResult, m schema.RankMetric) stats.Float64Data {
	data := make(stats.Float64Data, 0, len(results))
	for _, r := range results {
		if v, ok := r.MetricValue(m); ok {
			data = append(data, v)
		}
	}
	return data
}

func summarize(m schema.RankMetric, data stats.Float64Data) (schema.MetricSummary, error) {
	mean, err := stats.Mean(data)
	if err != nil {
		return schema.MetricSummary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return schema.MetricSummary{}, err
	}
	stdDev, err := stats.StandardDeviationPopulation(data)
	if err != nil {
		return schema.MetricSummary{}, err
	}
	minVal, err := stats.Min(data)
	if err != nil {
		return schema.MetricSummary{}, err
	}
	maxVal, err := stats.Max(data)
	if err != nil {
		return schema.MetricSummary{}, err
	}
	return schema.MetricSummary{
		Metric: m,
		Count:  len(data),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    minVal,
		Max:    maxVal,
	}, nil
}
