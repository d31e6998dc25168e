package algo

import (
	"slices"
	"sort"

	"github.com/huangsam/babscore/schema"
)

// RankChapters sorts chapters by the chosen metric in descending order
// and returns the top 'limit' chapters. Chapters where the metric is undefined
// sort last. A non-positive limit returns all chapters. The input slice is not modified.
func RankChapters(results []schema.ChapterResult, metric schema.RankMetric, limit int) []schema.ChapterResult {
	ranked := slices.Clone(results)
	sort.SliceStable(ranked, func(i, j int) bool {
		vi, oki := ranked[i].MetricValue(metric)
		vj, okj := ranked[j].MetricValue(metric)
		if oki != okj {
			return oki
		}
		return vi > vj
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}
