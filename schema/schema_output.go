package schema

// Performance band labels derived from the IKK composite index.
const (
	ExcellentValue = "Excellent"
	GoodValue      = "Good"
	FairValue      = "Fair"
	PoorValue      = "Poor"
	UndefinedValue = "Undefined" // IKK could not be computed
)

// EnrichedChapterResult adds presentation data to a ChapterResult.
type EnrichedChapterResult struct {
	Rank   int      `json:"rank"`
	Label  string   `json:"label"`
	Issues []string `json:"issues,omitempty"`
	ChapterResult
}

// GetResultLabel returns the performance band of an optional IKK score.
func GetResultLabel(ikk *float64) string {
	if ikk == nil {
		return UndefinedValue
	}
	return GetPlainLabel(*ikk)
}

// GetPlainLabel returns a plain text performance band for an IKK score.
func GetPlainLabel(ikk float64) string {
	switch {
	case ikk >= 85:
		return ExcellentValue
	case ikk >= 75:
		return GoodValue
	case ikk >= 65:
		return FairValue
	default:
		return PoorValue
	}
}

// EnrichChapters adds rank, label and readable issues to a list of chapter results.
func EnrichChapters(results []ChapterResult) []EnrichedChapterResult {
	output := make([]EnrichedChapterResult, len(results))
	for i, r := range results {
		output[i] = EnrichedChapterResult{
			Rank:          i + 1,
			Label:         GetResultLabel(r.IKK),
			Issues:        r.IssueStrings(),
			ChapterResult: r,
		}
	}
	return output
}
