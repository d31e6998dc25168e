package schema

// ProjectedPoint is one row mapped onto the top-2 principal directions.
type ProjectedPoint struct {
	Name string  `json:"name"`
	PC1  float64 `json:"pc1"`
	PC2  float64 `json:"pc2"`
}

// Projection is the result of standardizing a matrix and reducing it to two dimensions.
// The directions are recomputed for each row set and are unstable for very small sets.
type Projection struct {
	Source                 ProjectionSource `json:"source"`
	Columns                []string         `json:"columns"`
	Points                 []ProjectedPoint `json:"points"`
	Loadings               [2][]float64     `json:"loadings"`
	ExplainedVarianceRatio [2]float64       `json:"explained_variance_ratio"`
	Skipped                []string         `json:"skipped,omitempty"` // Rows left out for undefined values
}

// PredictionResult is the predicted completion time for one set of inputs.
type PredictionResult struct {
	Inputs         FeatureVector `json:"inputs"`
	FeatureSet     FeatureSet    `json:"feature_set"`
	PredictedWeeks float64       `json:"predicted_weeks"`
	TrainingRows   int           `json:"training_rows"`
	Terms          int           `json:"terms"`
	Degree         int           `json:"degree"`
	Lambda         float64       `json:"lambda"`
}

// ChapterHighlight names the chapter holding an extreme metric value.
type ChapterHighlight struct {
	Metric RankMetric `json:"metric"`
	Name   string     `json:"name"`
	Value  float64    `json:"value"`
}

// MetricSummary holds descriptive statistics of a derived metric across chapters.
type MetricSummary struct {
	Metric RankMetric `json:"metric"`
	Count  int        `json:"count"`
	Mean   float64    `json:"mean"`
	Median float64    `json:"median"`
	StdDev float64    `json:"stddev"`
	Min    float64    `json:"min"`
	Max    float64    `json:"max"`
}

// Insights summarizes a scored chapter table.
type Insights struct {
	TopEfficiency *ChapterHighlight `json:"top_efficiency,omitempty"`
	TopDelay      *ChapterHighlight `json:"top_delay,omitempty"`
	Summaries     []MetricSummary   `json:"summaries"`
	InvalidRows   int               `json:"invalid_rows"`
}
