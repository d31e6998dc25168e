package schema

import "strconv"

// RCAParams holds the scalar multipliers and per-factor arrays of the RCA exercise.
// CI, CV, IC and TimePeriods are parallel arrays of equal length.
type RCAParams struct {
	CP float64 `json:"cp"`
	PD float64 `json:"pd"`
	SD float64 `json:"sd"`
	ST float64 `json:"st"`
	SI float64 `json:"si"`
	MP float64 `json:"mp"`
	VF float64 `json:"vf"`

	PI    float64 `json:"pi"`    // Base factor added to every contribution
	Decay float64 `json:"decay"` // Exponential time-decay rate, >= 0

	Labels      []string  `json:"labels,omitempty"` // Optional factor names
	CI          []float64 `json:"ci"`
	CV          []float64 `json:"cv"`
	IC          []float64 `json:"ic"`
	TimePeriods []float64 `json:"time_periods"`
}

// Label returns the display name of factor i.
func (p RCAParams) Label(i int) string {
	if i < len(p.Labels) && p.Labels[i] != "" {
		return p.Labels[i]
	}
	return "factor-" + strconv.Itoa(i+1)
}

// WithDecay returns a copy of the params with a different decay rate.
func (p RCAParams) WithDecay(decay float64) RCAParams {
	clone := p
	clone.Decay = decay
	return clone
}

// FactorContribution is the time-decayed contribution of one factor.
type FactorContribution struct {
	Label        string  `json:"label"`
	CI           float64 `json:"ci"`
	CV           float64 `json:"cv"`
	IC           float64 `json:"ic"`
	TimePeriod   float64 `json:"time_period"`
	Base         float64 `json:"base"`         // PI + ln(1+CI*CV)/sqrt(IC)
	DecayWeight  float64 `json:"decay_weight"` // exp(-decay*t)
	Contribution float64 `json:"contribution"`
}

// RCAResult holds the per-factor contributions and the aggregate RCA score.
type RCAResult struct {
	Contributions []FactorContribution `json:"contributions"`
	Sum           float64              `json:"sum"`
	Multiplier    float64              `json:"multiplier"` // CP*PD*SD*ST*SI*(MP+VF)
	Aggregate     float64              `json:"rca"`
}

// Solution is a candidate remediation for expected impact analysis.
type Solution struct {
	Name            string  `json:"name"`
	ImpactReduction float64 `json:"impact_reduction"`
	Cost            float64 `json:"cost"`
	PriorityWeight  float64 `json:"priority_weight"`
}

// EIAResult is the expected impact score of a solution.
type EIAResult struct {
	Solution
	EIA float64 `json:"eia"`
}
