package algo

import (
	"fmt"
	"math"
	"sort"

	"github.com/huangsam/babscore/schema"
)

// ComputeRCA calculates the time-decayed contribution of every factor and the aggregate score.
//
//	contribution[i] = (PI + ln(1 + CI[i]*CV[i]) / sqrt(IC[i])) * exp(-decay * t[i])
//	RCA             = sum(contribution) * CP * PD * SD * ST * SI * (MP + VF)
func ComputeRCA(p schema.RCAParams) (schema.RCAResult, error) {
	n := len(p.CI)
	if n == 0 {
		return schema.RCAResult{}, fmt.Errorf("rca requires at least one factor")
	}
	if len(p.CV) != n || len(p.IC) != n || len(p.TimePeriods) != n {
		return schema.RCAResult{}, fmt.Errorf("rca arrays must have equal length: ci=%d cv=%d ic=%d time_periods=%d",
			n, len(p.CV), len(p.IC), len(p.TimePeriods))
	}
	if !(p.Decay >= 0) || math.IsInf(p.Decay, 0) {
		return schema.RCAResult{}, domainErr("", "decay", p.Decay, "must be a finite number >= 0")
	}

	out := schema.RCAResult{Contributions: make([]schema.FactorContribution, n)}
	for i := range n {
		label := p.Label(i)
		if !(p.IC[i] > 0) {
			return schema.RCAResult{}, domainErr(label, "ic", p.IC[i], "must be > 0")
		}
		product := p.CI[i] * p.CV[i]
		if !(product > -1) {
			return schema.RCAResult{}, domainErr(label, "ci*cv", product, "must be > -1")
		}

		base := p.PI + math.Log1p(product)/math.Sqrt(p.IC[i])
		weight := math.Exp(-p.Decay * p.TimePeriods[i])
		c := schema.FactorContribution{
			Label:        label,
			CI:           p.CI[i],
			CV:           p.CV[i],
			IC:           p.IC[i],
			TimePeriod:   p.TimePeriods[i],
			Base:         base,
			DecayWeight:  weight,
			Contribution: base * weight,
		}
		if math.IsNaN(c.Contribution) || math.IsInf(c.Contribution, 0) {
			return schema.RCAResult{}, domainErr(label, "contribution", c.Contribution, "is not representable")
		}
		out.Contributions[i] = c
		out.Sum += c.Contribution
	}

	out.Multiplier = p.CP * p.PD * p.SD * p.ST * p.SI * (p.MP + p.VF)
	out.Aggregate = out.Sum * out.Multiplier
	return out, nil
}

// ComputeEIA scores each solution as impact_reduction / cost * priority_weight
// and returns them ordered from the highest expected impact down.
func ComputeEIA(solutions []schema.Solution) ([]schema.EIAResult, error) {
	results := make([]schema.EIAResult, 0, len(solutions))
	for _, s := range solutions {
		if !(s.Cost > 0) {
			return nil, domainErr(s.Name, "cost", s.Cost, "must be > 0")
		}
		results = append(results, schema.EIAResult{
			Solution: s,
			EIA:      s.ImpactReduction / s.Cost * s.PriorityWeight,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].EIA > results[j].EIA
	})
	return results, nil
}
