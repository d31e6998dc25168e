package algo

import (
	"testing"

	"github.com/huangsam/babscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRCAReference(t *testing.T) {
	result, err := ComputeRCA(schema.ReferenceRCAParams())
	require.NoError(t, err)

	expected := []float64{
		1.2721478061457387,
		1.0451558332597795,
		0.9529219867527075,
		0.7868463268318383,
		0.8950268881451062,
	}
	require.Len(t, result.Contributions, len(expected))
	for i, c := range result.Contributions {
		assert.InDelta(t, expected[i], c.Contribution, 1e-9, c.Label)
		assert.InDelta(t, c.Base*c.DecayWeight, c.Contribution, 1e-12)
	}
	assert.Equal(t, "Review Tertunda", result.Contributions[0].Label)
	assert.InDelta(t, 4.952098841135171, result.Sum, 1e-9)
	assert.InDelta(t, 0.987525, result.Multiplier, 1e-12)
	assert.InDelta(t, 4.890321408092009, result.Aggregate, 1e-9)
}

// TestComputeRCADecayMonotonic checks that a higher decay never raises the aggregate.
func TestComputeRCADecayMonotonic(t *testing.T) {
	params := schema.ReferenceRCAParams()

	noDecay, err := ComputeRCA(params.WithDecay(0))
	require.NoError(t, err)
	assert.InDelta(t, 6.5357305502787515, noDecay.Aggregate, 1e-9)

	prev := noDecay.Aggregate
	for _, decay := range []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5} {
		r, err := ComputeRCA(params.WithDecay(decay))
		require.NoError(t, err)
		assert.LessOrEqual(t, r.Aggregate, prev, "decay=%v", decay)
		prev = r.Aggregate
	}
}

func TestComputeRCAErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*schema.RCAParams)
		field  string
	}{
		{"zero ic", func(p *schema.RCAParams) { p.IC[1] = 0 }, "ic"},
		{"negative ic", func(p *schema.RCAParams) { p.IC[4] = -2 }, "ic"},
		{"log domain", func(p *schema.RCAParams) { p.CI[0] = -2; p.CV[0] = 0.5 }, "ci*cv"},
		{"negative decay", func(p *schema.RCAParams) { p.Decay = -0.1 }, "decay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := schema.ReferenceRCAParams()
			tt.mutate(&p)
			_, err := ComputeRCA(p)
			var de *schema.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
		})
	}

	p := schema.ReferenceRCAParams()
	p.TimePeriods = p.TimePeriods[:3]
	_, err := ComputeRCA(p)
	assert.ErrorContains(t, err, "equal length")

	_, err = ComputeRCA(schema.RCAParams{})
	assert.Error(t, err)
}

func TestComputeEIA(t *testing.T) {
	results, err := ComputeEIA(schema.ReferenceSolutions())
	require.NoError(t, err)
	require.Len(t, results, 4)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"Standardisasi SOP", "Penjadwalan Ulang Milestone", "Pelatihan Ulang Tim", "Penambahan Reviewer"}, names)
	assert.InDelta(t, 4.0, results[0].EIA, 1e-12)
	assert.InDelta(t, 3.0, results[1].EIA, 1e-12)
	assert.InDelta(t, 2.7, results[2].EIA, 1e-12)
	assert.InDelta(t, 1.75, results[3].EIA, 1e-12)

	_, err = ComputeEIA([]schema.Solution{{Name: "Gratis", ImpactReduction: 10, Cost: 0, PriorityWeight: 1}})
	var de *schema.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Gratis", de.Row)
}

func BenchmarkComputeRCA(b *testing.B) {
	params := schema.ReferenceRCAParams()
	for b.Loop() {
		_, _ = ComputeRCA(params)
	}
}
