package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceRCAParamsAreIndependentCopies(t *testing.T) {
	one := ReferenceRCAParams()
	two := ReferenceRCAParams()
	one.CI[0] = 0
	one.Labels[0] = "changed"
	assert.Equal(t, 0.8, two.CI[0])
	assert.Equal(t, "Review Tertunda", two.Labels[0])

	for _, column := range [][]float64{two.CV, two.IC, two.TimePeriods} {
		assert.Len(t, column, len(two.CI), "every factor column has one value per factor")
	}
}

func TestWithDecayKeepsOriginal(t *testing.T) {
	base := ReferenceRCAParams()
	decayed := base.WithDecay(0.5)
	assert.Equal(t, 0.5, decayed.Decay)
	assert.Equal(t, 0.10, base.Decay)
}

func TestReferenceSolutions(t *testing.T) {
	solutions := ReferenceSolutions()
	assert.Len(t, solutions, 4)
	for _, s := range solutions {
		assert.NotEmpty(t, s.Name)
		assert.Positive(t, s.Cost)
	}
}
