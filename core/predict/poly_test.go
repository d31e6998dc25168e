package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolynomialTermsCount(t *testing.T) {
	tests := []struct {
		features, degree, expected int
	}{
		{5, 3, 56},
		{3, 3, 20},
		{2, 2, 6},
		{1, 3, 4},
		{5, 1, 6},
	}
	for _, tt := range tests {
		assert.Len(t, PolynomialTerms(tt.features, tt.degree), tt.expected, "n=%d degree=%d", tt.features, tt.degree)
	}
}

func TestPolynomialTermsOrder(t *testing.T) {
	terms := PolynomialTerms(2, 2)
	assert.Equal(t, []Term{{}, {0}, {1}, {0, 0}, {0, 1}, {1, 1}}, terms)
	assert.Equal(t, 0, terms[0].Degree())
	assert.Equal(t, 2, terms[4].Degree())
}

func TestExpand(t *testing.T) {
	terms := PolynomialTerms(2, 3)
	got := Expand([]float64{2, 3}, terms)
	assert.Equal(t, []float64{1, 2, 3, 4, 6, 9, 8, 12, 18, 27}, got)
}
