// Package predict fits a polynomial ridge regression of realized duration on chapter features.
package predict

import "slices"

// Term is one monomial of the polynomial basis, given as the feature indices
// multiplied together. The empty term is the bias.
type Term []int

// Degree returns the total degree of the monomial.
func (t Term) Degree() int {
	return len(t)
}

// PolynomialTerms returns the full polynomial basis over n features up to degree:
// the bias, every feature, and every product of features with repetition. Terms are
// ordered by degree, then lexicographically by feature index.
func PolynomialTerms(n, degree int) []Term {
	terms := []Term{{}}
	for d := 1; d <= degree; d++ {
		terms = append(terms, combinationsWithReplacement(n, d)...)
	}
	return terms
}

func combinationsWithReplacement(n, k int) []Term {
	var out []Term
	combo := make(Term, k)
	var walk func(pos, start int)
	walk = func(pos, start int) {
		if pos == k {
			out = append(out, slices.Clone(combo))
			return
		}
		for i := start; i < n; i++ {
			combo[pos] = i
			walk(pos+1, i)
		}
	}
	walk(0, 0)
	return out
}

// Expand evaluates every term at x.
func Expand(x []float64, terms []Term) []float64 {
	out := make([]float64, len(terms))
	for j, t := range terms {
		v := 1.0
		for _, idx := range t {
			v *= x[idx]
		}
		out[j] = v
	}
	return out
}
