package predict

import (
	"errors"
	"fmt"
	"math"

	"github.com/huangsam/babscore/schema"
	"gonum.org/v1/gonum/mat"
)

// Options controls the polynomial expansion and the regularization strength.
type Options struct {
	FeatureSet schema.FeatureSet
	Degree     int
	Lambda     float64
}

// DefaultOptions returns the degree-3, lambda=0.1 configuration for a feature set.
func DefaultOptions(fs schema.FeatureSet) Options {
	return Options{FeatureSet: fs, Degree: schema.DefaultPolyDegree, Lambda: schema.DefaultRidgeLambda}
}

// Validate checks the options are usable for a fit.
func (o Options) Validate() error {
	if _, ok := schema.ValidFeatureSets[o.FeatureSet]; !ok {
		return fmt.Errorf("invalid feature set %q", o.FeatureSet)
	}
	if o.Degree < 1 {
		return fmt.Errorf("polynomial degree must be >= 1, got %d", o.Degree)
	}
	if !(o.Lambda >= 0) || math.IsInf(o.Lambda, 0) {
		return fmt.Errorf("ridge lambda must be a finite number >= 0, got %g", o.Lambda)
	}
	return nil
}

// Model is a fitted ridge regression over a polynomial basis.
// The basis is centered on the training means and the intercept is not penalized.
// With only a handful of training rows the fit mostly interpolates the training data;
// predictions away from those rows are extrapolations and can be far off.
type Model struct {
	opts      Options
	terms     []Term    // Full basis including the bias term
	means     []float64 // Training mean of every non-bias term
	weights   []float64 // Weight of every non-bias term
	intercept float64   // Training mean of the target
	rows      int
	cond      float64 // Condition number estimate of the solved system
}

// Fit trains a model on the records, using realized_weeks as the target.
//
// With at least as many rows as basis terms the primal system (XᵀX + λI)w = Xᵀy is
// solved; otherwise the dual system (XXᵀ + λI)a = y with w = Xᵀa. The dual case
// needs λ > 0 since XXᵀ is singular once centered. Both systems are solved by
// Cholesky factorization and a failed factorization is reported as a FitError.
func Fit(records []schema.ChapterRecord, opts Options) (*Model, error) {
	if err := opts.Validate(); err != nil {
		return nil, &schema.FitError{Reason: "invalid options", Rows: len(records), Err: err}
	}

	cols := opts.FeatureSet.Columns()
	terms := PolynomialTerms(len(cols), opts.Degree)
	basis := terms[1:]
	n, p := len(records), len(basis)

	if n == 0 {
		return nil, &schema.FitError{Reason: "no training rows", Rows: n, Terms: len(terms)}
	}
	if n < 2 {
		return nil, &schema.FitError{Reason: "at least 2 training rows are required", Rows: n, Terms: len(terms)}
	}
	if opts.Lambda == 0 && n <= p {
		return nil, &schema.FitError{Reason: "lambda must be > 0 when rows do not exceed terms", Rows: n, Terms: len(terms)}
	}

	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return nil, &schema.FitError{Reason: "invalid training row", Rows: n, Terms: len(terms), Err: err}
		}
		x.SetRow(i, Expand(schema.FeatureVectorOf(rec).Values(opts.FeatureSet), basis))
		y.SetVec(i, rec.RealizedWeeks)
	}

	means := make([]float64, p)
	for j := range p {
		means[j] = mat.Sum(x.ColView(j)) / float64(n)
		for i := range n {
			x.Set(i, j, x.At(i, j)-means[j])
		}
	}
	yMean := mat.Sum(y) / float64(n)
	for i := range n {
		y.SetVec(i, y.AtVec(i)-yMean)
	}

	w, cond, err := solveRidge(x, y, opts.Lambda)
	if err != nil {
		return nil, &schema.FitError{Reason: "regularized solve failed", Rows: n, Terms: len(terms), Err: err}
	}

	return &Model{
		opts:      opts,
		terms:     terms,
		means:     means,
		weights:   w,
		intercept: yMean,
		rows:      n,
		cond:      cond,
	}, nil
}

func solveRidge(x *mat.Dense, y *mat.VecDense, lambda float64) ([]float64, float64, error) {
	n, p := x.Dims()

	var gram mat.SymDense
	var rhs mat.VecDense
	primal := n > p
	if primal {
		gram.SymOuterK(1, x.T())
		rhs.MulVec(x.T(), y)
	} else {
		gram.SymOuterK(1, x)
		rhs.CloneFromVec(y)
	}
	size := gram.SymmetricDim()
	for i := range size {
		gram.SetSym(i, i, gram.At(i, i)+lambda)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(&gram); !ok {
		return nil, 0, errors.New("matrix is not positive definite")
	}

	var sol mat.VecDense
	if err := chol.SolveVecTo(&sol, &rhs); err != nil {
		var condErr mat.Condition
		if !errors.As(err, &condErr) {
			return nil, 0, err
		}
	}

	if primal {
		return sol.RawVector().Data, chol.Cond(), nil
	}
	var w mat.VecDense
	w.MulVec(x.T(), &sol)
	return w.RawVector().Data, chol.Cond(), nil
}

// Predict returns the predicted realized_weeks for each input, in input order.
func (m *Model) Predict(inputs []schema.FeatureVector) []float64 {
	out := make([]float64, len(inputs))
	for i, v := range inputs {
		out[i] = m.PredictOne(v)
	}
	return out
}

// PredictOne returns the predicted realized_weeks for a single input.
func (m *Model) PredictOne(v schema.FeatureVector) float64 {
	phi := Expand(v.Values(m.opts.FeatureSet), m.terms[1:])
	pred := m.intercept
	for j, w := range m.weights {
		pred += (phi[j] - m.means[j]) * w
	}
	return pred
}

// Options returns the options the model was fitted with.
func (m *Model) Options() Options {
	return m.opts
}

// Terms returns the number of basis terms including the bias.
func (m *Model) Terms() int {
	return len(m.terms)
}

// Rows returns the number of training rows.
func (m *Model) Rows() int {
	return m.rows
}

// Cond returns the condition number estimate of the solved system.
func (m *Model) Cond() float64 {
	return m.cond
}

// Result packages a single prediction for output writers.
func (m *Model) Result(v schema.FeatureVector) schema.PredictionResult {
	return schema.PredictionResult{
		Inputs:         v,
		FeatureSet:     m.opts.FeatureSet,
		PredictedWeeks: m.PredictOne(v),
		TrainingRows:   m.rows,
		Terms:          len(m.terms),
		Degree:         m.opts.Degree,
		Lambda:         m.opts.Lambda,
	}
}
