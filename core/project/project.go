// Package project reduces a standardized feature matrix to its top two principal directions.
package project

import (
	"errors"
	"fmt"
	"math"

	"github.com/huangsam/babscore/schema"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Components is the number of principal directions kept.
const Components = 2

// Project standardizes each column of rows to zero mean and unit population variance,
// then projects the rows onto the top two principal directions. Columns without
// variance are left at zero. Each direction is signed so that its largest loading
// is positive. The directions depend only on the given rows and are unstable when
// there are few rows relative to columns.
func Project(names, columns []string, rows [][]float64) (schema.Projection, error) {
	n, k := len(rows), len(columns)
	if n < 2 {
		return schema.Projection{}, fmt.Errorf("projection requires at least 2 rows, got %d", n)
	}
	if k < 2 {
		return schema.Projection{}, fmt.Errorf("projection requires at least 2 columns, got %d", k)
	}
	if len(names) != n {
		return schema.Projection{}, fmt.Errorf("got %d names for %d rows", len(names), n)
	}

	z := mat.NewDense(n, k, nil)
	for i, row := range rows {
		if len(row) != k {
			return schema.Projection{}, fmt.Errorf("row %q has %d values, expected %d", names[i], len(row), k)
		}
		z.SetRow(i, row)
	}
	col := make([]float64, n)
	for j := range k {
		mat.Col(col, j, z)
		mean, std := stat.PopMeanStdDev(col, nil)
		for i := range n {
			if std > 0 {
				z.Set(i, j, (col[i]-mean)/std)
			} else {
				z.Set(i, j, 0)
			}
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(z, mat.SVDThin); !ok {
		return schema.Projection{}, errors.New("singular value decomposition failed")
	}
	values := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	total := 0.0
	for _, s := range values {
		total += s * s
	}
	if total == 0 {
		return schema.Projection{}, errors.New("projection requires at least one column with variance")
	}

	out := schema.Projection{Columns: columns, Points: make([]schema.ProjectedPoint, n)}
	for c := range Components {
		loadings := make([]float64, k)
		if c < len(values) {
			mat.Col(loadings, c, &v)
			orient(loadings)
			out.ExplainedVarianceRatio[c] = values[c] * values[c] / total
		}
		out.Loadings[c] = loadings
	}

	for i := range n {
		row := z.RawRowView(i)
		out.Points[i] = schema.ProjectedPoint{
			Name: names[i],
			PC1:  floats.Dot(row, out.Loadings[0]),
			PC2:  floats.Dot(row, out.Loadings[1]),
		}
	}
	return out, nil
}

// ProjectChapters projects scored chapters over the named fields. Rows where any
// field is undefined are skipped and listed on the result.
func ProjectChapters(results []schema.ChapterResult, columns []string) (schema.Projection, error) {
	if len(columns) == 0 {
		columns = schema.DefaultProjectionColumns
	}

	var names, skipped []string
	var rows [][]float64
	for _, r := range results {
		row := make([]float64, len(columns))
		ok := true
		for j, c := range columns {
			v, defined := r.FieldValue(c)
			if !defined {
				if !isKnownChapterField(c) {
					return schema.Projection{}, fmt.Errorf("unknown projection column %q", c)
				}
				ok = false
				break
			}
			row[j] = v
		}
		if !ok {
			skipped = append(skipped, r.Name)
			continue
		}
		names = append(names, r.Name)
		rows = append(rows, row)
	}

	proj, err := Project(names, columns, rows)
	if err != nil {
		return schema.Projection{}, err
	}
	proj.Source = schema.ChapterSource
	proj.Skipped = skipped
	return proj, nil
}

// ProjectRCA projects the factor table of an RCA result.
func ProjectRCA(result schema.RCAResult) (schema.Projection, error) {
	names := make([]string, len(result.Contributions))
	rows := make([][]float64, len(result.Contributions))
	for i, c := range result.Contributions {
		names[i] = c.Label
		rows[i] = []float64{c.CI, c.CV, c.IC, c.TimePeriod, c.Contribution}
	}
	proj, err := Project(names, schema.RCAProjectionColumns, rows)
	if err != nil {
		return schema.Projection{}, err
	}
	proj.Source = schema.RCASource
	return proj, nil
}

func isKnownChapterField(name string) bool {
	switch name {
	case schema.FieldEOR, schema.FieldDelayImpactPct, schema.FieldKE, schema.FieldIKK:
		return true
	}
	_, ok := schema.ChapterResult{}.FieldValue(name)
	return ok
}

// orient flips the sign of a direction so that its largest absolute loading is positive.
func orient(loadings []float64) {
	maxIdx := 0
	for i, l := range loadings {
		if math.Abs(l) > math.Abs(loadings[maxIdx]) {
			maxIdx = i
		}
	}
	if loadings[maxIdx] < 0 {
		for i := range loadings {
			loadings[i] = -loadings[i]
		}
	}
}
