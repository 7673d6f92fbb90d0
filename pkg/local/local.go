// Package local breaks the association between two components down per
// category pair. Every metric returns a matrix aligned with the contingency
// table's axes: rows are categories of the first component, columns of the
// second, labelled with Category.String.
package local

import (
	"math"

	"github.com/mesh-intelligence/biasmetrics/pkg/tabulate"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// Metric maps a contingency table to a per-cell score matrix.
type Metric func(t *types.ContingencyTable) (*types.LabeledMatrix, error)

// Evaluate tabulates components x and y over t and applies m.
func Evaluate(t types.Table, x, y types.Component, m Metric) (*types.LabeledMatrix, error) {
	ct, err := tabulate.Contingency(t, x, y)
	if err != nil {
		return nil, err
	}
	return m(ct)
}

// cell carries the probabilities of one (i, j) pair.
type cell struct {
	joint float64 // p(i,j)
	row   float64 // p(i)
	col   float64 // p(j)
	// excess is p(i,j) − p(i)p(j), formed from counts so that an exactly
	// independent cell is exactly zero.
	excess float64
}

// cellwise evaluates score for every cell of t. An empty table has no
// probabilities and is rejected with ErrEmptyTable.
func cellwise(t *types.ContingencyTable, score func(cell) float64) (*types.LabeledMatrix, error) {
	if t == nil || t.Total() == 0 {
		return nil, types.ErrEmptyTable
	}
	r, c := t.Shape()
	m := types.NewLabeledMatrix(types.Labels(t.Rows()), types.Labels(t.Cols()))
	n := float64(t.Total())
	for i := range r {
		for j := range c {
			o := float64(t.Count(i, j))
			rt, ct := float64(t.RowTotal(i)), float64(t.ColTotal(j))
			v := score(cell{
				joint:  o / n,
				row:    rt / n,
				col:    ct / n,
				excess: (o*n - rt*ct) / (n * n),
			})
			if err := m.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func pmi(x cell) float64 {
	if x.joint == 0 || x.excess == 0 {
		return 0
	}
	return math.Log(x.joint / (x.row * x.col))
}

// PMI is the pointwise mutual information ln(p(i,j) / (p(i)p(j))). Cells
// that never co-occur score 0: no observation, no local signal.
func PMI(t *types.ContingencyTable) (*types.LabeledMatrix, error) {
	return cellwise(t, pmi)
}

// NPMI normalises PMI by −ln p(i,j), bounding every cell to [−1, 1]. Cells
// with p(i,j) = 0 score 0, as do cells holding every observation.
func NPMI(t *types.ContingencyTable) (*types.LabeledMatrix, error) {
	return cellwise(t, func(x cell) float64 {
		if x.joint == 0 || x.joint == 1 {
			return 0
		}
		return clamp(pmi(x)/-math.Log(x.joint), -1, 1)
	})
}

// LewontinsD is the linkage disequilibrium p(i,j) − p(i)p(j).
func LewontinsD(t *types.ContingencyTable) (*types.LabeledMatrix, error) {
	return cellwise(t, func(x cell) float64 { return x.excess })
}

// DuchersZ rescales Lewontin's D by its attainable extreme given the
// marginals: min(p(i), p(j)) − p(i)p(j) for positive association and
// p(i)p(j) − max(0, p(i)+p(j)−1) for negative. The result lies in [−1, 1].
func DuchersZ(t *types.ContingencyTable) (*types.LabeledMatrix, error) {
	return cellwise(t, func(x cell) float64 {
		expected := x.row * x.col
		var den float64
		switch {
		case x.excess > 0:
			den = math.Min(x.row, x.col) - expected
		case x.excess < 0:
			den = expected - math.Max(0, x.row+x.col-1)
		default:
			return 0
		}
		if den <= 0 {
			return 0
		}
		return clamp(x.excess/den, -1, 1)
	})
}
