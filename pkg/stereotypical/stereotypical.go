// Package stereotypical measures the global association between two
// components. Each metric maps a ContingencyTable to a scalar where higher
// means knowing one component tells more about the other.
//
// Every metric requires at least two populated categories on each axis and
// returns ErrDegenerateAssociation otherwise: association with a constant is
// undefined, not zero.
package stereotypical

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/mesh-intelligence/biasmetrics/pkg/tabulate"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// Metric maps a contingency table to a score. Metrics are pure functions.
type Metric func(t *types.ContingencyTable) (float64, error)

// Evaluate tabulates components x and y over t and applies m.
func Evaluate(t types.Table, x, y types.Component, m Metric) (float64, error) {
	ct, err := tabulate.Contingency(t, x, y)
	if err != nil {
		return 0, err
	}
	return m(ct)
}

func checkAssociation(t *types.ContingencyTable) error {
	if t == nil {
		return types.ErrDegenerateAssociation
	}
	r, c := t.PopulatedShape()
	if r < 2 || c < 2 {
		return fmt.Errorf("%w: %d×%d populated categories", types.ErrDegenerateAssociation, r, c)
	}
	return nil
}

// chiSquare sums (O−E)²/E over cells with E > 0. The caller has already
// checked the table.
func chiSquare(t *types.ContingencyTable) float64 {
	r, c := t.Shape()
	sum := 0.0
	for i := range r {
		for j := range c {
			e := t.Expected(i, j)
			if e <= 0 {
				continue
			}
			d := float64(t.Count(i, j)) - e
			sum += d * d / e
		}
	}
	return sum
}

// ChiSquare is Pearson's χ² statistic against the independence-expected
// table E(i,j) = row_i · col_j / n.
func ChiSquare(t *types.ContingencyTable) (float64, error) {
	if err := checkAssociation(t); err != nil {
		return 0, err
	}
	return chiSquare(t), nil
}

// CramersV is √((χ²/n) / min(r−1, c−1)), in [0, 1]. No bias correction is
// applied.
func CramersV(t *types.ContingencyTable) (float64, error) {
	if err := checkAssociation(t); err != nil {
		return 0, err
	}
	r, c := t.PopulatedShape()
	phi2 := chiSquare(t) / float64(t.Total())
	return math.Min(1, math.Sqrt(phi2/float64(min(r-1, c-1)))), nil
}

// TschuprowsT is √((χ²/n) / √((r−1)(c−1))). It equals Cramér's V on square
// tables and is smaller otherwise.
func TschuprowsT(t *types.ContingencyTable) (float64, error) {
	if err := checkAssociation(t); err != nil {
		return 0, err
	}
	r, c := t.PopulatedShape()
	phi2 := chiSquare(t) / float64(t.Total())
	return math.Min(1, math.Sqrt(phi2/math.Sqrt(float64((r-1)*(c-1))))), nil
}

// PearsonsC is the contingency coefficient √(χ² / (χ² + n)).
func PearsonsC(t *types.ContingencyTable) (float64, error) {
	if err := checkAssociation(t); err != nil {
		return 0, err
	}
	chi2 := chiSquare(t)
	return math.Sqrt(chi2 / (chi2 + float64(t.Total()))), nil
}

// mutualInformation sums p(i,j) ln(p(i,j) / (p(i)p(j))) over populated
// cells. The ratio is formed from counts so independent cells give exactly
// zero.
func mutualInformation(t *types.ContingencyTable) float64 {
	r, c := t.Shape()
	n := float64(t.Total())
	mi := 0.0
	for i := range r {
		for j := range c {
			o := t.Count(i, j)
			if o == 0 {
				continue
			}
			ratio := float64(o) * n / (float64(t.RowTotal(i)) * float64(t.ColTotal(j)))
			mi += float64(o) / n * math.Log(ratio)
		}
	}
	return math.Max(0, mi)
}

func entropy(counts []int, n int) float64 {
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / float64(n)
		h -= p * math.Log(p)
	}
	return h
}

func rowEntropy(t *types.ContingencyTable) float64 {
	return entropy(t.RowMarginal().Counts(), t.Total())
}

func colEntropy(t *types.ContingencyTable) float64 {
	return entropy(t.ColMarginal().Counts(), t.Total())
}

func jointEntropy(t *types.ContingencyTable) float64 {
	r, c := t.Shape()
	counts := make([]int, 0, r*c)
	for i := range r {
		for j := range c {
			counts = append(counts, t.Count(i, j))
		}
	}
	return entropy(counts, t.Total())
}

// MutualInformation is I(X;Y) in nats. It is zero exactly when the table
// equals its independence-expected table.
func MutualInformation(t *types.ContingencyTable) (float64, error) {
	if err := checkAssociation(t); err != nil {
		return 0, err
	}
	return mutualInformation(t), nil
}

// NMI is mutual information normalised by the joint entropy H(X,Y), in
// [0, 1].
func NMI(t *types.ContingencyTable) (float64, error) {
	if err := checkAssociation(t); err != nil {
		return 0, err
	}
	return math.Min(1, mutualInformation(t)/jointEntropy(t)), nil
}

// TheilsU is the uncertainty coefficient U(X|Y) = I(X;Y) / H(X): the share
// of the row component's entropy explained by the column component.
func TheilsU(t *types.ContingencyTable) (float64, error) {
	if err := checkAssociation(t); err != nil {
		return 0, err
	}
	return math.Min(1, mutualInformation(t)/rowEntropy(t)), nil
}

// TheilsUReverse is TheilsU with the axes swapped, I(X;Y) / H(Y).
func TheilsUReverse(t *types.ContingencyTable) (float64, error) {
	if err := checkAssociation(t); err != nil {
		return 0, err
	}
	return math.Min(1, mutualInformation(t)/colEntropy(t)), nil
}

// ChiSquarePValue is the upper-tail probability of the χ² statistic with
// (r−1)(c−1) degrees of freedom over the populated categories.
func ChiSquarePValue(t *types.ContingencyTable) (float64, error) {
	if err := checkAssociation(t); err != nil {
		return 0, err
	}
	r, c := t.PopulatedShape()
	dof := float64((r - 1) * (c - 1))
	return chiSquareSurvival(chiSquare(t), dof), nil
}

// chiSquareSurvival returns P(X > x) for X ~ χ²(dof).
func chiSquareSurvival(x, dof float64) float64 {
	if x <= 0 {
		return 1
	}
	return distuv.ChiSquared{K: dof}.Survival(x)
}
