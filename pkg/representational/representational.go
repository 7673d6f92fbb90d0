// Package representational measures how evenly a population is spread over
// the categories of one component. Each metric maps a Distribution to a
// scalar; the registries group them under their usual symbols.
//
// Notation: n is the total count, k the number of populated categories and
// p_i = count_i / n. Absent categories contribute nothing to any sum.
package representational

import (
	"fmt"
	"math"
	"slices"

	"github.com/mesh-intelligence/biasmetrics/pkg/tabulate"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// Metric maps a distribution to a score. Metrics are pure functions.
type Metric func(d *types.Distribution) (float64, error)

// Evaluate tabulates component c over t and applies m.
func Evaluate(t types.Table, c types.Component, m Metric) (float64, error) {
	d, err := tabulate.Distribution(t, c)
	if err != nil {
		return 0, err
	}
	return m(d)
}

// proportions returns p_i for the populated categories, or
// ErrDegenerateDistribution when there are none.
func proportions(d *types.Distribution) ([]float64, error) {
	if d == nil || d.Populated() == 0 {
		return nil, types.ErrDegenerateDistribution
	}
	return d.Proportions(), nil
}

func uniform(d *types.Distribution) bool {
	counts := d.PopulatedCounts()
	for _, c := range counts[1:] {
		if c != counts[0] {
			return false
		}
	}
	return true
}

// Richness is R, the number of combinations the component can form: the
// product over its columns of the distinct values observed in that column.
// R counts possible, not observed, combinations, so an age×gender component
// seeing {a,b}×{M,F} has R = 4 even when only (a,M) and (b,F) occur. For a
// single column R equals the number of populated categories.
func Richness(d *types.Distribution) (float64, error) {
	if _, err := proportions(d); err != nil {
		return 0, err
	}
	var seen []map[string]struct{}
	for i := range d.Len() {
		if d.Count(i) == 0 {
			continue
		}
		values := d.Category(i).Values()
		if seen == nil {
			seen = make([]map[string]struct{}, len(values))
			for j := range seen {
				seen[j] = make(map[string]struct{})
			}
		}
		for j, v := range values {
			seen[j][v] = struct{}{}
		}
	}
	r := 1
	for _, s := range seen {
		r *= len(s)
	}
	return float64(r), nil
}

// Entropy is the Shannon entropy H = −Σ p_i ln p_i, in nats. It is 0 for a
// single category.
func Entropy(d *types.Distribution) (float64, error) {
	p, err := proportions(d)
	if err != nil {
		return 0, err
	}
	if len(p) == 1 {
		return 0, nil
	}
	h := 0.0
	for _, pi := range p {
		h -= pi * math.Log(pi)
	}
	return h, nil
}

// TrueDiversity returns the Hill number of order q: (Σ p_i^q)^(1/(1−q)),
// with the q → 1 limit exp(H). Order 0 counts the populated categories, 1
// is ENS and 2 is Simpson's reciprocal. A uniform distribution yields
// exactly k for every order.
func TrueDiversity(q float64) Metric {
	return func(d *types.Distribution) (float64, error) {
		p, err := proportions(d)
		if err != nil {
			return 0, err
		}
		if uniform(d) {
			return float64(len(p)), nil
		}
		if q == 1 {
			h, err := Entropy(d)
			if err != nil {
				return 0, err
			}
			return math.Exp(h), nil
		}
		s := 0.0
		for _, pi := range p {
			s += math.Pow(pi, q)
		}
		return math.Pow(s, 1/(1-q)), nil
	}
}

// ENS is the effective number of species, exp(H): the number of equally
// sized categories with the same entropy. It ranges from 1 to k.
func ENS(d *types.Distribution) (float64, error) {
	return TrueDiversity(1)(d)
}

// Simpson is Simpson's index D = Σ p_i², the chance that two draws with
// replacement share a category.
func Simpson(d *types.Distribution) (float64, error) {
	p, err := proportions(d)
	if err != nil {
		return 0, err
	}
	s := 0.0
	for _, pi := range p {
		s += pi * pi
	}
	return s, nil
}

// SimpsonReciprocal is 1/D, the true diversity of order 2.
func SimpsonReciprocal(d *types.Distribution) (float64, error) {
	return TrueDiversity(2)(d)
}

// GiniSimpson is 1 − D, in [0, 1 − 1/k].
func GiniSimpson(d *types.Distribution) (float64, error) {
	s, err := Simpson(d)
	if err != nil {
		return 0, err
	}
	return 1 - s, nil
}

// Evenness is the Shannon evenness index H / ln k. It is NaN for a single
// category, where both terms vanish.
func Evenness(d *types.Distribution) (float64, error) {
	h, err := Entropy(d)
	if err != nil {
		return 0, err
	}
	k := d.Populated()
	if k == 1 {
		return math.NaN(), nil
	}
	return h / math.Log(float64(k)), nil
}

// NSD is the normalised standard deviation of the proportions,
// σ(p)·k/√(k−1) with the population standard deviation. It is 0 for a
// uniform distribution and NaN for a single category.
func NSD(d *types.Distribution) (float64, error) {
	p, err := proportions(d)
	if err != nil {
		return 0, err
	}
	k := float64(len(p))
	if len(p) == 1 {
		return math.NaN(), nil
	}
	mean := 1 / k
	v := 0.0
	for _, pi := range p {
		v += (pi - mean) * (pi - mean)
	}
	return math.Sqrt(v/k) * k / math.Sqrt(k-1), nil
}

// ImbalanceRatio is the largest count divided by the smallest populated one.
func ImbalanceRatio(d *types.Distribution) (float64, error) {
	if _, err := proportions(d); err != nil {
		return 0, err
	}
	counts := d.PopulatedCounts()
	return float64(slices.Max(counts)) / float64(slices.Min(counts)), nil
}

// BergerParker is the share of the most common category, max count / n.
func BergerParker(d *types.Distribution) (float64, error) {
	p, err := proportions(d)
	if err != nil {
		return 0, err
	}
	return slices.Max(p), nil
}

// Reciprocal wraps m as 1/m.
func Reciprocal(m Metric) Metric {
	return func(d *types.Distribution) (float64, error) {
		v, err := m(d)
		if err != nil {
			return 0, err
		}
		return 1 / v, nil
	}
}

// Complementary wraps m as limit − m, where limit is evaluated on the same
// distribution.
func Complementary(m, limit Metric) Metric {
	return func(d *types.Distribution) (float64, error) {
		l, err := limit(d)
		if err != nil {
			return 0, fmt.Errorf("complementary limit: %w", err)
		}
		v, err := m(d)
		if err != nil {
			return 0, err
		}
		return l - v, nil
	}
}

// Constant returns a metric that always yields v; it is the usual limit for
// Complementary.
func Constant(v float64) Metric {
	return func(*types.Distribution) (float64, error) { return v, nil }
}
