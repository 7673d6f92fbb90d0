package types

import "fmt"

// Distribution maps each category of one component to the number of rows
// that resolve to it. Categories keep the order they were first seen in.
// Zero counts only appear when a caller asked for a category explicitly.
type Distribution struct {
	categories []Category
	counts     []int
	index      map[string]int
	total      int
}

// NewDistribution builds a Distribution from parallel slices of categories
// and counts. Returns ErrDimensionMismatch when the lengths differ,
// ErrNegativeCount for a negative count and ErrDuplicateCategory when a
// category is listed twice.
func NewDistribution(categories []Category, counts []int) (*Distribution, error) {
	if len(categories) != len(counts) {
		return nil, fmt.Errorf("distribution: %d categories, %d counts: %w", len(categories), len(counts), ErrDimensionMismatch)
	}
	d := &Distribution{
		categories: make([]Category, len(categories)),
		counts:     make([]int, len(counts)),
		index:      make(map[string]int, len(categories)),
	}
	for i, c := range categories {
		if counts[i] < 0 {
			return nil, fmt.Errorf("distribution: category %s: %w", c, ErrNegativeCount)
		}
		if _, dup := d.index[c.Key()]; dup {
			return nil, fmt.Errorf("distribution: category %s: %w", c, ErrDuplicateCategory)
		}
		d.index[c.Key()] = i
		d.categories[i] = c
		d.counts[i] = counts[i]
		d.total += counts[i]
	}
	return d, nil
}

// Len returns the number of categories, including explicit zero entries.
func (d *Distribution) Len() int { return len(d.categories) }

// Total returns the sum of all counts.
func (d *Distribution) Total() int { return d.total }

// Category returns the i-th category.
func (d *Distribution) Category(i int) Category { return d.categories[i] }

// Categories returns a copy of the categories in distribution order.
func (d *Distribution) Categories() []Category {
	out := make([]Category, len(d.categories))
	copy(out, d.categories)
	return out
}

// Count returns the count of the i-th category.
func (d *Distribution) Count(i int) int { return d.counts[i] }

// Counts returns a copy of the counts in distribution order.
func (d *Distribution) Counts() []int {
	out := make([]int, len(d.counts))
	copy(out, d.counts)
	return out
}

// CountOf returns the count for c, or 0 if c is not in the distribution.
func (d *Distribution) CountOf(c Category) int {
	if i, ok := d.index[c.Key()]; ok {
		return d.counts[i]
	}
	return 0
}

// Populated returns k, the number of categories with a positive count.
func (d *Distribution) Populated() int {
	k := 0
	for _, n := range d.counts {
		if n > 0 {
			k++
		}
	}
	return k
}

// Proportions returns count/total for every populated category, in
// distribution order. Categories with zero count are skipped.
func (d *Distribution) Proportions() []float64 {
	p := make([]float64, 0, len(d.counts))
	if d.total == 0 {
		return p
	}
	n := float64(d.total)
	for _, c := range d.counts {
		if c > 0 {
			p = append(p, float64(c)/n)
		}
	}
	return p
}

// PopulatedCounts returns the positive counts in distribution order.
func (d *Distribution) PopulatedCounts() []int {
	out := make([]int, 0, len(d.counts))
	for _, c := range d.counts {
		if c > 0 {
			out = append(out, c)
		}
	}
	return out
}
