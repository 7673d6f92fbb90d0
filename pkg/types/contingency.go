package types

import (
	"fmt"
	"slices"
	"sort"
)

// ContingencyTable counts the rows falling in each (category of A,
// category of B) pair. Axis order is first appearance in the data unless the
// table was reordered with Sorted. Counts are stored row-major.
type ContingencyTable struct {
	rows      []Category
	cols      []Category
	counts    []int
	rowTotals []int
	colTotals []int
	total     int
}

// NewContingencyTable builds a table from its axes and an r×c count grid.
// Returns ErrDimensionMismatch when the grid does not match the axes,
// ErrNegativeCount for negative cells and ErrDuplicateCategory when an axis
// repeats a category.
func NewContingencyTable(rows, cols []Category, counts [][]int) (*ContingencyTable, error) {
	if len(counts) != len(rows) {
		return nil, fmt.Errorf("contingency: %d rows, %d count rows: %w", len(rows), len(counts), ErrDimensionMismatch)
	}
	if err := checkAxis(rows); err != nil {
		return nil, fmt.Errorf("contingency rows: %w", err)
	}
	if err := checkAxis(cols); err != nil {
		return nil, fmt.Errorf("contingency cols: %w", err)
	}
	r, c := len(rows), len(cols)
	ct := &ContingencyTable{
		rows:      append([]Category(nil), rows...),
		cols:      append([]Category(nil), cols...),
		counts:    make([]int, r*c),
		rowTotals: make([]int, r),
		colTotals: make([]int, c),
	}
	for i, row := range counts {
		if len(row) != c {
			return nil, fmt.Errorf("contingency: row %d has %d cells, want %d: %w", i, len(row), c, ErrDimensionMismatch)
		}
		for j, n := range row {
			if n < 0 {
				return nil, fmt.Errorf("contingency: cell (%d,%d): %w", i, j, ErrNegativeCount)
			}
			ct.counts[i*c+j] = n
			ct.rowTotals[i] += n
			ct.colTotals[j] += n
			ct.total += n
		}
	}
	return ct, nil
}

func checkAxis(cats []Category) error {
	seen := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		if _, dup := seen[c.Key()]; dup {
			return fmt.Errorf("category %s: %w", c, ErrDuplicateCategory)
		}
		seen[c.Key()] = struct{}{}
	}
	return nil
}

// Shape returns the number of row and column categories.
func (t *ContingencyTable) Shape() (r, c int) { return len(t.rows), len(t.cols) }

// Total returns the number of observations.
func (t *ContingencyTable) Total() int { return t.total }

// Rows returns a copy of the row categories (component A).
func (t *ContingencyTable) Rows() []Category { return append([]Category(nil), t.rows...) }

// Cols returns a copy of the column categories (component B).
func (t *ContingencyTable) Cols() []Category { return append([]Category(nil), t.cols...) }

// Count returns the observed count of cell (i, j).
func (t *ContingencyTable) Count(i, j int) int { return t.counts[i*len(t.cols)+j] }

// RowTotal returns the marginal count of row category i.
func (t *ContingencyTable) RowTotal(i int) int { return t.rowTotals[i] }

// ColTotal returns the marginal count of column category j.
func (t *ContingencyTable) ColTotal(j int) int { return t.colTotals[j] }

// Expected returns the count of cell (i, j) expected under independence,
// rowTotal(i)·colTotal(j)/n. Returns 0 for an empty table.
func (t *ContingencyTable) Expected(i, j int) float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.rowTotals[i]) * float64(t.colTotals[j]) / float64(t.total)
}

// PopulatedShape counts the row and column categories with a positive
// marginal. It differs from Shape only when zero categories were requested.
func (t *ContingencyTable) PopulatedShape() (r, c int) {
	for _, n := range t.rowTotals {
		if n > 0 {
			r++
		}
	}
	for _, n := range t.colTotals {
		if n > 0 {
			c++
		}
	}
	return r, c
}

// RowMarginal returns the distribution of component A.
func (t *ContingencyTable) RowMarginal() *Distribution {
	d, _ := NewDistribution(t.rows, t.rowTotals) // axes were validated on construction
	return d
}

// ColMarginal returns the distribution of component B.
func (t *ContingencyTable) ColMarginal() *Distribution {
	d, _ := NewDistribution(t.cols, t.colTotals)
	return d
}

// Grid returns a copy of the counts as an r×c slice of rows.
func (t *ContingencyTable) Grid() [][]int {
	r, c := t.Shape()
	out := make([][]int, r)
	for i := range out {
		out[i] = append([]int(nil), t.counts[i*c:(i+1)*c]...)
	}
	return out
}

// Transpose swaps the roles of the two components.
func (t *ContingencyTable) Transpose() *ContingencyTable {
	r, c := t.Shape()
	out := &ContingencyTable{
		rows:      append([]Category(nil), t.cols...),
		cols:      append([]Category(nil), t.rows...),
		counts:    make([]int, r*c),
		rowTotals: append([]int(nil), t.colTotals...),
		colTotals: append([]int(nil), t.rowTotals...),
		total:     t.total,
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.counts[j*r+i] = t.counts[i*c+j]
		}
	}
	return out
}

// Sorted returns a copy whose row and column categories are ordered by
// their value tuples, compared element by element.
func (t *ContingencyTable) Sorted() *ContingencyTable {
	rowOrder := labelOrder(t.rows)
	colOrder := labelOrder(t.cols)
	r, c := t.Shape()
	out := &ContingencyTable{
		rows:      make([]Category, r),
		cols:      make([]Category, c),
		counts:    make([]int, r*c),
		rowTotals: make([]int, r),
		colTotals: make([]int, c),
		total:     t.total,
	}
	for ni, oi := range rowOrder {
		out.rows[ni] = t.rows[oi]
		out.rowTotals[ni] = t.rowTotals[oi]
		for nj, oj := range colOrder {
			out.counts[ni*c+nj] = t.counts[oi*c+oj]
		}
	}
	for nj, oj := range colOrder {
		out.cols[nj] = t.cols[oj]
		out.colTotals[nj] = t.colTotals[oj]
	}
	return out
}

func labelOrder(cats []Category) []int {
	idx := make([]int, len(cats))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return slices.Compare(cats[idx[a]].values, cats[idx[b]].values) < 0
	})
	return idx
}
