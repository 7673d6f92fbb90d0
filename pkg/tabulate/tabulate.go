// Package tabulate resolves components against a table and counts the
// resulting categories, producing the Distribution and ContingencyTable
// inputs consumed by the metric packages.
//
// A missing or empty cell is a category like any other. Dropping such rows
// would change the very proportions being measured, so callers that want
// them gone must filter the table first.
package tabulate

import (
	"fmt"

	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// Resolve returns the category of every row of t under component c, in row
// order. Rows with identical values for the named columns share one
// Category. Returns ErrEmptyComponent or ErrUnknownColumn.
func Resolve(t types.Table, c types.Component) ([]types.Category, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cols := make([][]string, len(c))
	for i, name := range c {
		col, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", c, err)
		}
		cols[i] = col
	}

	n := t.NumRows()
	out := make([]types.Category, n)
	seen := make(map[string]types.Category)
	tuple := make([]string, len(cols))
	for row := 0; row < n; row++ {
		for i, col := range cols {
			tuple[i] = col[row]
		}
		cat := types.NewCategory(tuple...)
		if prev, ok := seen[cat.Key()]; ok {
			cat = prev
		} else {
			seen[cat.Key()] = cat
		}
		out[row] = cat
	}
	return out, nil
}

// Option adjusts how a distribution is tabulated.
type Option func(*options)

type options struct {
	include [][]string
}

// WithCategories makes the given value tuples appear in the result even when
// no row has them, with a count of zero. Tuples already present keep their
// first-appearance position; absent ones are appended in the order given.
func WithCategories(tuples ...[]string) Option {
	return func(o *options) {
		o.include = append(o.include, tuples...)
	}
}

// Distribution counts the categories of component c over every row of t.
// Column errors take precedence; a table with no rows then yields
// ErrEmptyTable.
func Distribution(t types.Table, c types.Component, opts ...Option) (*types.Distribution, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	rows, err := Resolve(t, c)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("tabulate %s: %w", c, types.ErrEmptyTable)
	}

	var tally tally
	for _, cat := range rows {
		tally.add(cat)
	}
	for _, values := range o.include {
		if len(values) != len(c) {
			return nil, fmt.Errorf("tabulate %s: category has %d values, want %d: %w", c, len(values), len(c), types.ErrDimensionMismatch)
		}
		tally.ensure(types.NewCategory(values...))
	}
	return types.NewDistribution(tally.cats, tally.counts)
}

// Contingency cross-tabulates component a (rows) against component b
// (columns) in a single pass over the resolved rows. Returns ErrEmptyTable
// when t has no rows.
func Contingency(t types.Table, a, b types.Component) (*types.ContingencyTable, error) {
	rowCats, err := Resolve(t, a)
	if err != nil {
		return nil, err
	}
	colCats, err := Resolve(t, b)
	if err != nil {
		return nil, err
	}
	if len(rowCats) == 0 {
		return nil, fmt.Errorf("tabulate %s × %s: %w", a, b, types.ErrEmptyTable)
	}

	var rows, cols tally
	cells := make(map[[2]int]int)
	for k := range rowCats {
		i := rows.add(rowCats[k])
		j := cols.add(colCats[k])
		cells[[2]int{i, j}]++
	}

	grid := make([][]int, len(rows.cats))
	for i := range grid {
		grid[i] = make([]int, len(cols.cats))
	}
	for cell, n := range cells {
		grid[cell[0]][cell[1]] = n
	}
	return types.NewContingencyTable(rows.cats, cols.cats, grid)
}

// tally assigns each category an index in order of first appearance.
type tally struct {
	cats   []types.Category
	counts []int
	index  map[string]int
}

func (t *tally) ensure(c types.Category) int {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	i, ok := t.index[c.Key()]
	if !ok {
		i = len(t.cats)
		t.index[c.Key()] = i
		t.cats = append(t.cats, c)
		t.counts = append(t.counts, 0)
	}
	return i
}

func (t *tally) add(c types.Category) int {
	i := t.ensure(c)
	t.counts[i]++
	return i
}
