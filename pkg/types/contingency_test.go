package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContingencyTableMarginals(t *testing.T) {
	ct, err := NewContingencyTable(cats("M", "F"), cats("happy", "sad", "angry"), [][]int{
		{3, 1, 0},
		{1, 2, 1},
	})
	require.NoError(t, err)

	r, c := ct.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 8, ct.Total())
	assert.Equal(t, 4, ct.RowTotal(0))
	assert.Equal(t, 4, ct.RowTotal(1))
	assert.Equal(t, 1, ct.ColTotal(2))
	assert.InDelta(t, 2.0, ct.Expected(0, 0), 1e-12)
	assert.InDelta(t, 0.5, ct.Expected(1, 2), 1e-12)

	assert.Equal(t, []int{4, 4}, ct.RowMarginal().Counts())
	assert.Equal(t, []int{4, 3, 1}, ct.ColMarginal().Counts())
	assert.Equal(t, ct.Total(), ct.RowMarginal().Total())
	assert.Equal(t, ct.Total(), ct.ColMarginal().Total())
}

func TestContingencyTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		rows    []Category
		cols    []Category
		counts  [][]int
		wantErr error
	}{
		{"row count mismatch", cats("a", "b"), cats("x"), [][]int{{1}}, ErrDimensionMismatch},
		{"ragged row", cats("a"), cats("x", "y"), [][]int{{1}}, ErrDimensionMismatch},
		{"negative cell", cats("a"), cats("x"), [][]int{{-1}}, ErrNegativeCount},
		{"duplicate row", cats("a", "a"), cats("x"), [][]int{{1}, {1}}, ErrDuplicateCategory},
		{"duplicate col", cats("a"), cats("x", "x"), [][]int{{1, 1}}, ErrDuplicateCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContingencyTable(tt.rows, tt.cols, tt.counts)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestContingencyTablePopulatedShape(t *testing.T) {
	ct, err := NewContingencyTable(cats("a", "b", "c"), cats("x", "y"), [][]int{
		{1, 0},
		{0, 0},
		{2, 0},
	})
	require.NoError(t, err)
	r, c := ct.PopulatedShape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 1, c)
}

func TestContingencyTableTranspose(t *testing.T) {
	ct, err := NewContingencyTable(cats("M", "F"), cats("happy", "sad", "angry"), [][]int{
		{3, 1, 0},
		{1, 2, 1},
	})
	require.NoError(t, err)

	tr := ct.Transpose()
	r, c := tr.Shape()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)
	assert.Equal(t, [][]int{{3, 1}, {1, 2}, {0, 1}}, tr.Grid())
	assert.Equal(t, []string{"happy", "sad", "angry"}, Labels(tr.Rows()))
	assert.Equal(t, ct.ColTotal(1), tr.RowTotal(1))
	assert.Equal(t, ct.Grid(), tr.Transpose().Grid())
}

func TestContingencyTableSorted(t *testing.T) {
	ct, err := NewContingencyTable(cats("b", "a"), cats("y", "x"), [][]int{
		{1, 2},
		{3, 4},
	})
	require.NoError(t, err)

	s := ct.Sorted()
	assert.Equal(t, []string{"a", "b"}, Labels(s.Rows()))
	assert.Equal(t, []string{"x", "y"}, Labels(s.Cols()))
	assert.Equal(t, [][]int{{4, 3}, {2, 1}}, s.Grid())
	assert.Equal(t, 7, s.RowTotal(0))
	assert.Equal(t, 6, s.ColTotal(0))

	// the original is untouched
	assert.Equal(t, []string{"b", "a"}, Labels(ct.Rows()))
}

func TestContingencyTableSortedTuples(t *testing.T) {
	rows := []Category{NewCategory("a", "2"), NewCategory("a", "10"), NewCategory("A", "9")}
	ct, err := NewContingencyTable(rows, cats("x"), [][]int{{1}, {2}, {3}})
	require.NoError(t, err)

	s := ct.Sorted()
	assert.Equal(t, []string{"(A, 9)", "(a, 10)", "(a, 2)"}, Labels(s.Rows()))
	assert.Equal(t, [][]int{{3}, {2}, {1}}, s.Grid())
}
