package local

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/biasmetrics/pkg/dataset"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

const tol = 1e-9

func table(t *testing.T, counts [][]int) *types.ContingencyTable {
	t.Helper()
	rows := make([]types.Category, len(counts))
	for i := range rows {
		rows[i] = types.NewCategory(string(rune('a' + i)))
	}
	var cols []types.Category
	if len(counts) > 0 {
		cols = make([]types.Category, len(counts[0]))
		for j := range cols {
			cols[j] = types.NewCategory(string(rune('x' + j)))
		}
	}
	ct, err := types.NewContingencyTable(rows, cols, counts)
	require.NoError(t, err)
	return ct
}

func TestAssociatedTable(t *testing.T) {
	ct := table(t, [][]int{{3, 1}, {1, 3}})

	tests := []struct {
		name   string
		metric Metric
		want   [][]float64
	}{
		{"pmi", PMI, [][]float64{
			{math.Log(1.5), math.Log(0.5)},
			{math.Log(0.5), math.Log(1.5)},
		}},
		{"npmi", NPMI, [][]float64{
			{math.Log(1.5) / -math.Log(0.375), math.Log(0.5) / -math.Log(0.125)},
			{math.Log(0.5) / -math.Log(0.125), math.Log(1.5) / -math.Log(0.375)},
		}},
		{"lewontin's d", LewontinsD, [][]float64{{0.125, -0.125}, {-0.125, 0.125}}},
		{"ducher's z", DuchersZ, [][]float64{{0.5, -0.5}, {-0.5, 0.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.metric(ct)
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, m.RowLabels())
			assert.Equal(t, []string{"x", "y"}, m.ColLabels())
			got := m.Values()
			for i := range tt.want {
				for j := range tt.want[i] {
					assert.InDelta(t, tt.want[i][j], got[i][j], tol, "cell (%d,%d)", i, j)
				}
			}
		})
	}
}

func TestIndependentTableScoresZero(t *testing.T) {
	ct := table(t, [][]int{{2, 2}, {2, 2}})
	for name, metric := range Metrics().All() {
		m, err := metric(ct)
		require.NoError(t, err)
		for _, row := range m.Values() {
			for _, v := range row {
				assert.Equal(t, 0.0, v, name)
			}
		}
	}
}

func TestOuterProductTablesScoreZero(t *testing.T) {
	tests := []struct {
		name   string
		counts [][]int
	}{
		{"2x3 uneven marginals", [][]int{{1, 2, 3}, {2, 4, 6}}},
		{"3x4 uneven marginals", [][]int{
			{1, 3, 2, 4},
			{2, 6, 4, 8},
			{3, 9, 6, 12},
		}},
	}
	metrics := []struct {
		name   string
		metric Metric
	}{
		{"pmi", PMI},
		{"npmi", NPMI},
		{"lewontin's d", LewontinsD},
		{"ducher's z", DuchersZ},
	}
	for _, tt := range tests {
		ct := table(t, tt.counts)
		for _, m := range metrics {
			t.Run(tt.name+"/"+m.name, func(t *testing.T) {
				got, err := m.metric(ct)
				require.NoError(t, err)
				for i, row := range got.Values() {
					for j, v := range row {
						assert.Equal(t, 0.0, v, "cell (%d,%d)", i, j)
					}
				}
			})
		}
	}
}

func TestZeroCells(t *testing.T) {
	ct := table(t, [][]int{{2, 0}, {0, 2}})

	pmi, err := PMI(ct)
	require.NoError(t, err)
	v, _ := pmi.At(0, 1)
	assert.Equal(t, 0.0, v, "cells that never co-occur carry no local signal")

	npmi, err := NPMI(ct)
	require.NoError(t, err)
	v, _ = npmi.At(0, 1)
	assert.Equal(t, 0.0, v)
	v, _ = npmi.At(0, 0)
	assert.InDelta(t, 1.0, v, tol)

	z, err := DuchersZ(ct)
	require.NoError(t, err)
	v, _ = z.At(0, 1)
	assert.InDelta(t, -1.0, v, tol)
	v, _ = z.At(1, 1)
	assert.InDelta(t, 1.0, v, tol)
}

func TestBounds(t *testing.T) {
	tables := [][][]int{
		{{10, 1, 3}, {2, 7, 1}},
		{{1, 1}, {1, 0}, {0, 5}},
		{{100, 1}, {1, 100}},
		{{3, 3, 3}, {1, 2, 9}, {4, 0, 4}},
		{{7}},
	}
	for i, counts := range tables {
		ct := table(t, counts)
		for _, metric := range []Metric{NPMI, DuchersZ, LewontinsD} {
			m, err := metric(ct)
			require.NoError(t, err)
			r, c := ct.Shape()
			assert.Equal(t, r, m.Rows())
			assert.Equal(t, c, m.Cols())
			for _, row := range m.Values() {
				for _, v := range row {
					assert.GreaterOrEqual(t, v, -1.0, "table %d", i)
					assert.LessOrEqual(t, v, 1.0, "table %d", i)
				}
			}
		}
	}
}

func TestEmptyTable(t *testing.T) {
	for name, metric := range Metrics().All() {
		_, err := metric(table(t, nil))
		assert.ErrorIs(t, err, types.ErrEmptyTable, name)
		_, err = metric(nil)
		assert.ErrorIs(t, err, types.ErrEmptyTable, name)
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"NPMI", "Ducher's Z", "Lewontin's D", "PMI"}, Metrics().Names())
}

func TestEvaluate(t *testing.T) {
	tbl, err := dataset.FromRecords([]string{"age", "gender", "label"}, [][]string{
		{"20", "M", "happy"},
		{"20", "M", "happy"},
		{"30", "F", "sad"},
		{"30", "M", "sad"},
	})
	require.NoError(t, err)

	m, err := Evaluate(tbl, types.Component{"age", "gender"}, types.Component{"label"}, NPMI)
	require.NoError(t, err)
	assert.Equal(t, []string{"(20, M)", "(30, F)", "(30, M)"}, m.RowLabels())
	assert.Equal(t, []string{"happy", "sad"}, m.ColLabels())
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, tol)

	_, err = Evaluate(tbl, types.Component{"age"}, types.Component{"race"}, NPMI)
	assert.ErrorIs(t, err, types.ErrUnknownColumn)
}
