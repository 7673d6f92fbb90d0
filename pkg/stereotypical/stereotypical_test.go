package stereotypical

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/biasmetrics/pkg/dataset"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

const tol = 1e-9

func table(t *testing.T, rows, cols []string, counts [][]int) *types.ContingencyTable {
	t.Helper()
	r := make([]types.Category, len(rows))
	for i, v := range rows {
		r[i] = types.NewCategory(v)
	}
	c := make([]types.Category, len(cols))
	for j, v := range cols {
		c[j] = types.NewCategory(v)
	}
	ct, err := types.NewContingencyTable(r, c, counts)
	require.NoError(t, err)
	return ct
}

func TestIndependentTable(t *testing.T) {
	ct := table(t, []string{"M", "F"}, []string{"happy", "sad"}, [][]int{{2, 2}, {2, 2}})

	for name, m := range Metrics().All() {
		t.Run(name, func(t *testing.T) {
			got, err := m(ct)
			require.NoError(t, err)
			assert.Equal(t, 0.0, got)
		})
	}

	p, err := ChiSquarePValue(ct)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p)
}

func TestOuterProductTablesScoreZero(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		cols   []string
		counts [][]int
	}{
		{"2x3 uneven marginals", []string{"M", "F"}, []string{"a", "b", "c"}, [][]int{{1, 2, 3}, {2, 4, 6}}},
		{"3x4 uneven marginals", []string{"x", "y", "z"}, []string{"a", "b", "c", "d"}, [][]int{
			{1, 3, 2, 4},
			{2, 6, 4, 8},
			{3, 9, 6, 12},
		}},
	}
	metrics := []struct {
		name   string
		metric Metric
	}{
		{"chi-square", ChiSquare},
		{"cramer's v", CramersV},
		{"mutual information", MutualInformation},
		{"nmi", NMI},
	}
	for _, tt := range tests {
		ct := table(t, tt.rows, tt.cols, tt.counts)
		for _, m := range metrics {
			t.Run(tt.name+"/"+m.name, func(t *testing.T) {
				got, err := m.metric(ct)
				require.NoError(t, err)
				assert.Equal(t, 0.0, got)
			})
		}
	}
}

func TestAssociatedTable(t *testing.T) {
	ct := table(t, []string{"M", "F"}, []string{"happy", "sad"}, [][]int{{3, 1}, {1, 3}})

	mi := 0.75*math.Log(1.5) + 0.25*math.Log(0.5)
	joint := -(0.75*math.Log(0.375) + 0.25*math.Log(0.125))

	tests := []struct {
		name   string
		metric Metric
		want   float64
	}{
		{"chi-square", ChiSquare, 2},
		{"cramer's v", CramersV, 0.5},
		{"tschuprow's t", TschuprowsT, 0.5},
		{"pearson's c", PearsonsC, math.Sqrt(0.2)},
		{"mutual information", MutualInformation, mi},
		{"theil's u", TheilsU, mi / math.Ln2},
		{"theil's u reverse", TheilsUReverse, mi / math.Ln2},
		{"nmi", NMI, mi / joint},
		{"p-value", ChiSquarePValue, math.Erfc(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(ct)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tol)
		})
	}
}

func TestPerfectAssociation(t *testing.T) {
	ct := table(t, []string{"a", "b", "c"}, []string{"x", "y", "z"}, [][]int{{5, 0, 0}, {0, 3, 0}, {0, 0, 2}})

	for _, m := range []Metric{CramersV, TschuprowsT, TheilsU, TheilsUReverse, NMI} {
		got, err := m(ct)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, tol)
	}
}

func TestTheilsUIsAsymmetric(t *testing.T) {
	ct := table(t, []string{"a", "b", "c"}, []string{"x", "y"}, [][]int{{4, 0}, {0, 3}, {0, 1}})

	fwd, err := TheilsU(ct)
	require.NoError(t, err)
	rev, err := TheilsUReverse(ct)
	require.NoError(t, err)
	assert.NotEqual(t, fwd, rev)
	assert.InDelta(t, 1.0, rev, tol, "the column component is fully determined by the rows")

	swapped, err := TheilsU(ct.Transpose())
	require.NoError(t, err)
	assert.InDelta(t, rev, swapped, tol)
}

func TestRanges(t *testing.T) {
	tables := [][][]int{
		{{10, 1, 3}, {2, 7, 1}},
		{{1, 1}, {1, 0}, {0, 5}},
		{{100, 1}, {1, 100}},
		{{3, 3, 3}, {1, 2, 9}, {4, 0, 4}},
	}
	for i, counts := range tables {
		rows := make([]string, len(counts))
		for r := range rows {
			rows[r] = string(rune('a' + r))
		}
		cols := make([]string, len(counts[0]))
		for c := range cols {
			cols[c] = string(rune('x' + c))
		}
		ct := table(t, rows, cols, counts)

		for name, m := range Metrics().All() {
			got, err := m(ct)
			require.NoError(t, err, "table %d %s", i, name)
			assert.GreaterOrEqual(t, got, 0.0, "table %d %s", i, name)
			if name != "χ²" && name != "MI" {
				assert.LessOrEqual(t, got, 1.0, "table %d %s", i, name)
			}
		}
	}
}

func TestDegenerateAssociation(t *testing.T) {
	tests := []struct {
		name string
		ct   *types.ContingencyTable
	}{
		{"constant label", table(t, []string{"M", "F"}, []string{"happy"}, [][]int{{3}, {2}})},
		{"constant gender", table(t, []string{"M"}, []string{"happy", "sad"}, [][]int{{3, 2}})},
		{"unpopulated extra column", table(t, []string{"M", "F"}, []string{"happy", "sad"}, [][]int{{3, 0}, {2, 0}})},
		{"empty table", table(t, nil, nil, nil)},
		{"nil table", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for name, m := range Metrics().All() {
				_, err := m(tt.ct)
				assert.ErrorIs(t, err, types.ErrDegenerateAssociation, name)
			}
			_, err := ChiSquarePValue(tt.ct)
			assert.ErrorIs(t, err, types.ErrDegenerateAssociation)
		})
	}
}

func TestChiSquareSurvival(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		dof  float64
		want float64
	}{
		{"dof 1 small", 0.5, 1, math.Erfc(math.Sqrt(0.25))},
		{"dof 1 critical", 3.841458820694124, 1, 0.05},
		{"dof 1 large", 30, 1, math.Erfc(math.Sqrt(15))},
		{"dof 2", 2, 2, math.Exp(-1)},
		{"dof 2 large", 40, 2, math.Exp(-20)},
		{"dof 4", 3, 4, math.Exp(-1.5) * 2.5},
		{"dof 4 large", 12, 4, math.Exp(-6) * 7},
		{"zero statistic", 0, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chiSquareSurvival(tt.x, tt.dof)
			assert.InEpsilon(t, tt.want, got, 1e-8)
		})
	}
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"ϕ_C", "T", "C", "U→", "U←", "NMI", "χ²", "MI"}, Metrics().Names())
}

func TestEvaluate(t *testing.T) {
	tbl, err := dataset.FromRecords([]string{"gender", "label"}, [][]string{
		{"M", "happy"}, {"M", "happy"}, {"M", "sad"},
		{"F", "happy"}, {"F", "sad"}, {"F", "sad"},
	})
	require.NoError(t, err)

	v, err := Evaluate(tbl, types.Component{"gender"}, types.Component{"label"}, CramersV)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, v, tol)

	constant, err := dataset.FromRecords([]string{"gender", "label"}, [][]string{
		{"M", "happy"}, {"F", "happy"},
	})
	require.NoError(t, err)
	_, err = Evaluate(constant, types.Component{"gender"}, types.Component{"label"}, CramersV)
	assert.ErrorIs(t, err, types.ErrDegenerateAssociation)

	_, err = Evaluate(tbl, types.Component{"gender"}, types.Component{"race"}, CramersV)
	assert.ErrorIs(t, err, types.ErrUnknownColumn)
}
