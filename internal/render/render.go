// Package render turns result matrices into something a person can read:
// per-axis normalisation, ordering by normalised mean, aligned text tables
// and JSON. It has no knowledge of which metrics produced the values.
package render

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// ErrAxisUnknown is returned for a normalisation axis other than none, rows
// or cols.
var ErrAxisUnknown = errors.New("unknown axis")

// ErrOrderUnknown is returned for a sort order other than none, ascending or
// descending.
var ErrOrderUnknown = errors.New("unknown sort order")

// Normalize divides every value by the maximum of its row (types.NormalizeRows)
// or column (types.NormalizeCols), ignoring NaN. A row or column whose
// maximum is zero, negative or undefined is left as it is. The input is not
// modified.
func Normalize(m *types.LabeledMatrix, axis string) (*types.LabeledMatrix, error) {
	out := m.Clone()
	switch axis {
	case "", types.NormalizeNone:
		return out, nil
	case types.NormalizeRows:
		for i := range m.Rows() {
			if err := scale(out, m.Row(i), func(k int) (int, int) { return i, k }); err != nil {
				return nil, err
			}
		}
	case types.NormalizeCols:
		vals := m.Values()
		for j := range m.Cols() {
			col := make([]float64, m.Rows())
			for i := range col {
				col[i] = vals[i][j]
			}
			if err := scale(out, col, func(k int) (int, int) { return k, j }); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrAxisUnknown, axis)
	}
	return out, nil
}

// scale divides line by its maximum and writes it back through at.
func scale(out *types.LabeledMatrix, line []float64, at func(k int) (i, j int)) error {
	maxv := math.NaN()
	for _, v := range line {
		if !math.IsNaN(v) && (math.IsNaN(maxv) || v > maxv) {
			maxv = v
		}
	}
	if math.IsNaN(maxv) || maxv <= 0 || math.IsInf(maxv, 0) {
		return nil
	}
	for k, v := range line {
		i, j := at(k)
		if err := out.Set(i, j, v/maxv); err != nil {
			return err
		}
	}
	return nil
}

// nanMean averages the non-NaN values; it is NaN when there are none.
func nanMean(vals []float64) float64 {
	sum, n := 0.0, 0
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// SortByMean reorders the axis that was not normalised. With axis rows the
// columns are sorted by the mean of their normalised values; with axis cols
// the rows are. Both m and normalized are permuted identically and
// returned. Ties keep their order and NaN means sort last.
func SortByMean(m, normalized *types.LabeledMatrix, axis, order string) (*types.LabeledMatrix, *types.LabeledMatrix, error) {
	switch order {
	case "", types.SortNone:
		return m, normalized, nil
	case types.SortAscending, types.SortDescending:
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrOrderUnknown, order)
	}

	vals := normalized.Values()
	var means []float64
	switch axis {
	case types.NormalizeRows:
		means = make([]float64, normalized.Cols())
		for j := range means {
			col := make([]float64, len(vals))
			for i := range vals {
				col[i] = vals[i][j]
			}
			means[j] = nanMean(col)
		}
	case types.NormalizeCols:
		means = make([]float64, normalized.Rows())
		for i := range means {
			means[i] = nanMean(vals[i])
		}
	case "", types.NormalizeNone:
		return m, normalized, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrAxisUnknown, axis)
	}

	idx := make([]int, len(means))
	for k := range idx {
		idx[k] = k
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		ma, mb := means[a], means[b]
		switch {
		case math.IsNaN(ma) && math.IsNaN(mb):
			return 0
		case math.IsNaN(ma):
			return 1
		case math.IsNaN(mb):
			return -1
		}
		if order == types.SortDescending {
			return cmp.Compare(mb, ma)
		}
		return cmp.Compare(ma, mb)
	})

	rows, cols := identity(m.Rows()), identity(m.Cols())
	if axis == types.NormalizeRows {
		cols = idx
	} else {
		rows = idx
	}
	sm, err := m.Permute(rows, cols)
	if err != nil {
		return nil, nil, err
	}
	sn, err := normalized.Permute(rows, cols)
	if err != nil {
		return nil, nil, err
	}
	return sm, sn, nil
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Arrange applies the normalisation axis and sort order of cfg and returns
// the reordered raw values alongside their normalised form.
func Arrange(m *types.LabeledMatrix, cfg types.Config) (raw, normalized *types.LabeledMatrix, err error) {
	normalized, err = Normalize(m, cfg.Normalize)
	if err != nil {
		return nil, nil, err
	}
	return SortByMean(m, normalized, cfg.Normalize, cfg.Sort)
}

// TableOptions controls WriteTable.
type TableOptions struct {
	Precision int
	// Bars, when set, is drawn after each value as a bar proportional to
	// the corresponding cell, which should lie in [0, 1].
	Bars *types.LabeledMatrix
	// Corner is printed above the row labels.
	Corner string
}

const barWidth = 10

// FormatValue renders v with the given precision; NaN renders as "-".
func FormatValue(v float64, precision int) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.*f", precision, v)
}

func bar(v float64) string {
	if math.IsNaN(v) || v <= 0 {
		return ""
	}
	n := int(math.Round(math.Min(v, 1) * barWidth))
	return strings.Repeat("█", n)
}

// WriteTable writes m as an aligned text table with a header row of column
// labels and one line per row label.
func WriteTable(w io.Writer, m *types.LabeledMatrix, opts TableOptions) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := append([]string{opts.Corner}, m.ColLabels()...)
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")+"\t"); err != nil {
		return err
	}
	labels := m.RowLabels()
	for i, row := range m.Values() {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, labels[i])
		for j, v := range row {
			cell := FormatValue(v, opts.Precision)
			if opts.Bars != nil {
				if b, err := opts.Bars.At(i, j); err == nil {
					cell += " " + fmt.Sprintf("%-*s", barWidth, bar(b))
				}
			}
			cells = append(cells, cell)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t"); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
