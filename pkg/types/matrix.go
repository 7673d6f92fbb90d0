package types

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// LabeledMatrix is a dense row-major matrix of float64 with a label for
// every row and column. Local metrics return one aligned to the axes of the
// contingency table they were computed from; sweeps return one indexed by
// dataset and metric name.
type LabeledMatrix struct {
	rowLabels []string
	colLabels []string
	data      []float64 // len == rows*cols, offset i*cols + j
}

// NewLabeledMatrix returns a zero matrix with one row per row label and one
// column per column label.
func NewLabeledMatrix(rowLabels, colLabels []string) *LabeledMatrix {
	return &LabeledMatrix{
		rowLabels: append([]string(nil), rowLabels...),
		colLabels: append([]string(nil), colLabels...),
		data:      make([]float64, len(rowLabels)*len(colLabels)),
	}
}

func matrixErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("LabeledMatrix.%s(%d,%d): %w", method, i, j, err)
}

// Rows returns the number of rows.
func (m *LabeledMatrix) Rows() int { return len(m.rowLabels) }

// Cols returns the number of columns.
func (m *LabeledMatrix) Cols() int { return len(m.colLabels) }

// RowLabels returns a copy of the row labels.
func (m *LabeledMatrix) RowLabels() []string { return append([]string(nil), m.rowLabels...) }

// ColLabels returns a copy of the column labels.
func (m *LabeledMatrix) ColLabels() []string { return append([]string(nil), m.colLabels...) }

func (m *LabeledMatrix) inBounds(i, j int) bool {
	return i >= 0 && i < len(m.rowLabels) && j >= 0 && j < len(m.colLabels)
}

// At returns the value at (i, j), or ErrIndexOutOfRange.
func (m *LabeledMatrix) At(i, j int) (float64, error) {
	if !m.inBounds(i, j) {
		return 0, matrixErrorf("At", i, j, ErrIndexOutOfRange)
	}
	return m.data[i*len(m.colLabels)+j], nil
}

// Set stores v at (i, j), or returns ErrIndexOutOfRange.
func (m *LabeledMatrix) Set(i, j int, v float64) error {
	if !m.inBounds(i, j) {
		return matrixErrorf("Set", i, j, ErrIndexOutOfRange)
	}
	m.data[i*len(m.colLabels)+j] = v
	return nil
}

// Row returns a copy of row i, or nil when i is out of range.
func (m *LabeledMatrix) Row(i int) []float64 {
	if i < 0 || i >= len(m.rowLabels) {
		return nil
	}
	c := len(m.colLabels)
	return append([]float64(nil), m.data[i*c:(i+1)*c]...)
}

// Values returns a copy of the matrix as a slice of rows.
func (m *LabeledMatrix) Values() [][]float64 {
	out := make([][]float64, len(m.rowLabels))
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// Clone returns a deep copy.
func (m *LabeledMatrix) Clone() *LabeledMatrix {
	return &LabeledMatrix{
		rowLabels: append([]string(nil), m.rowLabels...),
		colLabels: append([]string(nil), m.colLabels...),
		data:      append([]float64(nil), m.data...),
	}
}

// Permute returns a copy with rows and columns reordered: new row k is old
// row rows[k] and new column k is old column cols[k]. Returns
// ErrDimensionMismatch if either order is not a permutation of the axis.
func (m *LabeledMatrix) Permute(rows, cols []int) (*LabeledMatrix, error) {
	if !isPermutation(rows, len(m.rowLabels)) || !isPermutation(cols, len(m.colLabels)) {
		return nil, fmt.Errorf("LabeledMatrix.Permute: %w", ErrDimensionMismatch)
	}
	out := &LabeledMatrix{
		rowLabels: make([]string, len(rows)),
		colLabels: make([]string, len(cols)),
		data:      make([]float64, len(m.data)),
	}
	c := len(cols)
	for ni, oi := range rows {
		out.rowLabels[ni] = m.rowLabels[oi]
		for nj, oj := range cols {
			out.data[ni*c+nj] = m.data[oi*c+oj]
		}
	}
	for nj, oj := range cols {
		out.colLabels[nj] = m.colLabels[oj]
	}
	return out, nil
}

func isPermutation(order []int, n int) bool {
	if len(order) != n {
		return false
	}
	seen := make([]bool, n)
	for _, k := range order {
		if k < 0 || k >= n || seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

// jsonMatrix is the wire form. NaN and ±Inf have no JSON encoding and are
// written as null.
type jsonMatrix struct {
	Rows   []string     `json:"rows"`
	Cols   []string     `json:"cols"`
	Values [][]*float64 `json:"values"`
}

// MarshalJSON encodes the labels and values; non-finite values become null.
func (m *LabeledMatrix) MarshalJSON() ([]byte, error) {
	out := jsonMatrix{Rows: m.rowLabels, Cols: m.colLabels, Values: make([][]*float64, len(m.rowLabels))}
	for i := range out.Values {
		row := make([]*float64, len(m.colLabels))
		for j, v := range m.Row(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			row[j] = &v
		}
		out.Values[i] = row
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the form written by MarshalJSON; null becomes NaN.
func (m *LabeledMatrix) UnmarshalJSON(b []byte) error {
	var in jsonMatrix
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	if len(in.Values) != len(in.Rows) {
		return fmt.Errorf("LabeledMatrix: %d rows, %d value rows: %w", len(in.Rows), len(in.Values), ErrDimensionMismatch)
	}
	*m = *NewLabeledMatrix(in.Rows, in.Cols)
	for i, row := range in.Values {
		if len(row) != len(in.Cols) {
			return fmt.Errorf("LabeledMatrix: row %d: %w", i, ErrDimensionMismatch)
		}
		for j, v := range row {
			if v == nil {
				m.data[i*len(in.Cols)+j] = math.NaN()
				continue
			}
			m.data[i*len(in.Cols)+j] = *v
		}
	}
	return nil
}
