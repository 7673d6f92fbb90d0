// Package dataset provides in-memory implementations of types.Table and the
// readers that fill them from CSV, Arrow and Parquet sources. Every value is
// kept as text: the metrics treat columns as categorical, so "1" and "1.0"
// are different categories.
package dataset

import (
	"fmt"

	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// Table is an immutable column store. It is safe for concurrent readers.
type Table struct {
	columns []string
	data    map[string][]string
	rows    int
}

var _ types.Table = (*Table)(nil)

// FromColumns builds a table from column names and their values. All columns
// must have the same length. Returns ErrDuplicateColumn or ErrRaggedTable.
func FromColumns(names []string, values [][]string) (*Table, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("dataset: %d names, %d columns: %w", len(names), len(values), types.ErrDimensionMismatch)
	}
	t := &Table{
		columns: append([]string(nil), names...),
		data:    make(map[string][]string, len(names)),
	}
	for i, name := range names {
		if _, dup := t.data[name]; dup {
			return nil, fmt.Errorf("dataset: column %q: %w", name, types.ErrDuplicateColumn)
		}
		if i > 0 && len(values[i]) != t.rows {
			return nil, fmt.Errorf("dataset: column %q has %d rows, want %d: %w", name, len(values[i]), t.rows, types.ErrRaggedTable)
		}
		t.rows = len(values[i])
		t.data[name] = append([]string(nil), values[i]...)
	}
	return t, nil
}

// FromRecords builds a table from a header and row-major records. Every
// record must have exactly one value per header column.
func FromRecords(header []string, records [][]string) (*Table, error) {
	cols := make([][]string, len(header))
	for j := range cols {
		cols[j] = make([]string, len(records))
	}
	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("dataset: record %d has %d fields, want %d: %w", i+1, len(rec), len(header), types.ErrRaggedTable)
		}
		for j, v := range rec {
			cols[j][i] = v
		}
	}
	return FromColumns(header, cols)
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string { return append([]string(nil), t.columns...) }

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]string, error) {
	v, ok := t.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownColumn, name)
	}
	return v, nil
}

// Select returns a table holding only the named columns, in the order given.
func (t *Table) Select(names ...string) (*Table, error) {
	values := make([][]string, len(names))
	for i, name := range names {
		v, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	out, err := FromColumns(names, values)
	if err != nil {
		return nil, err
	}
	out.rows = t.rows
	return out, nil
}
