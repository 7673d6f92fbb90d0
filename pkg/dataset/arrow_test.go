package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildArrowTable returns a two-column table (gender string with one null,
// age int64) split across two chunks per column.
func buildArrowTable(t *testing.T) arrow.Table {
	t.Helper()
	pool := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "gender", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "age", Type: arrow.PrimitiveTypes.Int64},
	}, nil)

	sb := array.NewStringBuilder(pool)
	defer sb.Release()
	sb.AppendValues([]string{"M", "F"}, nil)
	g1 := sb.NewArray()
	defer g1.Release()
	sb.AppendNull()
	sb.Append("F")
	g2 := sb.NewArray()
	defer g2.Release()

	ib := array.NewInt64Builder(pool)
	defer ib.Release()
	ib.AppendValues([]int64{20, 31}, nil)
	a1 := ib.NewArray()
	defer a1.Release()
	ib.AppendValues([]int64{20, 45}, nil)
	a2 := ib.NewArray()
	defer a2.Release()

	gender := arrow.NewChunked(schema.Field(0).Type, []arrow.Array{g1, g2})
	defer gender.Release()
	age := arrow.NewChunked(schema.Field(1).Type, []arrow.Array{a1, a2})
	defer age.Release()

	columns := []arrow.Column{
		*arrow.NewColumn(schema.Field(0), gender),
		*arrow.NewColumn(schema.Field(1), age),
	}
	return array.NewTable(schema, columns, 4)
}

func TestFromArrowTable(t *testing.T) {
	tbl := buildArrowTable(t)
	defer tbl.Release()

	got, err := FromArrowTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"gender", "age"}, got.Columns())
	assert.Equal(t, 4, got.NumRows())

	gender, err := got.Column("gender")
	require.NoError(t, err)
	assert.Equal(t, []string{"M", "F", "", "F"}, gender)

	age, err := got.Column("age")
	require.NoError(t, err)
	assert.Equal(t, []string{"20", "31", "20", "45"}, age)
}

func TestReadParquetFile(t *testing.T) {
	tbl := buildArrowTable(t)
	defer tbl.Release()

	var buf bytes.Buffer
	require.NoError(t, pqarrow.WriteTable(tbl, &buf, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()))
	path := filepath.Join(t.TempDir(), "faces.parquet")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := ReadParquetFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 4, got.NumRows())

	gender, err := got.Column("gender")
	require.NoError(t, err)
	assert.Equal(t, []string{"M", "F", "", "F"}, gender)

	_, err = ReadParquetFile(context.Background(), filepath.Join(t.TempDir(), "missing.parquet"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
