package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// FromArrowTable copies an Arrow table into a Table. Every value is rendered
// with the array's textual form; nulls become the empty string so that they
// are counted as their own category rather than dropped.
func FromArrowTable(tbl arrow.Table) (*Table, error) {
	schema := tbl.Schema()
	ncols := int(tbl.NumCols())
	nrows := int(tbl.NumRows())

	names := make([]string, ncols)
	values := make([][]string, ncols)
	for i := 0; i < ncols; i++ {
		names[i] = schema.Field(i).Name
		col := make([]string, 0, nrows)
		for _, chunk := range tbl.Column(i).Data().Chunks() {
			for j := 0; j < chunk.Len(); j++ {
				if chunk.IsNull(j) {
					col = append(col, "")
					continue
				}
				col = append(col, chunk.ValueStr(j))
			}
		}
		values[i] = col
	}
	return FromColumns(names, values)
}

// ReadParquetFile loads every column of a Parquet file through Arrow.
func ReadParquetFile(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(parquet.NewReaderProperties(memory.DefaultAllocator)))
	if err != nil {
		return nil, fmt.Errorf("create parquet reader: %w", err)
	}
	defer pf.Close()

	reader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("create arrow reader: %w", err)
	}

	tbl, err := reader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("read parquet data: %w", err)
	}
	defer tbl.Release()

	return FromArrowTable(tbl)
}
