package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/mesh-intelligence/biasmetrics/internal/sqlite"
	"github.com/mesh-intelligence/biasmetrics/pkg/dataset"
	"github.com/mesh-intelligence/biasmetrics/pkg/types"
)

// errNoTable is returned for a SQLite source when neither --table nor
// --query is given and the database does not hold exactly one table.
var errNoTable = errors.New("sqlite source needs --table or --query")

// loadTable reads the dataset at path, choosing the reader from the file
// extension: .csv, .parquet, or .db/.sqlite/.sqlite3.
func (a *app) loadTable(ctx context.Context, path string) (*dataset.Table, error) {
	var (
		t   *dataset.Table
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv":
		opts := dataset.DefaultCSVOptions()
		if d := []rune(a.cfg.Delimiter); len(d) == 1 {
			opts.Delimiter = d[0]
		}
		if ext == ".tsv" {
			opts.Delimiter = '\t'
		}
		t, err = dataset.ReadCSVFile(path, opts)
	case ".parquet", ".pq":
		t, err = dataset.ReadParquetFile(ctx, path)
	case ".db", ".sqlite", ".sqlite3":
		t, err = a.loadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, types.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.log.Info("dataset loaded", "path", path, "rows", humanize.Comma(int64(t.NumRows())), "columns", len(t.Columns()))
	return t, nil
}

func (a *app) loadSQLite(ctx context.Context, path string) (*dataset.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	src, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, sysErr(err)
	}
	defer src.Close()

	switch {
	case a.flags.query != "":
		return src.Query(ctx, a.flags.query)
	case a.flags.table != "":
		return src.LoadTable(ctx, a.flags.table)
	}
	tables, err := src.Tables(ctx)
	if err != nil {
		return nil, sysErr(err)
	}
	if len(tables) != 1 {
		return nil, fmt.Errorf("%w (tables: %s)", errNoTable, strings.Join(tables, ", "))
	}
	return src.LoadTable(ctx, tables[0])
}

// parseComponentFlag parses a comma-separated column list given to flag.
func parseComponentFlag(flag, value string) (types.Component, error) {
	c, err := types.ParseComponent(value)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return c, nil
}
