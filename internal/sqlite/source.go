// Package sqlite serves tables stored in a SQLite database as categorical
// datasets. Any query result can be loaded as a table; every value is read
// back as text and SQL NULL becomes the empty string.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/biasmetrics/pkg/dataset"
)

// ErrUnknownTable is returned by LoadTable for a name not in the database.
var ErrUnknownTable = errors.New("unknown table")

// ErrClosed is returned by every method after Close.
var ErrClosed = errors.New("source is closed")

// Source is an open SQLite database.
type Source struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and ensures the
// import bookkeeping table exists.
func Open(ctx context.Context, path string) (*Source, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", path, err)
	}
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &Source{db: db, path: path}, nil
}

// Path returns the database file the source was opened on.
func (s *Source) Path() string { return s.path }

// Close releases the database handle. It is safe to call more than once.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Tables lists the user tables in name order, excluding SQLite internals
// and the import log.
func (s *Source) Tables(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master
		 WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' AND name != ?
		 ORDER BY name`, importsTable)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// LoadTable loads every row of the named table or view.
func (s *Source) LoadTable(ctx context.Context, name string) (*dataset.Table, error) {
	names, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for _, n := range names {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return s.Query(ctx, "SELECT * FROM "+quoteIdent(name))
}

// Query runs a SELECT statement and loads its result. Column names come
// from the result set and must be unique.
func (s *Source) Query(ctx context.Context, query string, args ...any) (*dataset.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns: %w", err)
	}

	values := make([][]string, len(columns))
	cells := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		for i, c := range cells {
			values[i] = append(values[i], c.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return dataset.FromColumns(columns, values)
}

// quoteIdent quotes a SQLite identifier, doubling embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
