package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Import describes one JSONL file loaded into a table.
type Import struct {
	ID        string    `json:"import_id"`
	Table     string    `json:"table"`
	Source    string    `json:"source"`
	Rows      int       `json:"rows"`
	Skipped   int       `json:"skipped"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportJSONL creates table from the records of a JSONL file, one TEXT
// column per key, and logs the import. Loading is transactional: on error
// the database is left as it was. Records missing a key store NULL.
func (s *Source) ImportJSONL(ctx context.Context, table, path string) (Import, error) {
	if table == "" {
		return Import{}, fmt.Errorf("importing %s: empty table name", path)
	}
	recs, err := readJSONL(path)
	if err != nil {
		return Import{}, err
	}
	if len(recs.columns) == 0 {
		return Import{}, fmt.Errorf("importing %s: no records", path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return Import{}, ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Import{}, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	quoted := make([]string, len(recs.columns))
	defs := make([]string, len(recs.columns))
	placeholders := make([]string, len(recs.columns))
	for i, c := range recs.columns {
		quoted[i] = quoteIdent(c)
		defs[i] = quoted[i] + " TEXT"
		placeholders[i] = "?"
	}
	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return Import{}, fmt.Errorf("creating table %s: %w", table, err)
	}

	insertSQL := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return Import{}, fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	args := make([]any, len(recs.columns))
	for n, rec := range recs.records {
		for i, c := range recs.columns {
			v, err := sqlValue(rec[c])
			if err != nil {
				return Import{}, fmt.Errorf("record %d field %q: %w", n+1, c, err)
			}
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return Import{}, fmt.Errorf("inserting record %d: %w", n+1, err)
		}
	}

	imp := Import{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Table:     table,
		Source:    path,
		Rows:      len(recs.records),
		Skipped:   recs.skipped,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO biasmetrics_imports (import_id, table_name, source, rows, skipped, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		imp.ID, imp.Table, imp.Source, imp.Rows, imp.Skipped, imp.CreatedAt.Format(time.RFC3339Nano)); err != nil {
		return Import{}, fmt.Errorf("logging import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Import{}, fmt.Errorf("committing import: %w", err)
	}
	return imp, nil
}

// Imports returns the import log, oldest first.
func (s *Source) Imports(ctx context.Context) ([]Import, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT import_id, table_name, source, rows, skipped, created_at
		 FROM biasmetrics_imports ORDER BY created_at, import_id`)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var imp Import
		var created string
		if err := rows.Scan(&imp.ID, &imp.Table, &imp.Source, &imp.Rows, &imp.Skipped, &created); err != nil {
			return nil, fmt.Errorf("scanning import: %w", err)
		}
		imp.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("parsing import time: %w", err)
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}
