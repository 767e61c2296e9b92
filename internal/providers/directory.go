// Package providers holds the CMS provider directory: fetched once at
// startup, loaded into an in-memory SQLite database, and read-only for the
// process lifetime.
package providers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/prescottcassy/insurance-assistant/internal/dataset"
)

// MaxResults caps provider search results.
const MaxResults = 5

// Directory is a substring-searchable snapshot of the provider dataset.
// A nil or empty directory answers every search with no rows, never an
// error, matching the degrade-to-empty contract for this collaborator.
type Directory struct {
	db      *sql.DB
	columns []string
	rows    int
	logger  *slog.Logger
}

// Empty returns a directory with no data.
func Empty(logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{logger: logger}
}

// Load builds an in-memory directory from a provider table.
func Load(ctx context.Context, t *dataset.Table, logger *slog.Logger) (*Directory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if t == nil || len(t.Headers) == 0 {
		return Empty(logger), nil
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// the in-memory db lives and dies with this one handle
	db.SetMaxOpenConns(1)

	cols := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		cols[i] = fmt.Sprintf("%q TEXT", h)
	}
	ddl := fmt.Sprintf("CREATE TABLE providers (%s)", strings.Join(cols, ", "))
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(t.Headers)), ",")
	quoted := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		quoted[i] = fmt.Sprintf("%q", h)
	}
	insert := fmt.Sprintf("INSERT INTO providers (%s) VALUES (%s)",
		strings.Join(quoted, ", "), placeholders)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("begin load: %w", err)
	}
	for _, row := range t.Rows {
		args := make([]any, len(t.Headers))
		for i, h := range t.Headers {
			args[i] = row[h]
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			_ = tx.Rollback()
			_ = db.Close()
			return nil, fmt.Errorf("insert row: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("commit load: %w", err)
	}

	logger.Info("providers.loaded", "rows", len(t.Rows), "columns", len(t.Headers))
	return &Directory{db: db, columns: t.Headers, rows: len(t.Rows), logger: logger}, nil
}

// Len returns the number of loaded provider rows.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return d.rows
}

// Close releases the underlying database.
func (d *Directory) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Search returns up to MaxResults rows where any column contains query,
// case-insensitively. An empty directory returns no rows.
func (d *Directory) Search(ctx context.Context, query string) ([]dataset.Row, error) {
	if d == nil || d.db == nil || d.rows == 0 {
		return nil, nil
	}
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return nil, nil
	}

	preds := make([]string, len(d.columns))
	args := make([]any, len(d.columns))
	for i, c := range d.columns {
		preds[i] = fmt.Sprintf("lower(%q) LIKE ?", c)
		args[i] = "%" + q + "%"
	}
	stmt := fmt.Sprintf("SELECT %s FROM providers WHERE %s LIMIT %d",
		quotedList(d.columns), strings.Join(preds, " OR "), MaxResults)

	rows, err := d.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query providers: %w", err)
	}
	defer rows.Close()

	var out []dataset.Row
	for rows.Next() {
		vals := make([]sql.NullString, len(d.columns))
		ptrs := make([]any, len(d.columns))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan provider: %w", err)
		}
		r := make(dataset.Row, len(d.columns))
		for i, c := range d.columns {
			r[c] = vals[i].String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func quotedList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return strings.Join(quoted, ", ")
}
