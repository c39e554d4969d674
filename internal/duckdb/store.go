// Package duckdb provides CSV ingestion backed by an embedded DuckDB engine.
// Score files are read with DuckDB's read_csv so that quoting, delimiters and
// line endings are handled by a real CSV reader; cells are returned as text.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection used to read CSV files.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Records holds the header and rows of a CSV file, in file order.
type Records struct {
	Columns []string
	Rows    [][]string
}

// ReadCSV reads a comma-separated file with a header line. Every cell is read as
// VARCHAR; NULL (empty) cells come back as "". Rows shorter than the header are
// padded with empty cells.
func (s *Store) ReadCSV(csvPath string) (*Records, error) {
	query := fmt.Sprintf(
		`SELECT * FROM read_csv('%s', delim=',', quote='"', header=true, all_varchar=true, null_padding=true)`,
		quoteLiteral(csvPath))

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("read_csv %s: %w", csvPath, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	out := &Records{Columns: columns}
	cells := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(out.Rows)+1, err)
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.String
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return out, nil
}

// quoteLiteral escapes a string for use inside a single-quoted SQL literal.
func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
