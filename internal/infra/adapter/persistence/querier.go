// Package persistence holds the pieces shared by the SQL store adapters:
// the Querier abstraction over *sql.DB, row scanning for articles and authors,
// and tracing helpers for store calls.
package persistence

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB used by the SQL repositories.
// It is satisfied by *sql.DB and by circuitbreaker.DBCircuitBreaker.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// ScanOne reads the first row of rows into dest and closes rows.
// It takes the (rows, err) pair returned by QueryContext so callers can pass it straight through.
// Returns sql.ErrNoRows when the result set is empty.
func ScanOne(rows *sql.Rows, err error, dest ...any) error {
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return sql.ErrNoRows
	}
	if err := rows.Scan(dest...); err != nil {
		return err
	}
	return rows.Err()
}
