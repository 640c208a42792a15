// Package postgres implements the article and author stores on PostgreSQL via pgx's database/sql driver.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"blog/internal/domain/entity"
)

const dbSystem = "postgresql"

// wrapErr converts a driver error into an entity.PersistenceError,
// carrying the SQLSTATE code when the server reported one.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &entity.PersistenceError{Op: op, Code: pgErr.Code, Err: err}
	}
	return entity.NewPersistenceError(op, err)
}
