// Package sqlite provides SQLite implementations of the article and author repositories.
// Importing it registers the modernc.org/sqlite driver under the name "sqlite".
package sqlite

import (
	"errors"
	"strconv"

	sqlitedrv "modernc.org/sqlite"

	"blog/internal/domain/entity"
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

const dbSystem = "sqlite"

// wrapErr converts a driver error into an entity.PersistenceError.
// SQLite result codes (e.g. 787 for a foreign key failure) are kept in Code.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var sqlErr *sqlitedrv.Error
	if errors.As(err, &sqlErr) {
		return &entity.PersistenceError{Op: op, Code: strconv.Itoa(sqlErr.Code()), Err: err}
	}
	return entity.NewPersistenceError(op, err)
}
