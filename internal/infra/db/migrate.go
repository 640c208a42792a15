package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed seeds/authors.sql
var seedAuthorsSQL string

var schemas = map[Dialect][]string{
	DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS authors (
    id   BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS articles (
    id           BIGSERIAL PRIMARY KEY,
    title        TEXT NOT NULL,
    status       VARCHAR(16) NOT NULL CHECK (status IN ('draft', 'published')),
    published_at TIMESTAMPTZ,
    author_id    BIGINT REFERENCES authors(id),
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	},
	DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS authors (
    id   INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS articles (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    title        TEXT NOT NULL,
    status       TEXT NOT NULL CHECK (status IN ('draft', 'published')),
    published_at TIMESTAMP,
    author_id    INTEGER REFERENCES authors(id),
    created_at   TIMESTAMP NOT NULL
)`,
	},
}

// indexes back the two listing orders and the status filter; the syntax is
// shared by both dialects.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_articles_created_at_id ON articles(created_at, id)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_status_created_at ON articles(status, created_at, id)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_author_id ON articles(author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_authors_name ON authors(name)`,
}

// MigrateUp creates the schema for dialect and seeds the author table.
// Every statement is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	ddl, ok := schemas[dialect]
	if !ok {
		return fmt.Errorf("migrate: unsupported dialect %q", string(dialect))
	}

	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: create table: %w", err)
		}
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("migrate: create index: %w", err)
		}
	}

	// duplicates are skipped by ON CONFLICT
	if _, err := db.ExecContext(ctx, seedAuthorsSQL); err != nil {
		return fmt.Errorf("migrate: seed authors: %w", err)
	}
	return nil
}

// MigrateDown drops the blog tables. All data is lost.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS articles`,
		`DROP TABLE IF EXISTS authors`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	}
	return nil
}
