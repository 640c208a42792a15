package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blog/internal/domain/entity"
	"blog/internal/infra/adapter/persistence"
	"blog/internal/repository"
)

type AuthorRepo struct{ db persistence.Querier }

func NewAuthorRepo(db persistence.Querier) repository.AuthorRepository {
	return &AuthorRepo{db: db}
}

func (repo *AuthorRepo) FindByKey(ctx context.Context, id int64) (_ entity.Author, err error) {
	ctx, span := persistence.StartSpan(ctx, "AuthorRepo.FindByKey", dbSystem, "SELECT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
SELECT id, name
FROM authors
WHERE id = $1
LIMIT 1`
	var author entity.Author
	rows, err := repo.db.QueryContext(ctx, query, id)
	err = persistence.ScanOne(rows, err, &author.ID, &author.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Author{}, fmt.Errorf("FindByKey: author %d: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return entity.Author{}, wrapErr("FindByKey", err)
	}
	return author, nil
}

func (repo *AuthorRepo) List(ctx context.Context) (_ []entity.Author, err error) {
	ctx, span := persistence.StartSpan(ctx, "AuthorRepo.List", dbSystem, "SELECT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
SELECT id, name
FROM authors
ORDER BY name ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr("List", err)
	}
	defer func() { _ = rows.Close() }()

	authors := make([]entity.Author, 0, 16)
	for rows.Next() {
		var author entity.Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, wrapErr("List", err)
		}
		authors = append(authors, author)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("List", err)
	}
	return authors, nil
}
