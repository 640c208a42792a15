package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog/internal/domain/entity"
	"blog/internal/infra/adapter/persistence"
	"blog/internal/repository"
)

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct {
	db  persistence.Querier
	now func() time.Time
}

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db persistence.Querier) repository.ArticleRepository {
	return NewArticleRepoWithClock(db, time.Now)
}

// NewArticleRepoWithClock creates a repository that stamps created_at from now.
func NewArticleRepoWithClock(db persistence.Querier, now func() time.Time) repository.ArticleRepository {
	return &ArticleRepo{db: db, now: now}
}

// Create inserts a new article and returns it with the assigned id and created_at.
func (repo *ArticleRepo) Create(ctx context.Context, attrs entity.ArticleAttributes) (_ entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.Create", dbSystem, "INSERT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
INSERT INTO articles (title, status, published_at, author_id, created_at)
VALUES (?, ?, ?, ?, ?)
`
	createdAt := repo.now().UTC()
	res, err := repo.db.ExecContext(ctx, query, append(persistence.WriteArgs(attrs), createdAt)...)
	if err != nil {
		return entity.Article{}, wrapErr("Create: ExecContext", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return entity.Article{}, wrapErr("Create: LastInsertId", err)
	}

	article := entity.NewArticle(attrs)
	article.ID = id
	article.CreatedAt = createdAt
	return article, nil
}

// UpdateByKey replaces the mutable fields of the article with the given id
// and returns the stored result. id and created_at are never written.
func (repo *ArticleRepo) UpdateByKey(ctx context.Context, id int64, attrs entity.ArticleAttributes) (_ entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.UpdateByKey", dbSystem, "UPDATE")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
UPDATE articles SET
       title        = ?,
       status       = ?,
       published_at = ?,
       author_id    = ?
WHERE id = ?
`
	res, err := repo.db.ExecContext(ctx, query, append(persistence.WriteArgs(attrs), id)...)
	if err != nil {
		return entity.Article{}, wrapErr("UpdateByKey: ExecContext", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return entity.Article{}, wrapErr("UpdateByKey: RowsAffected", err)
	}
	if n == 0 {
		return entity.Article{}, fmt.Errorf("UpdateByKey: article %d: %w", id, entity.ErrNotFound)
	}
	return repo.FindByKey(ctx, id)
}

// FindByKey returns the article with the given id or entity.ErrNotFound.
func (repo *ArticleRepo) FindByKey(ctx context.Context, id int64) (_ entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.FindByKey", dbSystem, "SELECT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
SELECT ` + persistence.ArticleColumns + `
FROM articles
WHERE id = ?
LIMIT 1
`
	var row persistence.ArticleRow
	rows, err := repo.db.QueryContext(ctx, query, id)
	err = persistence.ScanOne(rows, err, row.Dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Article{}, fmt.Errorf("FindByKey: article %d: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return entity.Article{}, wrapErr("FindByKey: QueryContext", err)
	}
	return row.Article(), nil
}

// ListingForAdmin retrieves every article with its author, newest first.
func (repo *ArticleRepo) ListingForAdmin(ctx context.Context) (_ []repository.ArticleWithAuthor, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.ListingForAdmin", dbSystem, "SELECT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
SELECT a.id, a.title, a.status, a.published_at, a.author_id, a.created_at,
       au.id, au.name
FROM articles a
LEFT JOIN authors au ON au.id = a.author_id
ORDER BY a.created_at DESC, a.id DESC
`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr("ListingForAdmin: QueryContext", err)
	}
	defer func() { _ = rows.Close() }()

	// Preallocate to avoid regrowing on typical listings.
	result := make([]repository.ArticleWithAuthor, 0, 100)
	for rows.Next() {
		var (
			row    persistence.ArticleRow
			author persistence.AuthorRow
		)
		if err := rows.Scan(append(row.Dest(), author.Dest()...)...); err != nil {
			return nil, wrapErr("ListingForAdmin: Scan", err)
		}
		article := row.Article()
		joined, err := author.Resolve(article)
		if err != nil {
			return nil, fmt.Errorf("ListingForAdmin: %w", err)
		}
		result = append(result, repository.ArticleWithAuthor{Article: article, Author: joined})
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListingForAdmin: rows.Err", err)
	}

	return result, nil
}

// ListingForPublic retrieves published articles, oldest first.
func (repo *ArticleRepo) ListingForPublic(ctx context.Context) (_ []entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.ListingForPublic", dbSystem, "SELECT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
SELECT ` + persistence.ArticleColumns + `
FROM articles
WHERE status = ?
ORDER BY created_at ASC, id ASC
`
	rows, err := repo.db.QueryContext(ctx, query, string(entity.StatusPublished))
	if err != nil {
		return nil, wrapErr("ListingForPublic: QueryContext", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]entity.Article, 0, 100)
	for rows.Next() {
		var row persistence.ArticleRow
		if err := rows.Scan(row.Dest()...); err != nil {
			return nil, wrapErr("ListingForPublic: Scan", err)
		}
		articles = append(articles, row.Article())
	}

	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListingForPublic: rows.Err", err)
	}

	return articles, nil
}
