package postgres

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

type ArticleRepo struct {
	db  persistence.Querier
	now func() time.Time
}

func NewArticleRepo(db persistence.Querier) repository.ArticleRepository {
	return NewArticleRepoWithClock(db, time.Now)
}

// NewArticleRepoWithClock is NewArticleRepo with a fixed source for created_at.
func NewArticleRepoWithClock(db persistence.Querier, now func() time.Time) repository.ArticleRepository {
	return &ArticleRepo{db: db, now: now}
}

func (repo *ArticleRepo) Create(ctx context.Context, attrs entity.ArticleAttributes) (_ entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.Create", dbSystem, "INSERT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
INSERT INTO articles (title, status, published_at, author_id, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	article := entity.NewArticle(attrs)
	args := append(persistence.WriteArgs(attrs), repo.now().UTC())

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err := persistence.ScanOne(rows, err, &article.ID, &article.CreatedAt); err != nil {
		return entity.Article{}, wrapErr("Create", err)
	}
	return article, nil
}

func (repo *ArticleRepo) UpdateByKey(ctx context.Context, id int64, attrs entity.ArticleAttributes) (_ entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.UpdateByKey", dbSystem, "UPDATE")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
UPDATE articles SET
       title        = $1,
       status       = $2,
       published_at = $3,
       author_id    = $4
WHERE id = $5
RETURNING ` + persistence.ArticleColumns
	args := append(persistence.WriteArgs(attrs), id)

	var row persistence.ArticleRow
	rows, err := repo.db.QueryContext(ctx, query, args...)
	err = persistence.ScanOne(rows, err, row.Dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Article{}, fmt.Errorf("UpdateByKey: article %d: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return entity.Article{}, wrapErr("UpdateByKey", err)
	}
	return row.Article(), nil
}

func (repo *ArticleRepo) FindByKey(ctx context.Context, id int64) (_ entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.FindByKey", dbSystem, "SELECT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
SELECT ` + persistence.ArticleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	var row persistence.ArticleRow
	rows, err := repo.db.QueryContext(ctx, query, id)
	err = persistence.ScanOne(rows, err, row.Dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Article{}, fmt.Errorf("FindByKey: article %d: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return entity.Article{}, wrapErr("FindByKey", err)
	}
	return row.Article(), nil
}

func (repo *ArticleRepo) ListingForAdmin(ctx context.Context) (_ []repository.ArticleWithAuthor, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.ListingForAdmin", dbSystem, "SELECT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
SELECT a.id, a.title, a.status, a.published_at, a.author_id, a.created_at,
       au.id, au.name
FROM articles a
LEFT JOIN authors au ON au.id = a.author_id
ORDER BY a.created_at DESC, a.id DESC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapErr("ListingForAdmin", err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]repository.ArticleWithAuthor, 0, 50)
	for rows.Next() {
		var (
			row    persistence.ArticleRow
			author persistence.AuthorRow
		)
		if err := rows.Scan(append(row.Dest(), author.Dest()...)...); err != nil {
			return nil, wrapErr("ListingForAdmin", err)
		}
		article := row.Article()
		joined, err := author.Resolve(article)
		if err != nil {
			return nil, fmt.Errorf("ListingForAdmin: %w", err)
		}
		items = append(items, repository.ArticleWithAuthor{Article: article, Author: joined})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListingForAdmin", err)
	}
	return items, nil
}

func (repo *ArticleRepo) ListingForPublic(ctx context.Context) (_ []entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.ListingForPublic", dbSystem, "SELECT")
	defer func() { persistence.EndSpan(span, err) }()

	const query = `
SELECT ` + persistence.ArticleColumns + `
FROM articles
WHERE status = $1
ORDER BY created_at ASC, id ASC`
	rows, err := repo.db.QueryContext(ctx, query, string(entity.StatusPublished))
	if err != nil {
		return nil, wrapErr("ListingForPublic", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]entity.Article, 0, 50)
	for rows.Next() {
		var row persistence.ArticleRow
		if err := rows.Scan(row.Dest()...); err != nil {
			return nil, wrapErr("ListingForPublic", err)
		}
		articles = append(articles, row.Article())
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("ListingForPublic", err)
	}
	return articles, nil
}
