package persistence

import (
	"database/sql"
	"time"

	"blog/internal/domain/entity"
)

// ArticleColumns is the column list matching ArticleRow.Dest, in order.
const ArticleColumns = "id, title, status, published_at, author_id, created_at"

// ArticleRow is the scan target for one articles row.
type ArticleRow struct {
	ID          int64
	Title       string
	Status      string
	PublishedAt sql.NullTime
	AuthorID    sql.NullInt64
	CreatedAt   time.Time
}

// Dest returns scan destinations in ArticleColumns order.
func (r *ArticleRow) Dest() []any {
	return []any{&r.ID, &r.Title, &r.Status, &r.PublishedAt, &r.AuthorID, &r.CreatedAt}
}

// Article converts the row into an entity value.
func (r *ArticleRow) Article() entity.Article {
	article := entity.Article{
		ID:        r.ID,
		Title:     r.Title,
		Status:    entity.ArticleStatus(r.Status),
		CreatedAt: r.CreatedAt,
	}
	if r.PublishedAt.Valid {
		t := r.PublishedAt.Time
		article.PublishedAt = &t
	}
	if r.AuthorID.Valid {
		id := r.AuthorID.Int64
		article.AuthorID = &id
	}
	return article
}

// AuthorRow is the scan target for a LEFT JOINed authors row.
type AuthorRow struct {
	ID   sql.NullInt64
	Name sql.NullString
}

// Dest returns scan destinations for (id, name).
func (r *AuthorRow) Dest() []any {
	return []any{&r.ID, &r.Name}
}

// Resolve returns the joined author for article.
// It returns (nil, nil) for an article without an author reference and a
// MissingRelationError when the reference did not match any author.
func (r *AuthorRow) Resolve(article entity.Article) (*entity.Author, error) {
	if article.AuthorID == nil {
		return nil, nil
	}
	if !r.ID.Valid {
		return nil, &entity.MissingRelationError{ArticleID: article.ID, AuthorID: *article.AuthorID}
	}
	return &entity.Author{ID: r.ID.Int64, Name: r.Name.String}, nil
}

// WriteArgs returns the bind values for (title, status, published_at, author_id).
// Absent optional fields bind as NULL.
func WriteArgs(attrs entity.ArticleAttributes) []any {
	var publishedAt, authorID any
	if attrs.PublishedAt != nil {
		publishedAt = *attrs.PublishedAt
	}
	if attrs.AuthorID != nil {
		authorID = *attrs.AuthorID
	}
	return []any{attrs.Title, string(attrs.Status), publishedAt, authorID}
}
