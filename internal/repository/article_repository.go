package repository

import (
	"context"

	"blog/internal/domain/entity"
)

// ArticleWithAuthor represents an article along with its author.
// Author is nil only when the article carries no author reference.
type ArticleWithAuthor struct {
	Article entity.Article
	Author  *entity.Author
}

// ArticleRepository is the query contract over the persisted article collection.
//
// Store failures (rejected writes, connectivity, timeouts) are returned as
// *entity.PersistenceError. Listings are fully materialized and may be iterated
// any number of times.
type ArticleRepository interface {
	// Create inserts a new article and returns it with its assigned ID and CreatedAt.
	Create(ctx context.Context, attrs entity.ArticleAttributes) (entity.Article, error)

	// UpdateByKey replaces the writable fields of the article with the given ID.
	// ID and CreatedAt never change. Returns entity.ErrNotFound if no article has that ID.
	UpdateByKey(ctx context.Context, id int64, attrs entity.ArticleAttributes) (entity.Article, error)

	// FindByKey returns the article with the given ID, or entity.ErrNotFound.
	FindByKey(ctx context.Context, id int64) (entity.Article, error)

	// ListingForAdmin returns every article joined with its author, ordered by
	// created_at DESC then id DESC. An article referencing an author that does not
	// exist yields *entity.MissingRelationError.
	ListingForAdmin(ctx context.Context) ([]ArticleWithAuthor, error)

	// ListingForPublic returns published articles only, ordered by created_at ASC then id ASC.
	ListingForPublic(ctx context.Context) ([]entity.Article, error)
}
