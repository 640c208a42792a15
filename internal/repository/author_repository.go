package repository

import (
	"context"

	"blog/internal/domain/entity"
)

// AuthorRepository is the read contract over stored authors. The article
// service uses it to confirm author references before a write.
type AuthorRepository interface {
	// FindByKey returns the author with the given ID, or entity.ErrNotFound.
	FindByKey(ctx context.Context, id int64) (entity.Author, error)
	// List returns all authors ordered by name.
	List(ctx context.Context) ([]entity.Author, error)
}
