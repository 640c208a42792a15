// Package article provides HTTP handlers for the public article listing and
// the admin article and author endpoints.
package article

import (
	"time"

	"blog/internal/domain/entity"
	"blog/internal/repository"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"published_at"`
	AuthorID    *int64     `json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AuthorDTO is the JSON shape of an author.
type AuthorDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AdminDTO is an article row of the admin listing. Author is null only when
// the article has no author reference.
type AdminDTO struct {
	DTO
	Author *AuthorDTO `json:"author"`
}

func toDTO(a entity.Article) DTO {
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Status:      a.Status.String(),
		PublishedAt: a.PublishedAt,
		AuthorID:    a.AuthorID,
		CreatedAt:   a.CreatedAt,
	}
}

func toAuthorDTO(a entity.Author) AuthorDTO {
	return AuthorDTO{ID: a.ID, Name: a.Name}
}

func toAdminDTO(item repository.ArticleWithAuthor) AdminDTO {
	out := AdminDTO{DTO: toDTO(item.Article)}
	if item.Author != nil {
		author := toAuthorDTO(*item.Author)
		out.Author = &author
	}
	return out
}
