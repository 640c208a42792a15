package mongo

import (
	"time"

	"blog/internal/domain/entity"
)

type articleDoc struct {
	ID          int64      `bson:"_id"`
	Title       string     `bson:"title"`
	Status      string     `bson:"status"`
	PublishedAt *time.Time `bson:"published_at"`
	AuthorID    *int64     `bson:"author_id"`
	CreatedAt   time.Time  `bson:"created_at"`
}

func (d articleDoc) article() entity.Article {
	article := entity.NewArticle(entity.ArticleAttributes{
		Title:       d.Title,
		Status:      entity.ArticleStatus(d.Status),
		PublishedAt: d.PublishedAt,
		AuthorID:    d.AuthorID,
	})
	article.ID = d.ID
	article.CreatedAt = d.CreatedAt
	return article
}

type authorDoc struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

func (d authorDoc) author() entity.Author {
	return entity.Author{ID: d.ID, Name: d.Name}
}

type counterDoc struct {
	Seq int64 `bson:"seq"`
}
