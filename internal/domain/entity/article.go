// Package entity defines the core domain entities of the blog backend.
// It contains the Article and Author value shapes, the closed set of article
// statuses, and the domain-specific errors shared by every layer.
package entity

import "time"

// Article is an immutable read-representation of a persisted article.
// Values are built either from validated attributes about to be stored or
// from a row loaded by a repository; no business rules run here.
type Article struct {
	ID          int64
	Title       string
	Status      ArticleStatus
	PublishedAt *time.Time
	AuthorID    *int64
	CreatedAt   time.Time
}

// ArticleAttributes holds the writable fields of an article.
// It is the sanitized output of the article form and the input of repository writes.
type ArticleAttributes struct {
	Title       string
	Status      ArticleStatus
	PublishedAt *time.Time
	AuthorID    *int64
}

// TimePrecision is the finest timestamp resolution every store keeps.
// BSON datetimes hold milliseconds; TIMESTAMPTZ holds microseconds.
const TimePrecision = time.Millisecond

// StoredTime returns t in UTC at TimePrecision, the value a store reads back.
func StoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(TimePrecision)
}

// Author is the owner of articles. Many articles may share one author.
type Author struct {
	ID   int64
	Name string
}

// NewArticle builds an Article value from attributes.
// Pointer fields are copied so the returned value shares no memory with attrs.
func NewArticle(attrs ArticleAttributes) Article {
	return Article{
		Title:       attrs.Title,
		Status:      attrs.Status,
		PublishedAt: copyTime(attrs.PublishedAt),
		AuthorID:    copyInt64(attrs.AuthorID),
	}
}

// IsPublished reports whether the article is visible on the public surface.
func (a Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// Attributes returns the writable fields of the article.
func (a Article) Attributes() ArticleAttributes {
	return ArticleAttributes{
		Title:       a.Title,
		Status:      a.Status,
		PublishedAt: copyTime(a.PublishedAt),
		AuthorID:    copyInt64(a.AuthorID),
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func copyInt64(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
