// Package article provides the command layer for articles: validated create
// and update commands, plus the read operations used by the admin and public
// surfaces. It talks to storage only through the repository interfaces.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrInvalidArticleID indicates that the provided article ID is invalid.
	// Article IDs must be positive integers.
	ErrInvalidArticleID = errors.New("invalid article ID")

	// ErrAuthorsUnavailable is returned by ListAuthors when the service was
	// built without an author repository.
	ErrAuthorsUnavailable = errors.New("author repository not configured")
)
