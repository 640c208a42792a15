package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"blog/internal/domain/entity"
	"blog/internal/domain/validation"
	"blog/internal/observability/logging"
	"blog/internal/observability/metrics"
	"blog/internal/repository"
)

// InstrumentationName identifies spans created by the article service.
const InstrumentationName = "blog/usecase/article"

// Service provides article management use cases.
// It validates commands and delegates persistence to the repositories.
type Service struct {
	Repo    repository.ArticleRepository
	Authors repository.AuthorRepository

	// Logger is used for command outcomes. When nil, the logger stored in the
	// request context (or slog.Default) is used.
	Logger *slog.Logger
}

// CreateArticle validates in and, when valid, stores a new article.
// The repository is not called when validation fails. An author_id that names
// no author is rejected as invalid_reference.
func (s *Service) CreateArticle(ctx context.Context, in validation.Input) Outcome {
	return s.runCommand(ctx, "create", in, func(ctx context.Context, attrs entity.ArticleAttributes) (entity.Article, error) {
		article, err := s.Repo.Create(ctx, attrs)
		if err != nil {
			return entity.Article{}, fmt.Errorf("create article: %w", err)
		}
		return article, nil
	})
}

// UpdateArticle validates in and replaces the writable fields of article id.
// A non-positive id is Rejected with an invalid_reference error on the "id"
// field whose message is ErrInvalidArticleID; the store is not touched.
// An unknown id fails with an error matching entity.ErrNotFound.
func (s *Service) UpdateArticle(ctx context.Context, id int64, in validation.Input) Outcome {
	if id <= 0 {
		errs := validation.Errors{{
			Field:   "id",
			Kind:    validation.KindInvalidReference,
			Message: ErrInvalidArticleID.Error(),
		}}
		metrics.RecordArticleCommand("update", StateRejected.String(), 0)
		return Rejected(errs)
	}
	return s.runCommand(ctx, "update", in, func(ctx context.Context, attrs entity.ArticleAttributes) (entity.Article, error) {
		article, err := s.Repo.UpdateByKey(ctx, id, attrs)
		if err != nil {
			return entity.Article{}, fmt.Errorf("update article %d: %w", id, err)
		}
		return article, nil
	})
}

type persistFunc func(ctx context.Context, attrs entity.ArticleAttributes) (entity.Article, error)

func (s *Service) runCommand(ctx context.Context, command string, in validation.Input, persist persistFunc) (outcome Outcome) {
	start := time.Now()
	ctx, span := otel.Tracer(InstrumentationName).Start(ctx, "ArticleService."+command,
		trace.WithAttributes(attribute.String("article.command", command)),
	)
	logger := s.logger(ctx).With(slog.String("command", command))

	defer func() {
		if r := recover(); r != nil {
			outcome = Failed(fmt.Errorf("%s article: panic: %v", command, r))
			logger.Error("article command panicked", slog.Any("panic", r))
		}
		span.SetAttributes(attribute.String("article.outcome", outcome.State.String()))
		if outcome.Err != nil {
			span.RecordError(outcome.Err)
			span.SetStatus(codes.Error, outcome.Err.Error())
		}
		span.End()
		metrics.RecordArticleCommand(command, outcome.State.String(), time.Since(start))
	}()

	span.AddEvent("validation_started")
	result := ValidateForm(in)
	span.AddEvent("validation_completed",
		trace.WithAttributes(attribute.Int("validation.error_count", len(result.Errors))),
	)
	if !result.Success() {
		logger.Debug("article command rejected", slog.Any("errors", result.Errors))
		return Rejected(result.Errors)
	}

	if result.Value.AuthorID != nil {
		errs, err := s.checkAuthor(ctx, *result.Value.AuthorID)
		if err != nil {
			logger.Error("article command failed", slog.Any("error", err))
			return Failed(err)
		}
		if errs != nil {
			logger.Debug("article command rejected", slog.Any("errors", errs))
			return Rejected(errs)
		}
	}

	span.AddEvent("persist_started")
	article, err := persist(ctx, result.Value)
	if err != nil {
		logger.Error("article command failed", slog.Any("error", err))
		return Failed(err)
	}

	logger.Info("article command accepted", slog.Int64("article_id", article.ID))
	return Accepted(article)
}

// checkAuthor confirms that authorID names a stored author. An unknown
// author comes back as field errors; a failed lookup as err.
// Without an author repository the check is skipped.
func (s *Service) checkAuthor(ctx context.Context, authorID int64) (validation.Errors, error) {
	if s.Authors == nil {
		return nil, nil
	}
	_, err := s.Authors.FindByKey(ctx, authorID)
	switch {
	case err == nil:
		return nil, nil
	case errors.Is(err, entity.ErrNotFound):
		return validation.Errors{{
			Field:   FieldAuthorID,
			Kind:    validation.KindInvalidReference,
			Message: fmt.Sprintf("author %d does not exist", authorID),
		}}, nil
	default:
		return nil, fmt.Errorf("find author %d: %w", authorID, err)
	}
}

// ListPublished returns published articles for the public surface, oldest first.
func (s *Service) ListPublished(ctx context.Context) ([]entity.Article, error) {
	articles, err := s.Repo.ListingForPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}
	return articles, nil
}

// ListForAdmin returns every article with its author, newest first.
// A dangling author reference fails the whole listing with *entity.MissingRelationError.
func (s *Service) ListForAdmin(ctx context.Context) ([]repository.ArticleWithAuthor, error) {
	items, err := s.Repo.ListingForAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles for admin: %w", err)
	}
	return items, nil
}

// FindArticle retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is not positive.
// Returns an error matching entity.ErrNotFound if the article does not exist.
func (s *Service) FindArticle(ctx context.Context, id int64) (entity.Article, error) {
	if id <= 0 {
		return entity.Article{}, ErrInvalidArticleID
	}
	article, err := s.Repo.FindByKey(ctx, id)
	if err != nil {
		return entity.Article{}, fmt.Errorf("find article: %w", err)
	}
	return article, nil
}

// ListAuthors returns all authors ordered by name.
func (s *Service) ListAuthors(ctx context.Context) ([]entity.Author, error) {
	if s.Authors == nil {
		return nil, ErrAuthorsUnavailable
	}
	authors, err := s.Authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	if s.Logger != nil {
		return logging.WithRequestID(ctx, s.Logger)
	}
	return logging.FromContext(ctx)
}
