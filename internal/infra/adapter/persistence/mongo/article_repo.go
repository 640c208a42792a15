package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog/internal/domain/entity"
	"blog/internal/infra/adapter/persistence"
	"blog/internal/repository"
)

type ArticleRepo struct {
	articles *mongo.Collection
	authors  *mongo.Collection
	counters *mongo.Collection
	now      func() time.Time
}

func NewArticleRepo(db *mongo.Database) repository.ArticleRepository {
	return NewArticleRepoWithClock(db, time.Now)
}

// NewArticleRepoWithClock is NewArticleRepo with a fixed source for created_at.
func NewArticleRepoWithClock(db *mongo.Database, now func() time.Time) repository.ArticleRepository {
	return &ArticleRepo{
		articles: db.Collection(articlesCollection),
		authors:  db.Collection(authorsCollection),
		counters: db.Collection(countersCollection),
		now:      now,
	}
}

// nextID atomically increments the articles sequence and returns the new value.
func (repo *ArticleRepo) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var counter counterDoc
	err := repo.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": articlesCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, attrs entity.ArticleAttributes) (_ entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.Create", dbSystem, "insert")
	defer func() { persistence.EndSpan(span, err) }()

	id, err := repo.nextID(ctx)
	if err != nil {
		return entity.Article{}, wrapErr("Create: nextID", err)
	}

	article := entity.NewArticle(attrs)
	article.ID = id
	article.CreatedAt = entity.StoredTime(repo.now())
	if article.PublishedAt != nil {
		published := entity.StoredTime(*article.PublishedAt)
		article.PublishedAt = &published
	}

	doc := articleDoc{
		ID:          article.ID,
		Title:       article.Title,
		Status:      string(article.Status),
		PublishedAt: article.PublishedAt,
		AuthorID:    article.AuthorID,
		CreatedAt:   article.CreatedAt,
	}
	if _, err := repo.articles.InsertOne(ctx, doc); err != nil {
		return entity.Article{}, wrapErr("Create: InsertOne", err)
	}
	return article, nil
}

func (repo *ArticleRepo) UpdateByKey(ctx context.Context, id int64, attrs entity.ArticleAttributes) (_ entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.UpdateByKey", dbSystem, "findAndModify")
	defer func() { persistence.EndSpan(span, err) }()

	update := bson.M{"$set": bson.M{
		"title":        attrs.Title,
		"status":       string(attrs.Status),
		"published_at": attrs.PublishedAt,
		"author_id":    attrs.AuthorID,
	}}
	var doc articleDoc
	err = repo.articles.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Article{}, fmt.Errorf("UpdateByKey: article %d: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return entity.Article{}, wrapErr("UpdateByKey", err)
	}
	return doc.article(), nil
}

func (repo *ArticleRepo) FindByKey(ctx context.Context, id int64) (_ entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.FindByKey", dbSystem, "find")
	defer func() { persistence.EndSpan(span, err) }()

	var doc articleDoc
	err = repo.articles.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Article{}, fmt.Errorf("FindByKey: article %d: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return entity.Article{}, wrapErr("FindByKey", err)
	}
	return doc.article(), nil
}

func (repo *ArticleRepo) ListingForAdmin(ctx context.Context) (_ []repository.ArticleWithAuthor, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.ListingForAdmin", dbSystem, "find")
	defer func() { persistence.EndSpan(span, err) }()

	sort := bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	docs, err := findArticles(ctx, repo.articles, bson.M{}, sort)
	if err != nil {
		return nil, wrapErr("ListingForAdmin: articles", err)
	}

	authors, err := repo.authorsByID(ctx, docs)
	if err != nil {
		return nil, wrapErr("ListingForAdmin: authors", err)
	}

	items := make([]repository.ArticleWithAuthor, 0, len(docs))
	for _, doc := range docs {
		item := repository.ArticleWithAuthor{Article: doc.article()}
		if doc.AuthorID != nil {
			author, ok := authors[*doc.AuthorID]
			if !ok {
				return nil, fmt.Errorf("ListingForAdmin: %w",
					&entity.MissingRelationError{ArticleID: doc.ID, AuthorID: *doc.AuthorID})
			}
			item.Author = &author
		}
		items = append(items, item)
	}
	return items, nil
}

func (repo *ArticleRepo) ListingForPublic(ctx context.Context) (_ []entity.Article, err error) {
	ctx, span := persistence.StartSpan(ctx, "ArticleRepo.ListingForPublic", dbSystem, "find")
	defer func() { persistence.EndSpan(span, err) }()

	filter := bson.M{"status": string(entity.StatusPublished)}
	sort := bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	docs, err := findArticles(ctx, repo.articles, filter, sort)
	if err != nil {
		return nil, wrapErr("ListingForPublic", err)
	}

	articles := make([]entity.Article, 0, len(docs))
	for _, doc := range docs {
		articles = append(articles, doc.article())
	}
	return articles, nil
}

// authorsByID loads the authors referenced by docs in one $in query.
func (repo *ArticleRepo) authorsByID(ctx context.Context, docs []articleDoc) (map[int64]entity.Author, error) {
	seen := make(map[int64]struct{}, len(docs))
	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		if doc.AuthorID == nil {
			continue
		}
		if _, ok := seen[*doc.AuthorID]; ok {
			continue
		}
		seen[*doc.AuthorID] = struct{}{}
		ids = append(ids, *doc.AuthorID)
	}

	authors := make(map[int64]entity.Author, len(ids))
	if len(ids) == 0 {
		return authors, nil
	}

	cursor, err := repo.authors.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var found []authorDoc
	if err := cursor.All(ctx, &found); err != nil {
		return nil, err
	}
	for _, doc := range found {
		authors[doc.ID] = doc.author()
	}
	return authors, nil
}

func findArticles(ctx context.Context, coll *mongo.Collection, filter bson.M, sort bson.D) ([]articleDoc, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	docs := make([]articleDoc, 0, 50)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
