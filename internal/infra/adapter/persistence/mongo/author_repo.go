package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog/internal/domain/entity"
	"blog/internal/infra/adapter/persistence"
	"blog/internal/repository"
)

type AuthorRepo struct{ authors *mongo.Collection }

func NewAuthorRepo(db *mongo.Database) repository.AuthorRepository {
	return &AuthorRepo{authors: db.Collection(authorsCollection)}
}

func (repo *AuthorRepo) FindByKey(ctx context.Context, id int64) (_ entity.Author, err error) {
	ctx, span := persistence.StartSpan(ctx, "AuthorRepo.FindByKey", dbSystem, "find")
	defer func() { persistence.EndSpan(span, err) }()

	var doc authorDoc
	err = repo.authors.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entity.Author{}, fmt.Errorf("FindByKey: author %d: %w", id, entity.ErrNotFound)
	}
	if err != nil {
		return entity.Author{}, wrapErr("FindByKey", err)
	}
	return doc.author(), nil
}

func (repo *AuthorRepo) List(ctx context.Context) (_ []entity.Author, err error) {
	ctx, span := persistence.StartSpan(ctx, "AuthorRepo.List", dbSystem, "find")
	defer func() { persistence.EndSpan(span, err) }()

	sort := bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}
	cursor, err := repo.authors.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, wrapErr("List", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	authors := make([]entity.Author, 0, 16)
	for cursor.Next(ctx) {
		var doc authorDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, wrapErr("List: Decode", err)
		}
		authors = append(authors, doc.author())
	}
	if err := cursor.Err(); err != nil {
		return nil, wrapErr("List: cursor", err)
	}
	return authors, nil
}
