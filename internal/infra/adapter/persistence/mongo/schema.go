package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog/internal/domain/entity"
)

// SeedAuthors are inserted by EnsureSchema when missing. They match the
// rows seeded by the SQL migrations.
var SeedAuthors = []entity.Author{
	{ID: 1, Name: "Editorial Team"},
	{ID: 2, Name: "Guest Author"},
}

// EnsureSchema creates the listing indexes and upserts SeedAuthors.
// Running it again is a no-op; existing author names are never overwritten.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(articlesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	})
	if err != nil {
		return wrapErr("EnsureSchema: articles indexes", err)
	}

	_, err = db.Collection(authorsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	if err != nil {
		return wrapErr("EnsureSchema: authors indexes", err)
	}

	models := make([]mongo.WriteModel, 0, len(SeedAuthors))
	for _, a := range SeedAuthors {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": a.ID}).
			SetUpdate(bson.M{"$setOnInsert": authorDoc{ID: a.ID, Name: a.Name}}).
			SetUpsert(true))
	}
	_, err = db.Collection(authorsCollection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return wrapErr("EnsureSchema: seed authors", err)
	}
	return nil
}
