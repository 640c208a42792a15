// Package mongo implements the article and author repositories on MongoDB.
//
// Articles keep integer ids like the SQL stores. Ids are drawn from a
// per-collection sequence document in the counters collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog/internal/domain/entity"
)

const (
	dbSystem = "mongodb"

	articlesCollection = "articles"
	authorsCollection  = "authors"
	countersCollection = "counters"
)

// Client wraps the MongoDB client and the blog database.
type Client struct {
	mongoClient *mongo.Client
	database    *mongo.Database
}

// NewClient connects to uri and verifies the connection with a ping.
func NewClient(ctx context.Context, uri, databaseName string) (*Client, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Client{
		mongoClient: mongoClient,
		database:    mongoClient.Database(databaseName),
	}, nil
}

// Database returns the blog database handle.
func (c *Client) Database() *mongo.Database {
	return c.database
}

// Ping checks that the deployment is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c.mongoClient == nil {
		return errors.New("mongo client not initialized")
	}
	return c.mongoClient.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	if c.mongoClient == nil {
		return nil
	}
	return c.mongoClient.Disconnect(ctx)
}

// wrapErr converts a driver error into an entity.PersistenceError,
// keeping the server error code when there is one.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code != 0 {
		return &entity.PersistenceError{Op: op, Code: strconv.Itoa(int(cmdErr.Code)), Err: err}
	}
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) && len(writeErr.WriteErrors) > 0 {
		return &entity.PersistenceError{Op: op, Code: strconv.Itoa(writeErr.WriteErrors[0].Code), Err: err}
	}
	return entity.NewPersistenceError(op, err)
}
