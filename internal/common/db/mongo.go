package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkalinin/tasklight/internal/common/constants"
	"github.com/mkalinin/tasklight/internal/common/logger"
)

// Connect dials the document store with bounded retries. Startup is the
// only place we retry; request-path operations fail straight through.
func Connect(log *logger.Logger, uri string) *mongo.Client {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(constants.MongoConnectTimeout).
		SetAppName("tasklight")

	for attempt := 1; attempt <= constants.MongoConnectAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), constants.MongoConnectTimeout)
		client, err := mongo.Connect(ctx, opts)
		if err == nil {
			err = client.Ping(ctx, nil)
		}
		cancel()

		if err == nil {
			log.Infof("mongo connection established")
			return client
		}

		log.Warnf("failed to connect to mongo (attempt %d/%d): %v", attempt, constants.MongoConnectAttempts, err)

		if attempt == constants.MongoConnectAttempts {
			log.Fatalf("failed to connect to mongo after %d attempts: %v", constants.MongoConnectAttempts, err)
			return nil
		}

		time.Sleep(constants.MongoConnectRetry)
	}

	log.Fatalf("failed to connect to mongo after %d attempts", constants.MongoConnectAttempts)
	return nil
}

// EnsureIndexes creates the indexes the data model relies on: email
// uniqueness lives in the store, and todo reads are always owner-scoped.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	users := database.Collection(constants.UsersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	todos := database.Collection(constants.TodosCollection)
	_, err = todos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}},
	})
	return err
}
