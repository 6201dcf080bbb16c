package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	ProfilesCollection    = "profiles"
	ConferencesCollection = "conferences"
	SessionsCollection    = "sessions"
	UsersCollection       = "users"
)

// DBInit connects to MongoDB and checks it is reachable. Transactions need
// the server to run as a replica set.
func DBInit(ctx context.Context, connString, dbName string) (*mongo.Client, *mongo.Database, error) {
	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to the db: %v", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("db is not available: %v", err)
	}

	return client, client.Database(dbName), nil
}

// EnsureIndexes creates the parent-id and query indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		ConferencesCollection: {
			{Keys: bson.D{{Key: "organizer_user_id", Value: 1}, {Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "seats_available", Value: 1}}},
			{Keys: bson.D{{Key: "city", Value: 1}, {Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "topics", Value: 1}}},
			{Keys: bson.D{{Key: "month", Value: 1}, {Key: "name", Value: 1}}},
		},
		SessionsCollection: {
			{Keys: bson.D{{Key: "conference_id", Value: 1}, {Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "conference_id", Value: 1}, {Key: "speaker", Value: 1}}},
			{Keys: bson.D{{Key: "speaker", Value: 1}}},
			{Keys: bson.D{{Key: "start_time", Value: 1}}},
		},
		UsersCollection: {
			{Keys: bson.D{{Key: "login", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", collection, err)
		}
	}
	return nil
}
