package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes the repositories query against.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"sessions": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "shortCode", Value: 1}}},
			{Keys: bson.D{{Key: "folderId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		"folders": {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
		"participants": {
			{Keys: bson.D{{Key: "sessionId", Value: 1}}},
			{Keys: bson.D{{Key: "displayToken", Value: 1}}},
		},
		"coAdmins": {
			{Keys: bson.D{{Key: "sessionId", Value: 1}}},
			{Keys: bson.D{{Key: "inviteToken", Value: 1}}},
		},
		"postIts": {
			{Keys: bson.D{{Key: "sessionId", Value: 1}}},
			{Keys: bson.D{{Key: "clusterId", Value: 1}}},
		},
		"clusters": {
			{Keys: bson.D{{Key: "sessionId", Value: 1}}},
		},
		"votingRounds": {
			{Keys: bson.D{{Key: "sessionId", Value: 1}}},
		},
		"votes": {
			{Keys: bson.D{{Key: "roundId", Value: 1}}},
			{Keys: bson.D{{Key: "participantId", Value: 1}, {Key: "roundId", Value: 1}}},
			{Keys: bson.D{{Key: "sessionId", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}
