package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stormboard/internal/model"
)

// RoundRepo persists voting rounds.
type RoundRepo interface {
	Create(ctx context.Context, round *model.VotingRound) error
	GetByID(ctx context.Context, id string) (*model.VotingRound, error)
	ListBySession(ctx context.Context, sessionID string) ([]*model.VotingRound, error)
	GetLatest(ctx context.Context, sessionID string) (*model.VotingRound, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
	Update(ctx context.Context, round *model.VotingRound) error
	Delete(ctx context.Context, id string) error
}

type roundRepo struct {
	collection *mongo.Collection
}

// NewRoundRepo creates a voting round repository backed by MongoDB.
func NewRoundRepo(db *mongo.Database) RoundRepo {
	return &roundRepo{collection: db.Collection("votingRounds")}
}

func (r *roundRepo) Create(ctx context.Context, round *model.VotingRound) error {
	if round.ID == "" {
		round.ID = primitive.NewObjectID().Hex()
	}
	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, round)
	return err
}

func (r *roundRepo) GetByID(ctx context.Context, id string) (*model.VotingRound, error) {
	var round model.VotingRound
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&round)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *roundRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.VotingRound, error) {
	opts := options.Find().SetSort(bson.D{{Key: "roundNumber", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rounds []*model.VotingRound
	if err = cursor.All(ctx, &rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *roundRepo) GetLatest(ctx context.Context, sessionID string) (*model.VotingRound, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "roundNumber", Value: -1}})
	var round model.VotingRound
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}, opts).Decode(&round)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *roundRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"sessionId": sessionID})
	return int(n), err
}

func (r *roundRepo) Update(ctx context.Context, round *model.VotingRound) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": round.ID}, round)
	return err
}

func (r *roundRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
