package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stormboard/internal/model"
)

// VoteRepo persists individual votes. Bulk deletes are safe to re-run: a
// crash mid-cascade leaves state that the same call cleans up.
type VoteRepo interface {
	Create(ctx context.Context, vote *model.Vote) error
	ListByRound(ctx context.Context, roundID string) ([]*model.Vote, error)
	ListByParticipantRound(ctx context.Context, participantID, roundID string) ([]*model.Vote, error)
	DeleteByParticipantRound(ctx context.Context, participantID, roundID string) error
	DeleteByRound(ctx context.Context, roundID string) error
}

type voteRepo struct {
	collection *mongo.Collection
}

// NewVoteRepo creates a vote repository backed by MongoDB.
func NewVoteRepo(db *mongo.Database) VoteRepo {
	return &voteRepo{collection: db.Collection("votes")}
}

func (r *voteRepo) Create(ctx context.Context, vote *model.Vote) error {
	if vote.ID == "" {
		vote.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, vote)
	return err
}

func (r *voteRepo) ListByRound(ctx context.Context, roundID string) ([]*model.Vote, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"roundId": roundID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var votes []*model.Vote
	if err = cursor.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *voteRepo) ListByParticipantRound(ctx context.Context, participantID, roundID string) ([]*model.Vote, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"participantId": participantID, "roundId": roundID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var votes []*model.Vote
	if err = cursor.All(ctx, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

func (r *voteRepo) DeleteByParticipantRound(ctx context.Context, participantID, roundID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"participantId": participantID, "roundId": roundID})
	return err
}

func (r *voteRepo) DeleteByRound(ctx context.Context, roundID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"roundId": roundID})
	return err
}
