package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stormboard/internal/model"
)

// ParticipantRepo persists anonymous session participants.
type ParticipantRepo interface {
	Create(ctx context.Context, participant *model.Participant) error
	GetByToken(ctx context.Context, displayToken string) (*model.Participant, error)
	ListBySession(ctx context.Context, sessionID string) ([]*model.Participant, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
}

type participantRepo struct {
	collection *mongo.Collection
}

// NewParticipantRepo creates a participant repository backed by MongoDB.
func NewParticipantRepo(db *mongo.Database) ParticipantRepo {
	return &participantRepo{collection: db.Collection("participants")}
}

func (r *participantRepo) Create(ctx context.Context, participant *model.Participant) error {
	if participant.ID == "" {
		participant.ID = primitive.NewObjectID().Hex()
	}
	if participant.JoinedAt.IsZero() {
		participant.JoinedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, participant)
	return err
}

func (r *participantRepo) GetByToken(ctx context.Context, displayToken string) (*model.Participant, error) {
	var participant model.Participant
	err := r.collection.FindOne(ctx, bson.M{"displayToken": displayToken}).Decode(&participant)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.Participant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*model.Participant
	if err = cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (r *participantRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"sessionId": sessionID})
	return int(n), err
}
