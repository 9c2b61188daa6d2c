package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stormboard/internal/model"
)

// CoAdminRepo persists co-admin records, at most one per session.
type CoAdminRepo interface {
	Create(ctx context.Context, coAdmin *model.CoAdmin) error
	GetBySession(ctx context.Context, sessionID string) (*model.CoAdmin, error)
	GetByToken(ctx context.Context, inviteToken string) (*model.CoAdmin, error)
	Update(ctx context.Context, coAdmin *model.CoAdmin) error
	DeleteBySession(ctx context.Context, sessionID string) error
}

type coAdminRepo struct {
	collection *mongo.Collection
}

// NewCoAdminRepo creates a co-admin repository backed by MongoDB.
func NewCoAdminRepo(db *mongo.Database) CoAdminRepo {
	return &coAdminRepo{collection: db.Collection("coAdmins")}
}

func (r *coAdminRepo) Create(ctx context.Context, coAdmin *model.CoAdmin) error {
	if coAdmin.ID == "" {
		coAdmin.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.collection.InsertOne(ctx, coAdmin)
	return err
}

func (r *coAdminRepo) GetBySession(ctx context.Context, sessionID string) (*model.CoAdmin, error) {
	var coAdmin model.CoAdmin
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&coAdmin)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coAdmin, nil
}

func (r *coAdminRepo) GetByToken(ctx context.Context, inviteToken string) (*model.CoAdmin, error) {
	var coAdmin model.CoAdmin
	err := r.collection.FindOne(ctx, bson.M{"inviteToken": inviteToken}).Decode(&coAdmin)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coAdmin, nil
}

func (r *coAdminRepo) Update(ctx context.Context, coAdmin *model.CoAdmin) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": coAdmin.ID}, coAdmin)
	return err
}

func (r *coAdminRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID})
	return err
}
