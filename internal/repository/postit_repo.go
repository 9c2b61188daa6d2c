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

// PostItRepo persists post-its.
type PostItRepo interface {
	Create(ctx context.Context, postIt *model.PostIt) error
	GetByID(ctx context.Context, id string) (*model.PostIt, error)
	ListBySession(ctx context.Context, sessionID string) ([]*model.PostIt, error)
	CountBySession(ctx context.Context, sessionID string) (int, error)
	Update(ctx context.Context, postIt *model.PostIt) error
	Delete(ctx context.Context, id string) error
	ClearCluster(ctx context.Context, clusterID string) error
}

type postItRepo struct {
	collection *mongo.Collection
}

// NewPostItRepo creates a post-it repository backed by MongoDB.
func NewPostItRepo(db *mongo.Database) PostItRepo {
	return &postItRepo{collection: db.Collection("postIts")}
}

func (r *postItRepo) Create(ctx context.Context, postIt *model.PostIt) error {
	if postIt.ID == "" {
		postIt.ID = primitive.NewObjectID().Hex()
	}
	if postIt.CreatedAt.IsZero() {
		postIt.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, postIt)
	return err
}

func (r *postItRepo) GetByID(ctx context.Context, id string) (*model.PostIt, error) {
	var postIt model.PostIt
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&postIt)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &postIt, nil
}

func (r *postItRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.PostIt, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var postIts []*model.PostIt
	if err = cursor.All(ctx, &postIts); err != nil {
		return nil, err
	}
	return postIts, nil
}

func (r *postItRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"sessionId": sessionID})
	return int(n), err
}

func (r *postItRepo) Update(ctx context.Context, postIt *model.PostIt) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": postIt.ID}, postIt)
	return err
}

func (r *postItRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *postItRepo) ClearCluster(ctx context.Context, clusterID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"clusterId": clusterID},
		bson.M{"$unset": bson.M{"clusterId": ""}})
	return err
}
