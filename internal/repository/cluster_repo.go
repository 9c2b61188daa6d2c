package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stormboard/internal/model"
)

// ClusterRepo persists canvas clusters.
type ClusterRepo interface {
	Create(ctx context.Context, cluster *model.Cluster) error
	GetByID(ctx context.Context, id string) (*model.Cluster, error)
	ListBySession(ctx context.Context, sessionID string) ([]*model.Cluster, error)
	Update(ctx context.Context, cluster *model.Cluster) error
	Delete(ctx context.Context, id string) error
}

type clusterRepo struct {
	collection *mongo.Collection
}

// NewClusterRepo creates a cluster repository backed by MongoDB.
func NewClusterRepo(db *mongo.Database) ClusterRepo {
	return &clusterRepo{collection: db.Collection("clusters")}
}

func (r *clusterRepo) Create(ctx context.Context, cluster *model.Cluster) error {
	if cluster.ID == "" {
		cluster.ID = primitive.NewObjectID().Hex()
	}
	if cluster.CreatedAt.IsZero() {
		cluster.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, cluster)
	return err
}

func (r *clusterRepo) GetByID(ctx context.Context, id string) (*model.Cluster, error) {
	var cluster model.Cluster
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cluster)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cluster, nil
}

func (r *clusterRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.Cluster, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"sessionId": sessionID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var clusters []*model.Cluster
	if err = cursor.All(ctx, &clusters); err != nil {
		return nil, err
	}
	return clusters, nil
}

func (r *clusterRepo) Update(ctx context.Context, cluster *model.Cluster) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cluster.ID}, cluster)
	return err
}

func (r *clusterRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
