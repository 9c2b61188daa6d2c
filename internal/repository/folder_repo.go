package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stormboard/internal/model"
)

// FolderRepo persists session folders.
type FolderRepo interface {
	Create(ctx context.Context, folder *model.Folder) error
	GetByID(ctx context.Context, id string) (*model.Folder, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Folder, error)
	Update(ctx context.Context, folder *model.Folder) error
	Delete(ctx context.Context, id string) error
}

type folderRepo struct {
	collection *mongo.Collection
}

// NewFolderRepo creates a folder repository backed by MongoDB.
func NewFolderRepo(db *mongo.Database) FolderRepo {
	return &folderRepo{collection: db.Collection("folders")}
}

func (r *folderRepo) Create(ctx context.Context, folder *model.Folder) error {
	if folder.ID == "" {
		folder.ID = primitive.NewObjectID().Hex()
	}
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, folder)
	return err
}

func (r *folderRepo) GetByID(ctx context.Context, id string) (*model.Folder, error) {
	var folder model.Folder
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&folder)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (r *folderRepo) ListByUser(ctx context.Context, userID string) ([]*model.Folder, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var folders []*model.Folder
	if err = cursor.All(ctx, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *folderRepo) Update(ctx context.Context, folder *model.Folder) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": folder.ID}, folder)
	return err
}

func (r *folderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
