package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/festy23/teamup/internal/teamrequest/model"
)

type mongoRepository struct {
	coll *mongo.Collection
}

// NewMongo creates a team request repository backed by a MongoDB collection.
func NewMongo(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(model.CollectionName)}
}

// EnsureMongoIndexes creates the index List sorts on. It is idempotent.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(model.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create createdAt index: %w", err)
	}
	return nil
}

func (r *mongoRepository) List(ctx context.Context) ([]model.TeamRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	requests := []model.TeamRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	for i := range requests {
		canonicalize(&requests[i])
	}
	return requests, nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*model.TeamRequest, error) {
	var req model.TeamRequest
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrRequestNotFound
		}
		return nil, err
	}

	canonicalize(&req)
	return &req, nil
}

func (r *mongoRepository) Create(ctx context.Context, req *model.TeamRequest) error {
	canonicalize(req)
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.ErrRequestExists
		}
		return err
	}
	return nil
}

func (r *mongoRepository) Update(ctx context.Context, req *model.TeamRequest) (*model.TeamRequest, error) {
	canonicalize(req)
	update := bson.M{"$set": bson.M{
		"title":       req.Title,
		"description": req.Description,
		"skills":      req.Skills,
		"projectType": req.ProjectType,
		"contactInfo": req.ContactInfo,
		"updatedAt":   req.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.TeamRequest
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": req.ID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrRequestNotFound
		}
		return nil, err
	}

	canonicalize(&updated)
	return &updated, nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return model.ErrRequestNotFound
	}
	return nil
}

func (r *mongoRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	found := []string{}
	if len(ids) == 0 {
		return found, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		found = append(found, doc.ID)
	}
	return found, nil
}

func (r *mongoRepository) InsertMany(ctx context.Context, reqs []model.TeamRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	docs := make([]interface{}, len(reqs))
	for i := range reqs {
		canonicalize(&reqs[i])
		docs[i] = reqs[i]
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("bulk insert: %w", model.ErrRequestExists)
		}
		return err
	}
	return nil
}
