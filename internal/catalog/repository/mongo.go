package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	catalogerrors "wardrobe/internal/catalog/errors"
	mongodb "wardrobe/pkg/db/mongo"
	"wardrobe/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCostumeRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoCostumeRepository(db *mongo.Database, readTimeout, writeTimeout time.Duration) CostumeRepository {
	return &mongoCostumeRepository{
		collection:   db.Collection(CollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (r *mongoCostumeRepository) List(ctx context.Context, filter model.CostumeFilter, limit int) ([]*model.Costume, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, listFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list costumes: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	costumes := make([]*model.Costume, 0)
	if err := cursor.All(ctx, &costumes); err != nil {
		return nil, fmt.Errorf("failed to decode costumes: %w", err)
	}
	return costumes, nil
}

// listFilter matches category exactly and search as a literal,
// case-insensitive substring of name or description.
func listFilter(filter model.CostumeFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	return query
}

func (r *mongoCostumeRepository) FindByID(ctx context.Context, id string) (*model.Costume, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	var costume model.Costume
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&costume); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, catalogerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find costume: %w", err)
	}
	return &costume, nil
}

func (r *mongoCostumeRepository) Create(ctx context.Context, costume *model.Costume) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, costume); err != nil {
		return fmt.Errorf("failed to create costume: %w", err)
	}
	return nil
}

// Replace overwrites every mutable field; id and created_at are kept.
func (r *mongoCostumeRepository) Replace(ctx context.Context, costume *model.Costume) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":          costume.Name,
		"description":   costume.Description,
		"category":      costume.Category,
		"sizes":         costume.Sizes,
		"images":        costume.Images,
		"price_per_day": costume.PricePerDay,
		"available":     costume.Available,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": costume.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update costume: %w", err)
	}
	if result.MatchedCount == 0 {
		return catalogerrors.ErrNotFound
	}
	return nil
}

func (r *mongoCostumeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete costume: %w", err)
	}
	if result.DeletedCount == 0 {
		return catalogerrors.ErrNotFound
	}
	return nil
}
