package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "wardrobe/internal/bookings/errors"
	mongodb "wardrobe/pkg/db/mongo"
	"wardrobe/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoLockRepository struct {
	collection   *mongo.Collection
	writeTimeout time.Duration
}

func NewMongoLockRepository(db *mongo.Database, writeTimeout time.Duration) BookingLockRepository {
	return &mongoLockRepository{
		collection:   db.Collection(LockCollectionName),
		writeTimeout: writeTimeout,
	}
}

func (r *mongoLockRepository) Acquire(ctx context.Context, key string, ttl time.Duration) (*model.BookingLock, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	now := time.Now().UTC()
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": key, "expires_at": bson.M{"$lte": now}}); err != nil {
		return nil, fmt.Errorf("failed to reclaim expired lock: %w", err)
	}

	lock := &model.BookingLock{
		ID:        key,
		Token:     uuid.New().String(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongodb.IsDuplicateKey(err) {
			return nil, bookingserrors.ErrLockHeld
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return lock, nil
}

func (r *mongoLockRepository) Release(ctx context.Context, lock *model.BookingLock) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lock.ID, "token": lock.Token})
	return err
}
