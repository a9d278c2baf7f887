package repository

import (
	"context"
	"time"

	"wardrobe/pkg/config"
	"wardrobe/pkg/model"
)

const LockCollectionName = "booking_locks"

// BookingLockRepository provides advisory locks keyed by costume id. Acquire
// reclaims a lock whose expiry has passed and returns ErrLockHeld otherwise.
type BookingLockRepository interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (*model.BookingLock, error)
	Release(ctx context.Context, lock *model.BookingLock) error
}

func NewLockRepository(cfg *config.Config) BookingLockRepository {
	if cfg.StorageDriver == config.StoragePostgres {
		return NewPostgresLockRepository(cfg.Client.Postgres, cfg.WriteTimeout)
	}
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return NewMongoLockRepository(db, cfg.WriteTimeout)
}
