package repository

import (
	"context"

	"wardrobe/pkg/config"
	"wardrobe/pkg/model"
)

const (
	CollectionName = "bookings"
	TableName      = "bookings"
)

// BookingRepository persists bookings. Listings are newest first with ties
// broken by id, and bounded by limit.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindByUser(ctx context.Context, email string, limit int) ([]*model.Booking, error)
	FindAll(ctx context.Context, limit int) ([]*model.Booking, error)
	FindActiveByCostume(ctx context.Context, costumeID string) ([]*model.Booking, error)
	FindByIdempotencyKey(ctx context.Context, email, key string) (*model.Booking, error)
	// UpdateStatus sets status to next only while it still equals prev.
	UpdateStatus(ctx context.Context, id string, prev, next model.BookingStatus) error
}

func New(cfg *config.Config) BookingRepository {
	if cfg.StorageDriver == config.StoragePostgres {
		return NewPostgresBookingRepository(cfg.Client.Postgres, cfg.ReadTimeout, cfg.WriteTimeout)
	}
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return NewMongoBookingRepository(db, cfg.ReadTimeout, cfg.WriteTimeout)
}

func activeStatuses() []string {
	active := model.ActiveBookingStatuses()
	out := make([]string, 0, len(active))
	for _, s := range active {
		out = append(out, s.String())
	}
	return out
}
