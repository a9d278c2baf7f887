package repository

import (
	"context"

	"wardrobe/pkg/config"
	"wardrobe/pkg/model"
)

const (
	CollectionName = "users"
	TableName      = "users"
)

// UserRepository stores accounts keyed by their exact email.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// New returns the repository for the configured storage driver.
func New(cfg *config.Config) UserRepository {
	if cfg.StorageDriver == config.StoragePostgres {
		return NewPostgresUserRepository(cfg.Client.Postgres, cfg.ReadTimeout, cfg.WriteTimeout)
	}
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return NewMongoUserRepository(db, cfg.ReadTimeout, cfg.WriteTimeout)
}
