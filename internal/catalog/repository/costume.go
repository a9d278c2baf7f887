package repository

import (
	"context"

	"wardrobe/pkg/config"
	"wardrobe/pkg/model"
)

const (
	CollectionName = "costumes"
	TableName      = "costumes"
)

// CostumeRepository persists catalog entries. List returns at most limit
// records, newest first.
type CostumeRepository interface {
	List(ctx context.Context, filter model.CostumeFilter, limit int) ([]*model.Costume, error)
	FindByID(ctx context.Context, id string) (*model.Costume, error)
	Create(ctx context.Context, costume *model.Costume) error
	Replace(ctx context.Context, costume *model.Costume) error
	Delete(ctx context.Context, id string) error
}

func New(cfg *config.Config) CostumeRepository {
	if cfg.StorageDriver == config.StoragePostgres {
		return NewPostgresCostumeRepository(cfg.Client.Postgres, cfg.ReadTimeout, cfg.WriteTimeout)
	}
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return NewMongoCostumeRepository(db, cfg.ReadTimeout, cfg.WriteTimeout)
}
