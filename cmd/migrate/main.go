package main

import (
	"context"
	"time"

	mongoMigration "wardrobe/internal/migrations/mongo"
	postgresMigration "wardrobe/internal/migrations/postgres"
	"wardrobe/pkg/config"
)

const (
	JobName          = "wardrobe-migrate"
	migrationTimeout = 120 * time.Second
)

func main() {
	cfg := config.Load(JobName)
	cfg.Log.Info("Starting migration job", "storage", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := postgresMigration.RunMigration(cfg.PostgresDSN, cfg.Log); err != nil {
			cfg.Log.Fatal("Postgres migration failed", "error", err)
		}
	default:
		if err := migrateMongo(cfg); err != nil {
			cfg.Log.Fatal("Mongo migration failed", "error", err)
		}
	}

	cfg.Log.Info("Migration completed successfully")
}

func migrateMongo(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	cfg.Connect()
	defer cfg.GracefulShutdown()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return mongoMigration.RunMigration(ctx, db, cfg.Log)
}
