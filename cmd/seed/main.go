package main

import (
	"context"
	"time"

	catalogrepo "wardrobe/internal/catalog/repository"
	catalogservice "wardrobe/internal/catalog/service"
	catalogvalidator "wardrobe/internal/catalog/validator"
	identityrepo "wardrobe/internal/identity/repository"
	identityservice "wardrobe/internal/identity/service"
	identityvalidator "wardrobe/internal/identity/validator"
	"wardrobe/pkg/auth"
	"wardrobe/pkg/config"
	apperrors "wardrobe/pkg/errors"
	"wardrobe/pkg/metrics"
	"wardrobe/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

const (
	JobName     = "wardrobe-seed"
	seedTimeout = 60 * time.Second
)

type seedUser struct {
	email    string
	password string
	name     string
	role     model.Role
}

var seedUsers = []seedUser{
	{email: "admin@theatrical.com", password: "admin123", name: "Admin User", role: model.RoleAdmin},
	{email: "user@test.com", password: "user123", name: "Test User", role: model.RoleUser},
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Connect()
	defer cfg.GracefulShutdown()

	// Provision never issues tokens, so no token service or recorder is needed.
	users := identityservice.NewUserService(
		identityrepo.New(cfg),
		identityvalidator.NewUserValidator(cfg.Log),
		nil,
		auth.NewPasswordHasher(bcrypt.DefaultCost),
		(*metrics.Metrics)(nil),
		cfg,
	)
	costumes := catalogservice.NewCostumeService(
		catalogrepo.New(cfg),
		catalogvalidator.NewCostumeValidator(cfg.Log),
		cfg,
	)

	admin, err := seedAccounts(ctx, cfg, users)
	if err != nil {
		cfg.Log.Fatal("Seeding users failed", "error", err)
	}
	if err := seedCatalog(ctx, cfg, costumes, admin); err != nil {
		cfg.Log.Fatal("Seeding costumes failed", "error", err)
	}

	cfg.Log.Info("Database seeded successfully")
}

func seedAccounts(ctx context.Context, cfg *config.Config, users identityservice.UserService) (*model.Actor, error) {
	var admin *model.Actor
	for _, u := range seedUsers {
		_, err := users.Provision(ctx, u.email, u.password, u.name, u.role)
		switch {
		case err == nil:
		case apperrors.HasCode(err, apperrors.CodeConflict):
			cfg.Log.Info("User already exists", "email", u.email)
		default:
			return nil, err
		}
		if u.role == model.RoleAdmin {
			admin = &model.Actor{Email: u.email, Name: u.name, Role: u.role}
		}
	}
	return admin, nil
}

func seedCatalog(ctx context.Context, cfg *config.Config, costumes catalogservice.CostumeService, admin *model.Actor) error {
	existing, err := costumes.List(ctx, model.CostumeFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		cfg.Log.Info("Catalog already populated, skipping costumes", "count", len(existing))
		return nil
	}

	for i := range sampleCostumes {
		costume, err := costumes.Create(ctx, admin, &sampleCostumes[i])
		if err != nil {
			return err
		}
		cfg.Log.Info("Costume created", "id", costume.ID, "name", costume.Name)
	}
	return nil
}
