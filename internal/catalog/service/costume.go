package service

import (
	"context"
	"errors"
	"time"

	"wardrobe/internal/authz"
	catalogerrors "wardrobe/internal/catalog/errors"
	"wardrobe/internal/catalog/repository"
	"wardrobe/internal/catalog/validator"
	"wardrobe/pkg/config"
	apperrors "wardrobe/pkg/errors"
	"wardrobe/pkg/model"
	"wardrobe/pkg/validation"

	"github.com/google/uuid"
)

const catalogStore = "Catalog store"

type CostumeService interface {
	List(ctx context.Context, filter model.CostumeFilter) ([]*model.Costume, error)
	Get(ctx context.Context, id string) (*model.Costume, error)
	Create(ctx context.Context, actor *model.Actor, req *model.CostumeCreate) (*model.Costume, error)
	Update(ctx context.Context, actor *model.Actor, id string, req *model.CostumeUpdate) (*model.Costume, error)
	Delete(ctx context.Context, actor *model.Actor, id string) error
}

type costumeService struct {
	repo      repository.CostumeRepository
	validator *validator.CostumeValidator
	cfg       *config.Config
}

func NewCostumeService(repo repository.CostumeRepository, validator *validator.CostumeValidator, cfg *config.Config) CostumeService {
	return &costumeService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *costumeService) List(ctx context.Context, filter model.CostumeFilter) ([]*model.Costume, error) {
	costumes, err := s.repo.List(ctx, filter, config.MaxListResults)
	if err != nil {
		s.cfg.Log.Error("Failed to list costumes",
			"category", filter.Category,
			"search", filter.Search,
			"error", err,
		)
		return nil, apperrors.Unavailable(catalogStore, err)
	}
	return costumes, nil
}

func (s *costumeService) Get(ctx context.Context, id string) (*model.Costume, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("costume id is required")
	}

	costume, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id)
	}
	return costume, nil
}

func (s *costumeService) Create(ctx context.Context, actor *model.Actor, req *model.CostumeCreate) (*model.Costume, error) {
	if err := authz.Require(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	costume := &model.Costume{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Sizes:       req.Sizes,
		Images:      req.Images,
		Available:   true,
		CreatedAt:   time.Now().UTC(),
	}
	if req.PricePerDay != nil {
		costume.PricePerDay = *req.PricePerDay
	}
	if req.Available != nil {
		costume.Available = *req.Available
	}

	s.validator.Normalize(costume)
	var verrs validation.ValidationErrors
	if err := s.validator.Validate(costume); err != nil && !errors.As(err, &verrs) {
		return nil, err
	}
	if req.PricePerDay == nil {
		verrs = append(verrs, validation.Field("price_per_day", "price_per_day is required")...)
	}
	if len(verrs) > 0 {
		return nil, validation.ToAppError(verrs)
	}

	if err := s.repo.Create(ctx, costume); err != nil {
		s.cfg.Log.Error("Failed to create costume", "name", costume.Name, "error", err)
		return nil, apperrors.Unavailable(catalogStore, err)
	}

	s.cfg.Log.Info("Costume created successfully",
		"id", costume.ID,
		"name", costume.Name,
		"by", actor.Email,
	)
	return costume, nil
}

// Update merges the supplied fields into the stored costume and validates
// the result as a whole before writing it back.
func (s *costumeService) Update(ctx context.Context, actor *model.Actor, id string, req *model.CostumeUpdate) (*model.Costume, error) {
	if err := authz.Require(actor, model.RoleAdmin); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, apperrors.InvalidInput("at least one field must be provided")
	}

	costume, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyUpdate(costume, req)
	s.validator.Normalize(costume)
	if err := s.validator.Validate(costume); err != nil {
		return nil, validation.ToAppError(err)
	}

	if err := s.repo.Replace(ctx, costume); err != nil {
		return nil, s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Costume updated successfully", "id", id, "by", actor.Email)
	return costume, nil
}

func (s *costumeService) Delete(ctx context.Context, actor *model.Actor, id string) error {
	if err := authz.Require(actor, model.RoleAdmin); err != nil {
		return err
	}
	if id == "" {
		return apperrors.InvalidInput("costume id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, id)
	}

	s.cfg.Log.Info("Costume deleted successfully", "id", id, "by", actor.Email)
	return nil
}

func (s *costumeService) mapRepoError(err error, id string) error {
	if errors.Is(err, catalogerrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Costume", id)
	}
	s.cfg.Log.Error("Catalog store failure", "id", id, "error", err)
	return apperrors.Unavailable(catalogStore, err)
}

func applyUpdate(c *model.Costume, u *model.CostumeUpdate) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Category != nil {
		c.Category = *u.Category
	}
	if u.Sizes != nil {
		c.Sizes = *u.Sizes
	}
	if u.Images != nil {
		c.Images = *u.Images
	}
	if u.PricePerDay != nil {
		c.PricePerDay = *u.PricePerDay
	}
	if u.Available != nil {
		c.Available = *u.Available
	}
}
