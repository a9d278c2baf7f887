package service

import (
	"context"
	"errors"
	"time"

	"wardrobe/internal/authz"
	bookingserrors "wardrobe/internal/bookings/errors"
	"wardrobe/internal/bookings/repository"
	"wardrobe/internal/bookings/validator"
	"wardrobe/pkg/config"
	apperrors "wardrobe/pkg/errors"
	"wardrobe/pkg/model"
	"wardrobe/pkg/validation"

	"github.com/google/uuid"
)

const bookingStore = "Booking store"

// CostumeLookup resolves the costume a booking is made against.
type CostumeLookup interface {
	Get(ctx context.Context, id string) (*model.Costume, error)
}

type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingStatusChanged(ctx context.Context, booking *model.Booking, from model.BookingStatus)
}

type Recorder interface {
	BookingCreated()
	BookingTransition(from, to string)
}

type BookingService interface {
	Create(ctx context.Context, actor *model.Actor, req *model.BookingCreate) (*model.Booking, error)
	ListMine(ctx context.Context, actor *model.Actor) ([]*model.Booking, error)
	ListAll(ctx context.Context, actor *model.Actor) ([]*model.Booking, error)
	SetStatus(ctx context.Context, actor *model.Actor, id string, status string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	costumes  CostumeLookup
	validator *validator.BookingValidator
	events    EventPublisher
	recorder  Recorder
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	costumes CostumeLookup,
	validator *validator.BookingValidator,
	events EventPublisher,
	recorder Recorder,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		costumes:  costumes,
		validator: validator,
		events:    events,
		recorder:  recorder,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, actor *model.Actor, req *model.BookingCreate) (*model.Booking, error) {
	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}

	s.validator.Normalize(req)
	if err := s.validator.Validate(req); err != nil {
		return nil, validation.ToAppError(err)
	}

	if req.IdempotencyKey != "" {
		existing, err := s.findReplay(ctx, actor.Email, req)
		if err != nil || existing != nil {
			return existing, err
		}
	}

	costume, err := s.costumes.Get(ctx, req.CostumeID)
	if err != nil {
		return nil, err
	}

	if s.cfg.BookingEnforceSize && !costume.HasSize(req.Size) {
		s.cfg.Log.Warn("Booking size not offered", "costume_id", costume.ID, "size", req.Size)
		return nil, validation.ToAppError(validation.Field("size", "size must be one of the costume's sizes"))
	}

	booking := &model.Booking{
		ID:             uuid.New().String(),
		UserEmail:      actor.Email,
		UserName:       actor.Name,
		CostumeID:      costume.ID,
		CostumeName:    costume.Name,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Size:           req.Size,
		Status:         model.BookingPending,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}
	if req.Notes != "" {
		notes := req.Notes
		booking.Notes = &notes
	}

	if s.cfg.BookingEnforceOverlap {
		err = s.createExclusive(ctx, booking)
	} else {
		err = s.insert(ctx, booking)
	}
	if err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicate) {
			existing, findErr := s.findReplay(ctx, actor.Email, req)
			if findErr == nil && existing == nil {
				findErr = apperrors.Conflict("Idempotency key is already in use")
			}
			return existing, findErr
		}
		return nil, err
	}

	s.recorder.BookingCreated()
	s.events.BookingCreated(ctx, booking)
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_email", booking.UserEmail,
		"costume_id", booking.CostumeID,
		"start_date", booking.StartDate,
		"end_date", booking.EndDate,
	)
	return booking, nil
}

// findReplay returns the booking already created under the request's key, or
// nil when the key is unused. A key reused for a different booking is a Conflict.
func (s *bookingService) findReplay(ctx context.Context, email string, req *model.BookingCreate) (*model.Booking, error) {
	existing, err := s.repo.FindByIdempotencyKey(ctx, email, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, nil
		}
		s.cfg.Log.Error("Failed to look up idempotency key", "user_email", email, "error", err)
		return nil, apperrors.Unavailable(bookingStore, err)
	}
	if !sameBooking(existing, req) {
		s.cfg.Log.Warn("Idempotency key reused for a different booking", "id", existing.ID, "user_email", email)
		return nil, apperrors.Conflict("Idempotency key was already used for a different booking").
			WithDetails(map[string]any{"booking_id": existing.ID})
	}
	s.cfg.Log.Info("Returning booking for repeated idempotency key", "id", existing.ID, "user_email", email)
	return existing, nil
}

func sameBooking(b *model.Booking, req *model.BookingCreate) bool {
	return b.CostumeID == req.CostumeID &&
		b.StartDate == req.StartDate &&
		b.EndDate == req.EndDate &&
		b.Size == req.Size
}

// createExclusive holds the costume lock while checking active bookings for
// a date overlap and writing the new one.
func (s *bookingService) createExclusive(ctx context.Context, booking *model.Booking) error {
	start, end, err := s.validator.ParseDateRange(booking.StartDate, booking.EndDate)
	if err != nil {
		return validation.ToAppError(err)
	}

	lock, err := s.acquireCostumeLock(ctx, booking.CostumeID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(context.WithoutCancel(ctx), lock); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "costume_id", lock.ID, "error", releaseErr)
		}
	}()

	active, err := s.repo.FindActiveByCostume(ctx, booking.CostumeID)
	if err != nil {
		s.cfg.Log.Error("Failed to load active bookings", "costume_id", booking.CostumeID, "error", err)
		return apperrors.Unavailable(bookingStore, err)
	}
	for _, other := range active {
		otherStart, otherEnd, err := s.validator.ParseDateRange(other.StartDate, other.EndDate)
		if err != nil {
			// Bookings written while the check was off may carry free-form dates.
			continue
		}
		if validator.Overlaps(start, end, otherStart, otherEnd) {
			s.cfg.Log.Warn("Booking overlaps an active booking",
				"costume_id", booking.CostumeID,
				"conflicting_id", other.ID,
			)
			return apperrors.Conflict("Costume is already booked for the requested dates").
				WithDetails(map[string]any{"conflicting_booking_id": other.ID})
		}
	}

	return s.insert(ctx, booking)
}

func (s *bookingService) acquireCostumeLock(ctx context.Context, costumeID string) (*model.BookingLock, error) {
	lock, err := s.lockRepo.Acquire(ctx, costumeID, s.cfg.BookingLockTTL)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return nil, apperrors.Conflict("This costume is currently being booked by another request. Please try again.")
		}
		s.cfg.Log.Error("Failed to acquire booking lock", "costume_id", costumeID, "error", err)
		return nil, apperrors.Unavailable(bookingStore, err)
	}
	return lock, nil
}

func (s *bookingService) insert(ctx context.Context, booking *model.Booking) error {
	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicate) {
			return err
		}
		s.cfg.Log.Error("Failed to create booking", "costume_id", booking.CostumeID, "error", err)
		return apperrors.Unavailable(bookingStore, err)
	}
	return nil
}

func (s *bookingService) ListMine(ctx context.Context, actor *model.Actor) ([]*model.Booking, error) {
	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByUser(ctx, actor.Email, config.MaxListResults)
	if err != nil {
		s.cfg.Log.Error("Failed to list user bookings", "user_email", actor.Email, "error", err)
		return nil, apperrors.Unavailable(bookingStore, err)
	}

	visible := bookings[:0]
	for _, b := range bookings {
		if authz.CanReadBooking(actor, b) {
			visible = append(visible, b)
		}
	}
	return visible, nil
}

func (s *bookingService) ListAll(ctx context.Context, actor *model.Actor) ([]*model.Booking, error) {
	if err := authz.Require(actor, model.RoleAdmin); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindAll(ctx, config.MaxListResults)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Unavailable(bookingStore, err)
	}
	return bookings, nil
}

func (s *bookingService) SetStatus(ctx context.Context, actor *model.Actor, id string, status string) (*model.Booking, error) {
	if err := authz.Require(actor, model.RoleAdmin); err != nil {
		return nil, err
	}

	next, err := model.ParseBookingStatus(status)
	if err != nil {
		return nil, validation.ToAppError(validation.Field("status", "status must be one of: pending confirmed completed cancelled"))
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	prev := booking.Status
	if !prev.CanTransitionTo(next) {
		s.cfg.Log.Warn("Rejected booking status change", "id", id, "from", prev, "to", next)
		return nil, apperrors.InvalidTransition(prev.String(), next.String())
	}

	if err := s.repo.UpdateStatus(ctx, id, prev, next); err != nil {
		if errors.Is(err, bookingserrors.ErrStatusChanged) {
			return nil, apperrors.Conflict("Booking status was changed by another request. Reload and try again.")
		}
		return nil, s.mapLookupError(err, id)
	}
	booking.Status = next

	s.recorder.BookingTransition(prev.String(), next.String())
	s.events.BookingStatusChanged(ctx, booking, prev)
	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"from", prev,
		"to", next,
		"by", actor.Email,
	)
	return booking, nil
}

func (s *bookingService) mapLookupError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	s.cfg.Log.Error("Booking store failure", "id", id, "error", err)
	return apperrors.Unavailable(bookingStore, err)
}
