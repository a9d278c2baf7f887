package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	bookingserrors "wardrobe/internal/bookings/errors"
	"wardrobe/internal/bookings/repository"
	"wardrobe/internal/bookings/validator"
	catalogrepo "wardrobe/internal/catalog/repository"
	catalogservice "wardrobe/internal/catalog/service"
	catalogvalidator "wardrobe/internal/catalog/validator"
	"wardrobe/pkg/config"
	apperrors "wardrobe/pkg/errors"
	"wardrobe/pkg/logger"
	"wardrobe/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin = &model.Actor{Email: "admin@theatrical.com", Name: "Admin User", Role: model.RoleAdmin}
	alice = &model.Actor{Email: "alice@example.com", Name: "Alice", Role: model.RoleUser}
	bob   = &model.Actor{Email: "bob@example.com", Name: "Bob", Role: model.RoleUser}
)

// ────────────────────────────────────────────────
// Test doubles
// ────────────────────────────────────────────────

type recordedEvent struct {
	kind   string
	id     string
	from   model.BookingStatus
	status model.BookingStatus
}

type fakeEvents struct {
	events []recordedEvent
}

func (f *fakeEvents) BookingCreated(_ context.Context, b *model.Booking) {
	f.events = append(f.events, recordedEvent{kind: "created", id: b.ID, status: b.Status})
}

func (f *fakeEvents) BookingStatusChanged(_ context.Context, b *model.Booking, from model.BookingStatus) {
	f.events = append(f.events, recordedEvent{kind: "status_changed", id: b.ID, from: from, status: b.Status})
}

type fakeRecorder struct {
	created     int
	transitions []string
}

func (f *fakeRecorder) BookingCreated() { f.created++ }

func (f *fakeRecorder) BookingTransition(from, to string) {
	f.transitions = append(f.transitions, from+"->"+to)
}

type fixture struct {
	svc      BookingService
	repo     *repository.MemoryBookingRepository
	locks    *repository.MemoryLockRepository
	catalog  catalogservice.CostumeService
	events   *fakeEvents
	recorder *fakeRecorder
	cfg      *config.Config
}

func newFixture(t *testing.T, tweak func(*config.Config)) *fixture {
	t.Helper()
	log := logger.Discard()
	cfg := &config.Config{Log: log, BookingLockTTL: 10 * time.Second}
	if tweak != nil {
		tweak(cfg)
	}

	f := &fixture{
		repo:     repository.NewMemoryBookingRepository(),
		locks:    repository.NewMemoryLockRepository(),
		events:   &fakeEvents{},
		recorder: &fakeRecorder{},
		cfg:      cfg,
	}
	f.catalog = catalogservice.NewCostumeService(catalogrepo.NewMemoryCostumeRepository(), catalogvalidator.NewCostumeValidator(log), cfg)
	f.svc = NewBookingService(f.repo, f.locks, f.catalog, validator.NewBookingValidator(log), f.events, f.recorder, cfg)
	return f
}

func (f *fixture) costume(t *testing.T, name string, sizes []string, available bool) *model.Costume {
	t.Helper()
	price := 40.0
	c, err := f.catalog.Create(context.Background(), admin, &model.CostumeCreate{
		Name:        name,
		Description: name + " for the stage",
		Category:    "Fantasy",
		Sizes:       sizes,
		Images:      []string{"https://img.example/costume.jpg"},
		PricePerDay: &price,
		Available:   &available,
	})
	require.NoError(t, err)
	return c
}

func bookingReq(costumeID, start, end, size string) *model.BookingCreate {
	return &model.BookingCreate{CostumeID: costumeID, StartDate: start, EndDate: end, Size: size}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, apperrors.HasCode(err, code), "expected %s, got %v", code, err)
}

// ────────────────────────────────────────────────
// Scenario
// ────────────────────────────────────────────────

func TestBookingLifecycleScenario(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	cloak := f.costume(t, "Velvet Cloak", []string{"S", "M"}, true)

	booking, err := f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-01-01", "2025-01-05", "M"))
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, booking.Status)
	assert.Equal(t, "Alice", booking.UserName)
	assert.Equal(t, "Velvet Cloak", booking.CostumeName)

	sibling, err := f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-02-01", "2025-02-03", "S"))
	require.NoError(t, err)

	confirmed, err := f.svc.SetStatus(ctx, admin, booking.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, model.BookingConfirmed, confirmed.Status)

	_, err = f.svc.SetStatus(ctx, admin, sibling.ID, "completed")
	requireCode(t, err, apperrors.CodeInvalidTransition)
	details := apperrors.AsAppError(err).Details
	assert.Equal(t, "pending", details["from"])
	assert.Equal(t, "completed", details["to"])

	mine, err := f.svc.ListMine(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, model.BookingConfirmed, findBooking(mine, booking.ID).Status)
	assert.Equal(t, model.BookingPending, findBooking(mine, sibling.ID).Status)

	assert.Equal(t, 2, f.recorder.created)
	assert.Equal(t, []string{"pending->confirmed"}, f.recorder.transitions)
	require.Len(t, f.events.events, 3)
	assert.Equal(t, recordedEvent{kind: "status_changed", id: booking.ID, from: model.BookingPending, status: model.BookingConfirmed}, f.events.events[2])
}

func findBooking(list []*model.Booking, id string) *model.Booking {
	for _, b := range list {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// ────────────────────────────────────────────────
// Create
// ────────────────────────────────────────────────

func TestCreate_RequiresActor(t *testing.T) {
	f := newFixture(t, nil)
	cloak := f.costume(t, "Velvet Cloak", []string{"M"}, true)

	_, err := f.svc.Create(context.Background(), nil, bookingReq(cloak.ID, "2025-01-01", "2025-01-02", "M"))
	requireCode(t, err, apperrors.CodeUnauthorized)
	assert.Zero(t, f.repo.Writes())
}

func TestCreate_UnavailableCostumeStillBooks(t *testing.T) {
	f := newFixture(t, nil)
	retired := f.costume(t, "Retired Gown", []string{"L"}, false)

	booking, err := f.svc.Create(context.Background(), alice, bookingReq(retired.ID, "2025-03-01", "2025-03-02", "L"))
	require.NoError(t, err)
	assert.Equal(t, model.BookingPending, booking.Status)
}

func TestCreate_UnknownCostume(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Create(context.Background(), alice, bookingReq("does-not-exist", "2025-01-01", "2025-01-02", "M"))
	requireCode(t, err, apperrors.CodeNotFound)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Create(context.Background(), alice, &model.BookingCreate{Notes: "hello"})
	requireCode(t, err, apperrors.CodeValidation)
}

func TestCreate_FreeFormDatesAcceptedWithoutOverlapCheck(t *testing.T) {
	f := newFixture(t, nil)
	cloak := f.costume(t, "Velvet Cloak", []string{"M"}, true)

	booking, err := f.svc.Create(context.Background(), alice, bookingReq(cloak.ID, "next friday", "the week after", "XXL"))
	require.NoError(t, err)
	assert.Equal(t, "next friday", booking.StartDate)
	assert.Equal(t, "XXL", booking.Size)
}

func TestCreate_NotesOptional(t *testing.T) {
	f := newFixture(t, nil)
	cloak := f.costume(t, "Velvet Cloak", []string{"M"}, true)
	ctx := context.Background()

	without, err := f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-01-01", "2025-01-02", "M"))
	require.NoError(t, err)
	assert.Nil(t, without.Notes)

	req := bookingReq(cloak.ID, "2025-01-03", "2025-01-04", "M")
	req.Notes = "  hem the sleeves "
	with, err := f.svc.Create(ctx, alice, req)
	require.NoError(t, err)
	require.NotNil(t, with.Notes)
	assert.Equal(t, "hem the sleeves", *with.Notes)
}

func TestCreate_IdempotencyKey(t *testing.T) {
	f := newFixture(t, nil)
	cloak := f.costume(t, "Velvet Cloak", []string{"M"}, true)
	ctx := context.Background()

	req := func() *model.BookingCreate {
		r := bookingReq(cloak.ID, "2025-01-01", "2025-01-05", "M")
		r.IdempotencyKey = "checkout-42"
		return r
	}

	first, err := f.svc.Create(ctx, alice, req())
	require.NoError(t, err)
	second, err := f.svc.Create(ctx, alice, req())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, f.repo.Writes())
	assert.Equal(t, 1, f.recorder.created)

	other, err := f.svc.Create(ctx, bob, req())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID, "keys are scoped per user")
}

func TestCreate_IdempotencyKeyReusedForDifferentBooking(t *testing.T) {
	f := newFixture(t, nil)
	cloak := f.costume(t, "Velvet Cloak", []string{"M", "L"}, true)
	gown := f.costume(t, "Ball Gown", []string{"M"}, true)
	ctx := context.Background()

	first := bookingReq(cloak.ID, "2025-01-01", "2025-01-05", "M")
	first.IdempotencyKey = "checkout-7"
	original, err := f.svc.Create(ctx, alice, first)
	require.NoError(t, err)

	changed := []*model.BookingCreate{
		bookingReq(gown.ID, "2025-01-01", "2025-01-05", "M"),
		bookingReq(cloak.ID, "2025-01-02", "2025-01-05", "M"),
		bookingReq(cloak.ID, "2025-01-01", "2025-01-06", "M"),
		bookingReq(cloak.ID, "2025-01-01", "2025-01-05", "L"),
	}
	for _, req := range changed {
		req.IdempotencyKey = "checkout-7"
		_, err := f.svc.Create(ctx, alice, req)
		requireCode(t, err, apperrors.CodeConflict)
		assert.Equal(t, original.ID, apperrors.AsAppError(err).Details["booking_id"])
	}
	assert.Equal(t, 1, f.repo.Writes())
}

// racingRepo hides the first booking from the idempotency lookup until the
// insert has failed, as when two requests with one key arrive together.
type racingRepo struct {
	*repository.MemoryBookingRepository
	lookups int
	winner  *model.Booking
}

func (r *racingRepo) FindByIdempotencyKey(ctx context.Context, email, key string) (*model.Booking, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, bookingserrors.ErrNotFound
	}
	return r.winner, nil
}

func (r *racingRepo) Create(ctx context.Context, b *model.Booking) error {
	return bookingserrors.ErrDuplicate
}

func TestCreate_IdempotencyRaceReturnsWinner(t *testing.T) {
	f := newFixture(t, nil)
	cloak := f.costume(t, "Velvet Cloak", []string{"M"}, true)
	winner := &model.Booking{
		ID:             "winner",
		UserEmail:      alice.Email,
		CostumeID:      cloak.ID,
		StartDate:      "2025-01-01",
		EndDate:        "2025-01-05",
		Size:           "M",
		IdempotencyKey: "k",
	}
	repo := &racingRepo{MemoryBookingRepository: repository.NewMemoryBookingRepository(), winner: winner}
	svc := NewBookingService(repo, f.locks, f.catalog, validator.NewBookingValidator(logger.Discard()), f.events, f.recorder, f.cfg)

	req := bookingReq(cloak.ID, "2025-01-01", "2025-01-05", "M")
	req.IdempotencyKey = "k"
	got, err := svc.Create(context.Background(), alice, req)
	require.NoError(t, err)
	assert.Equal(t, "winner", got.ID)
	assert.Zero(t, f.recorder.created)
}

func TestCreate_SizeEnforcement(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.BookingEnforceSize = true })
	cloak := f.costume(t, "Velvet Cloak", []string{"S", "M"}, true)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-01-01", "2025-01-02", "XL"))
	requireCode(t, err, apperrors.CodeValidation)

	_, err = f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-01-01", "2025-01-02", "M"))
	require.NoError(t, err)
}

func TestCreate_OverlapEnforcement(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.BookingEnforceOverlap = true })
	cloak := f.costume(t, "Velvet Cloak", []string{"M"}, true)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-01-01", "2025-01-05", "M"))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, bob, bookingReq(cloak.ID, "2025-01-05", "2025-01-07", "M"))
	requireCode(t, err, apperrors.CodeConflict)
	assert.Equal(t, first.ID, apperrors.AsAppError(err).Details["conflicting_booking_id"])

	_, err = f.svc.Create(ctx, bob, bookingReq(cloak.ID, "2025-01-06", "2025-01-07", "M"))
	require.NoError(t, err, "adjacent range does not overlap")

	_, err = f.svc.SetStatus(ctx, admin, first.ID, "cancelled")
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, bob, bookingReq(cloak.ID, "2025-01-02", "2025-01-03", "M"))
	require.NoError(t, err, "cancelled bookings release their dates")

	_, err = f.svc.Create(ctx, bob, bookingReq(cloak.ID, "2025-02-05", "2025-02-01", "M"))
	requireCode(t, err, apperrors.CodeValidation)
}

func TestCreate_OverlapLockHeld(t *testing.T) {
	f := newFixture(t, func(c *config.Config) { c.BookingEnforceOverlap = true })
	cloak := f.costume(t, "Velvet Cloak", []string{"M"}, true)
	ctx := context.Background()

	held, err := f.locks.Acquire(ctx, cloak.ID, time.Minute)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-01-01", "2025-01-02", "M"))
	requireCode(t, err, apperrors.CodeConflict)

	require.NoError(t, f.locks.Release(ctx, held))
	_, err = f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-01-01", "2025-01-02", "M"))
	require.NoError(t, err)

	// The lock taken by Create is released afterwards.
	again, err := f.locks.Acquire(ctx, cloak.ID, time.Minute)
	require.NoError(t, err)
	require.NoError(t, f.locks.Release(ctx, again))
}

// ────────────────────────────────────────────────
// Listing
// ────────────────────────────────────────────────

func TestBookingKeepsSnapshotAfterCostumeRenamedAndDeleted(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	cloak := f.costume(t, "Velvet Cloak", []string{"M"}, true)

	booking, err := f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-01-01", "2025-01-05", "M"))
	require.NoError(t, err)

	renamed := "Renamed"
	_, err = f.catalog.Update(ctx, admin, cloak.ID, &model.CostumeUpdate{Name: &renamed})
	require.NoError(t, err)
	require.NoError(t, f.catalog.Delete(ctx, admin, cloak.ID))

	mine, err := f.svc.ListMine(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, booking.ID, mine[0].ID)
	assert.Equal(t, "Velvet Cloak", mine[0].CostumeName)
	assert.Equal(t, cloak.ID, mine[0].CostumeID)

	all, err := f.svc.ListAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Velvet Cloak", all[0].CostumeName)

	confirmed, err := f.svc.SetStatus(ctx, admin, booking.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "Velvet Cloak", confirmed.CostumeName)
}

func TestListMine_OnlyOwnBookingsNewestFirst(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []model.Booking{
		{ID: "a1", UserEmail: alice.Email, Status: model.BookingPending, CreatedAt: base},
		{ID: "b1", UserEmail: bob.Email, Status: model.BookingPending, CreatedAt: base.Add(time.Minute)},
		{ID: "a2", UserEmail: alice.Email, Status: model.BookingPending, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "a3", UserEmail: alice.Email, Status: model.BookingPending, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "u1", UserEmail: "Alice@example.com", Status: model.BookingPending, CreatedAt: base.Add(3 * time.Minute)},
	}
	for i := range seed {
		require.NoError(t, f.repo.Create(ctx, &seed[i]))
	}

	mine, err := f.svc.ListMine(ctx, alice)
	require.NoError(t, err)

	ids := make([]string, 0, len(mine))
	for _, b := range mine {
		assert.Equal(t, alice.Email, b.UserEmail)
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"a3", "a2", "a1"}, ids)

	_, err = f.svc.ListMine(ctx, nil)
	requireCode(t, err, apperrors.CodeUnauthorized)
}

func TestListAll_AdminOnly(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	cloak := f.costume(t, "Velvet Cloak", []string{"M"}, true)
	_, err := f.svc.Create(ctx, alice, bookingReq(cloak.ID, "2025-01-01", "2025-01-02", "M"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, bob, bookingReq(cloak.ID, "2025-01-03", "2025-01-04", "M"))
	require.NoError(t, err)

	all, err := f.svc.ListAll(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListAll(ctx, alice)
	requireCode(t, err, apperrors.CodeForbidden)
}

// ────────────────────────────────────────────────
// SetStatus
// ────────────────────────────────────────────────

func TestSetStatus_TransitionGrid(t *testing.T) {
	allowed := map[string]bool{
		"pending->confirmed":   true,
		"pending->cancelled":   true,
		"confirmed->completed": true,
		"confirmed->cancelled": true,
	}

	for _, from := range model.BookingStatuses() {
		for _, to := range model.BookingStatuses() {
			edge := fmt.Sprintf("%s->%s", from, to)
			t.Run(edge, func(t *testing.T) {
				f := newFixture(t, nil)
				ctx := context.Background()
				require.NoError(t, f.repo.Create(ctx, &model.Booking{ID: "b-1", UserEmail: alice.Email, Status: from}))

				updated, err := f.svc.SetStatus(ctx, admin, "b-1", string(to))
				if allowed[edge] {
					require.NoError(t, err)
					assert.Equal(t, to, updated.Status)
					stored, _ := f.repo.FindByID(ctx, "b-1")
					assert.Equal(t, to, stored.Status)
					return
				}
				requireCode(t, err, apperrors.CodeInvalidTransition)
				stored, _ := f.repo.FindByID(ctx, "b-1")
				assert.Equal(t, from, stored.Status, "rejected transition must not write")
			})
		}
	}
}

func TestSetStatus_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	require.NoError(t, f.repo.Create(ctx, &model.Booking{ID: "b-1", UserEmail: alice.Email, Status: model.BookingPending}))

	_, err := f.svc.SetStatus(ctx, admin, "b-1", "shipped")
	requireCode(t, err, apperrors.CodeValidation)

	_, err = f.svc.SetStatus(ctx, admin, "missing", "confirmed")
	requireCode(t, err, apperrors.CodeNotFound)

	_, err = f.svc.SetStatus(ctx, alice, "b-1", "confirmed")
	requireCode(t, err, apperrors.CodeForbidden)

	_, err = f.svc.SetStatus(ctx, nil, "b-1", "confirmed")
	requireCode(t, err, apperrors.CodeUnauthorized)
}

// staleRepo reports the status read before a concurrent writer changed it.
type staleRepo struct {
	*repository.MemoryBookingRepository
}

func (r staleRepo) UpdateStatus(context.Context, string, model.BookingStatus, model.BookingStatus) error {
	return bookingserrors.ErrStatusChanged
}

func TestSetStatus_LostRaceIsConflict(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	repo := staleRepo{repository.NewMemoryBookingRepository()}
	require.NoError(t, repo.Create(ctx, &model.Booking{ID: "b-1", Status: model.BookingPending}))
	svc := NewBookingService(repo, f.locks, f.catalog, validator.NewBookingValidator(logger.Discard()), f.events, f.recorder, f.cfg)

	_, err := svc.SetStatus(ctx, admin, "b-1", "confirmed")
	requireCode(t, err, apperrors.CodeConflict)
	assert.Empty(t, f.events.events)
}
