package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingserrors "wardrobe/internal/bookings/errors"
	"wardrobe/pkg/model"

	"github.com/google/uuid"
)

// MemoryBookingRepository keeps bookings in process memory with the same
// ordering and uniqueness rules as the database backends.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]model.Booking
	writes   int
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{bookings: make(map[string]model.Booking)}
}

func (r *MemoryBookingRepository) Create(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.IdempotencyKey != "" {
		for _, b := range r.bookings {
			if b.UserEmail == booking.UserEmail && b.IdempotencyKey == booking.IdempotencyKey {
				return bookingserrors.ErrDuplicate
			}
		}
	}
	r.bookings[booking.ID] = cloneBooking(*booking)
	r.writes++
	return nil
}

func (r *MemoryBookingRepository) FindByID(_ context.Context, id string) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	b = cloneBooking(b)
	return &b, nil
}

func (r *MemoryBookingRepository) FindByIdempotencyKey(_ context.Context, email, key string) (*model.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.UserEmail == email && b.IdempotencyKey == key {
			b = cloneBooking(b)
			return &b, nil
		}
	}
	return nil, bookingserrors.ErrNotFound
}

func (r *MemoryBookingRepository) FindByUser(_ context.Context, email string, limit int) ([]*model.Booking, error) {
	return r.filter(func(b *model.Booking) bool { return b.UserEmail == email }, limit), nil
}

func (r *MemoryBookingRepository) FindAll(_ context.Context, limit int) ([]*model.Booking, error) {
	return r.filter(func(*model.Booking) bool { return true }, limit), nil
}

func (r *MemoryBookingRepository) FindActiveByCostume(_ context.Context, costumeID string) ([]*model.Booking, error) {
	return r.filter(func(b *model.Booking) bool {
		return b.CostumeID == costumeID && b.Status.IsActive()
	}, 0), nil
}

func (r *MemoryBookingRepository) filter(keep func(*model.Booking) bool, limit int) []*model.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Booking, 0)
	for _, b := range r.bookings {
		b := cloneBooking(b)
		if keep(&b) {
			result = append(result, &b)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (r *MemoryBookingRepository) UpdateStatus(_ context.Context, id string, prev, next model.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return bookingserrors.ErrNotFound
	}
	if b.Status != prev {
		return bookingserrors.ErrStatusChanged
	}
	b.Status = next
	r.bookings[id] = b
	r.writes++
	return nil
}

// Writes counts successful mutations.
func (r *MemoryBookingRepository) Writes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.writes
}

func cloneBooking(b model.Booking) model.Booking {
	if b.Notes != nil {
		notes := *b.Notes
		b.Notes = &notes
	}
	return b
}

type MemoryLockRepository struct {
	mu    sync.Mutex
	locks map[string]model.BookingLock
	now   func() time.Time
}

func NewMemoryLockRepository() *MemoryLockRepository {
	return &MemoryLockRepository{
		locks: make(map[string]model.BookingLock),
		now:   time.Now,
	}
}

func (r *MemoryLockRepository) Acquire(_ context.Context, key string, ttl time.Duration) (*model.BookingLock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if held, ok := r.locks[key]; ok && !held.Expired(now) {
		return nil, bookingserrors.ErrLockHeld
	}
	lock := model.BookingLock{ID: key, Token: uuid.New().String(), ExpiresAt: now.Add(ttl), CreatedAt: now}
	r.locks[key] = lock
	return &lock, nil
}

func (r *MemoryLockRepository) Release(_ context.Context, lock *model.BookingLock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if held, ok := r.locks[lock.ID]; ok && held.Token == lock.Token {
		delete(r.locks, lock.ID)
	}
	return nil
}
