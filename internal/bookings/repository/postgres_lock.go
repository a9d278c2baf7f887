package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	bookingserrors "wardrobe/internal/bookings/errors"
	"wardrobe/pkg/db/postgres"
	"wardrobe/pkg/model"

	"github.com/google/uuid"
)

const (
	reclaimLockQuery = `DELETE FROM booking_locks WHERE id = $1 AND expires_at <= $2`
	insertLockQuery  = `INSERT INTO booking_locks (id, token, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	releaseLockQuery = `DELETE FROM booking_locks WHERE id = $1 AND token = $2`
)

type postgresLockRepository struct {
	db           *sql.DB
	writeTimeout time.Duration
}

func NewPostgresLockRepository(db *sql.DB, writeTimeout time.Duration) BookingLockRepository {
	return &postgresLockRepository{
		db:           db,
		writeTimeout: writeTimeout,
	}
}

func (r *postgresLockRepository) Acquire(ctx context.Context, key string, ttl time.Duration) (*model.BookingLock, error) {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, reclaimLockQuery, key, now); err != nil {
		return nil, fmt.Errorf("failed to reclaim expired lock: %w", err)
	}

	lock := &model.BookingLock{
		ID:        key,
		Token:     uuid.New().String(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if _, err := r.db.ExecContext(ctx, insertLockQuery, lock.ID, lock.Token, lock.ExpiresAt, lock.CreatedAt); err != nil {
		if postgres.IsUniqueViolation(err, "booking_locks_pkey") {
			return nil, bookingserrors.ErrLockHeld
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	return lock, nil
}

func (r *postgresLockRepository) Release(ctx context.Context, lock *model.BookingLock) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, releaseLockQuery, lock.ID, lock.Token)
	return err
}
