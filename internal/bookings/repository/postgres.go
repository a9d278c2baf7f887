package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	bookingserrors "wardrobe/internal/bookings/errors"
	"wardrobe/pkg/db/postgres"
	"wardrobe/pkg/model"
)

const (
	bookingColumns = `id, user_email, user_name, costume_id, costume_name, start_date, end_date, size, notes, status, idempotency_key, created_at`

	insertBookingQuery = `INSERT INTO bookings (` + bookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	selectBookingQuery = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	selectBookingByKeyQuery = `SELECT ` + bookingColumns + `
FROM bookings WHERE user_email = $1 AND idempotency_key = $2`

	listBookingsByUserQuery = `SELECT ` + bookingColumns + `
FROM bookings WHERE user_email = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

	listBookingsQuery = `SELECT ` + bookingColumns + `
FROM bookings
ORDER BY created_at DESC, id DESC
LIMIT $1`

	listActiveByCostumeQuery = `SELECT ` + bookingColumns + `
FROM bookings WHERE costume_id = $1 AND status IN ($2, $3)`

	updateStatusQuery = `UPDATE bookings SET status = $3 WHERE id = $1 AND status = $2`

	bookingExistsQuery = `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`
)

type postgresBookingRepository struct {
	db           *sql.DB
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewPostgresBookingRepository(db *sql.DB, readTimeout, writeTimeout time.Duration) BookingRepository {
	return &postgresBookingRepository{
		db:           db,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*model.Booking, error) {
	var (
		booking model.Booking
		notes   sql.NullString
		status  string
		key     sql.NullString
	)
	err := row.Scan(&booking.ID, &booking.UserEmail, &booking.UserName, &booking.CostumeID, &booking.CostumeName,
		&booking.StartDate, &booking.EndDate, &booking.Size, &notes, &status, &key, &booking.CreatedAt)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	booking.Status = model.BookingStatus(status)
	booking.IdempotencyKey = key.String
	return &booking, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *postgresBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	var notes sql.NullString
	if booking.Notes != nil {
		notes = sql.NullString{String: *booking.Notes, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, insertBookingQuery,
		booking.ID, booking.UserEmail, booking.UserName, booking.CostumeID, booking.CostumeName,
		booking.StartDate, booking.EndDate, booking.Size, notes, booking.Status.String(),
		nullable(booking.IdempotencyKey), booking.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, "bookings_user_idempotency_key") {
			return bookingserrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *postgresBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	return r.queryOne(ctx, selectBookingQuery, id)
}

func (r *postgresBookingRepository) FindByIdempotencyKey(ctx context.Context, email, key string) (*model.Booking, error) {
	return r.queryOne(ctx, selectBookingByKeyQuery, email, key)
}

func (r *postgresBookingRepository) queryOne(ctx context.Context, query string, args ...any) (*model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return booking, nil
}

func (r *postgresBookingRepository) FindByUser(ctx context.Context, email string, limit int) ([]*model.Booking, error) {
	return r.query(ctx, listBookingsByUserQuery, email, limit)
}

func (r *postgresBookingRepository) FindAll(ctx context.Context, limit int) ([]*model.Booking, error) {
	return r.query(ctx, listBookingsQuery, limit)
}

func (r *postgresBookingRepository) FindActiveByCostume(ctx context.Context, costumeID string) ([]*model.Booking, error) {
	active := activeStatuses()
	return r.query(ctx, listActiveByCostumeQuery, costumeID, active[0], active[1])
}

func (r *postgresBookingRepository) query(ctx context.Context, query string, args ...any) ([]*model.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	bookings := make([]*model.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bookings: %w", err)
	}
	return bookings, nil
}

func (r *postgresBookingRepository) UpdateStatus(ctx context.Context, id string, prev, next model.BookingStatus) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, updateStatusQuery, id, prev.String(), next.String())
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, bookingExistsQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check booking existence: %w", err)
	}
	if !exists {
		return bookingserrors.ErrNotFound
	}
	return bookingserrors.ErrStatusChanged
}
