package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	identityerrors "wardrobe/internal/identity/errors"
	"wardrobe/pkg/db/postgres"
	"wardrobe/pkg/model"
)

const (
	insertUserQuery = `INSERT INTO users (email, password_hash, name, role, created_at)
VALUES ($1, $2, $3, $4, $5)`

	selectUserByEmailQuery = `SELECT email, password_hash, name, role, created_at
FROM users WHERE email = $1`
)

type postgresUserRepository struct {
	db           *sql.DB
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewPostgresUserRepository(db *sql.DB, readTimeout, writeTimeout time.Duration) UserRepository {
	return &postgresUserRepository{
		db:           db,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, insertUserQuery,
		user.Email, user.PasswordHash, user.Name, string(user.Role), user.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err, "") {
			return fmt.Errorf("%w: %s", identityerrors.ErrDuplicate, user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	var (
		user model.User
		role string
	)
	err := r.db.QueryRowContext(ctx, selectUserByEmailQuery, email).
		Scan(&user.Email, &user.PasswordHash, &user.Name, &role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.Role = model.Role(role)
	return &user, nil
}
