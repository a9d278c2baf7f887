package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	identityerrors "wardrobe/internal/identity/errors"
	"wardrobe/pkg/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newMockRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresUserRepository(db, time.Second, time.Second), mock
}

func TestPostgresCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &model.User{Email: "alice@example.com", PasswordHash: "hash", Name: "Alice", Role: model.RoleUser, CreatedAt: now}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice@example.com", "hash", "Alice", "user", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_Duplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"})

	err := repo.Create(context.Background(), &model.User{Email: "alice@example.com", Role: model.RoleUser})
	if !errors.Is(err, identityerrors.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestPostgresFindByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("admin@theatrical.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "password_hash", "name", "role", "created_at"}).
			AddRow("admin@theatrical.com", "hash", "Admin User", "admin", now))

	user, err := repo.FindByEmail(context.Background(), "admin@theatrical.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != model.RoleAdmin || user.Name != "Admin User" || !user.CreatedAt.Equal(now) {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestPostgresFindByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "password_hash", "name", "role", "created_at"}))

	if _, err := repo.FindByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, identityerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepository_CaseSensitiveEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	if err := repo.Create(ctx, &model.User{Email: "alice@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(ctx, &model.User{Email: "Alice@example.com"}); err != nil {
		t.Errorf("different case is a different account, got %v", err)
	}
	if err := repo.Create(ctx, &model.User{Email: "alice@example.com"}); !errors.Is(err, identityerrors.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if repo.Len() != 2 {
		t.Errorf("expected 2 accounts, got %d", repo.Len())
	}
}
