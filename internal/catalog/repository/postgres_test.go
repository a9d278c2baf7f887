package repository

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"testing"
	"time"

	catalogerrors "wardrobe/internal/catalog/errors"
	"wardrobe/pkg/model"

	"github.com/DATA-DOG/go-sqlmock"
)

var costumeRowColumns = []string{"id", "name", "description", "category", "sizes", "images", "price_per_day", "available", "created_at"}

func newMockRepo(t *testing.T) (CostumeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresCostumeRepository(db, time.Second, time.Second), mock
}

func TestPostgresList(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC")).
		WithArgs("Fantasy", "cloak", 1000).
		WillReturnRows(sqlmock.NewRows(costumeRowColumns).
			AddRow("c-1", "Velvet Cloak", "Long", "Fantasy", []byte(`["S","M"]`), []byte(`["https://img.example/a.jpg"]`), 40.0, true, now))

	list, err := repo.List(context.Background(), model.CostumeFilter{Category: "Fantasy", Search: "cloak"}, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 costume, got %d", len(list))
	}
	if !slices.Equal(list[0].Sizes, []string{"S", "M"}) || list[0].PricePerDay != 40 {
		t.Errorf("unexpected costume %+v", list[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_EncodesLists(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	costume := &model.Costume{
		ID: "c-1", Name: "Velvet Cloak", Description: "Long", Category: "Fantasy",
		Sizes: []string{"S", "M"}, Images: []string{"https://img.example/a.jpg"},
		PricePerDay: 40, Available: true, CreatedAt: now,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO costumes")).
		WithArgs("c-1", "Velvet Cloak", "Long", "Fantasy", `["S","M"]`, `["https://img.example/a.jpg"]`, 40.0, true, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), costume); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresReplace_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE costumes")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Replace(context.Background(), &model.Costume{ID: "missing", Sizes: []string{"S"}, Images: []string{}})
	if !errors.Is(err, catalogerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM costumes WHERE id = $1")).
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM costumes WHERE id = $1")).
		WithArgs("c-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "c-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), "c-1"); !errors.Is(err, catalogerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestPostgresFindByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM costumes WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(costumeRowColumns))

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, catalogerrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
