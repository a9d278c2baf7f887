package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	catalogerrors "wardrobe/internal/catalog/errors"
	"wardrobe/pkg/model"
)

const (
	costumeColumns = `id, name, description, category, sizes, images, price_per_day, available, created_at`

	listCostumesQuery = `SELECT ` + costumeColumns + `
FROM costumes
WHERE ($1::text = '' OR category = $1)
  AND ($2::text = '' OR strpos(lower(name), lower($2)) > 0 OR strpos(lower(description), lower($2)) > 0)
ORDER BY created_at DESC, id DESC
LIMIT $3`

	selectCostumeQuery = `SELECT ` + costumeColumns + ` FROM costumes WHERE id = $1`

	insertCostumeQuery = `INSERT INTO costumes (` + costumeColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	updateCostumeQuery = `UPDATE costumes
SET name = $2, description = $3, category = $4, sizes = $5, images = $6, price_per_day = $7, available = $8
WHERE id = $1`

	deleteCostumeQuery = `DELETE FROM costumes WHERE id = $1`
)

type postgresCostumeRepository struct {
	db           *sql.DB
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewPostgresCostumeRepository(db *sql.DB, readTimeout, writeTimeout time.Duration) CostumeRepository {
	return &postgresCostumeRepository{
		db:           db,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCostume(row rowScanner) (*model.Costume, error) {
	var (
		costume model.Costume
		sizes   []byte
		images  []byte
	)
	err := row.Scan(&costume.ID, &costume.Name, &costume.Description, &costume.Category,
		&sizes, &images, &costume.PricePerDay, &costume.Available, &costume.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(sizes, &costume.Sizes); err != nil {
		return nil, fmt.Errorf("failed to decode sizes of costume %s: %w", costume.ID, err)
	}
	if err := json.Unmarshal(images, &costume.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images of costume %s: %w", costume.ID, err)
	}
	return &costume, nil
}

func (r *postgresCostumeRepository) List(ctx context.Context, filter model.CostumeFilter, limit int) ([]*model.Costume, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listCostumesQuery, filter.Category, filter.Search, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list costumes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	costumes := make([]*model.Costume, 0)
	for rows.Next() {
		costume, err := scanCostume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan costume: %w", err)
		}
		costumes = append(costumes, costume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate costumes: %w", err)
	}
	return costumes, nil
}

func (r *postgresCostumeRepository) FindByID(ctx context.Context, id string) (*model.Costume, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	costume, err := scanCostume(r.db.QueryRowContext(ctx, selectCostumeQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalogerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find costume: %w", err)
	}
	return costume, nil
}

func (r *postgresCostumeRepository) Create(ctx context.Context, costume *model.Costume) error {
	sizes, images, err := encodeLists(costume)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	_, err = r.db.ExecContext(ctx, insertCostumeQuery,
		costume.ID, costume.Name, costume.Description, costume.Category,
		sizes, images, costume.PricePerDay, costume.Available, costume.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create costume: %w", err)
	}
	return nil
}

func (r *postgresCostumeRepository) Replace(ctx context.Context, costume *model.Costume) error {
	sizes, images, err := encodeLists(costume)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, updateCostumeQuery,
		costume.ID, costume.Name, costume.Description, costume.Category,
		sizes, images, costume.PricePerDay, costume.Available)
	if err != nil {
		return fmt.Errorf("failed to update costume: %w", err)
	}
	return requireAffected(result)
}

func (r *postgresCostumeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, deleteCostumeQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete costume: %w", err)
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return catalogerrors.ErrNotFound
	}
	return nil
}

func encodeLists(costume *model.Costume) (string, string, error) {
	sizes, err := json.Marshal(costume.Sizes)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode sizes: %w", err)
	}
	images, err := json.Marshal(costume.Images)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode images: %w", err)
	}
	return string(sizes), string(images), nil
}
