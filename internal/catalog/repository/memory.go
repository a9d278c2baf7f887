package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	catalogerrors "wardrobe/internal/catalog/errors"
	"wardrobe/pkg/model"
)

// MemoryCostumeRepository is a process-local catalog used by tests and the
// seed dry run.
type MemoryCostumeRepository struct {
	mu       sync.RWMutex
	costumes map[string]model.Costume
}

func NewMemoryCostumeRepository() *MemoryCostumeRepository {
	return &MemoryCostumeRepository{costumes: make(map[string]model.Costume)}
}

func (r *MemoryCostumeRepository) List(_ context.Context, filter model.CostumeFilter, limit int) ([]*model.Costume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	result := make([]*model.Costume, 0)
	for _, c := range r.costumes {
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Description), search) {
			continue
		}
		result = append(result, cloneCostume(c))
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
	return result, nil
}

func (r *MemoryCostumeRepository) FindByID(_ context.Context, id string) (*model.Costume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.costumes[id]
	if !ok {
		return nil, catalogerrors.ErrNotFound
	}
	return cloneCostume(c), nil
}

func (r *MemoryCostumeRepository) Create(_ context.Context, costume *model.Costume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.costumes[costume.ID] = *cloneCostume(*costume)
	return nil
}

func (r *MemoryCostumeRepository) Replace(_ context.Context, costume *model.Costume) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.costumes[costume.ID]
	if !ok {
		return catalogerrors.ErrNotFound
	}
	next := *cloneCostume(*costume)
	next.CreatedAt = stored.CreatedAt
	r.costumes[costume.ID] = next
	return nil
}

func (r *MemoryCostumeRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.costumes[id]; !ok {
		return catalogerrors.ErrNotFound
	}
	delete(r.costumes, id)
	return nil
}

func cloneCostume(c model.Costume) *model.Costume {
	c.Sizes = append([]string(nil), c.Sizes...)
	c.Images = append([]string(nil), c.Images...)
	return &c
}
