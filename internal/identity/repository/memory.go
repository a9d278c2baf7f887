package repository

import (
	"context"
	"fmt"
	"sync"

	identityerrors "wardrobe/internal/identity/errors"
	"wardrobe/pkg/model"
)

// MemoryUserRepository keeps accounts in process memory. Used by tests and
// local tooling; contents are lost on exit.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return fmt.Errorf("%w: %s", identityerrors.ErrDuplicate, user.Email)
	}
	r.users[user.Email] = *user
	return nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, identityerrors.ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
