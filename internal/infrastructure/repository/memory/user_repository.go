package memory

import (
	"context"
	"sync"

	"github.com/thedyrex/pickems/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.Profile
}

func NewUserRepository() *UserRepository {
	return &UserRepository{items: make(map[string]user.Profile)}
}

func (r *UserRepository) Get(_ context.Context, userID string) (user.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	return item, ok, nil
}

func (r *UserRepository) Upsert(_ context.Context, item user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.UserID] = item
	return nil
}
