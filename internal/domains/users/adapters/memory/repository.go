package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-store-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory user registry that remembers registration order.
type Repository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
	order []uuid.UUID
}

func NewRepository() *Repository {
	return &Repository{users: map[uuid.UUID]*domain.User{}}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("user is nil")
	}
	clone := *user
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[clone.ID]; !exists {
		r.order = append(r.order, clone.ID)
	}
	r.users[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.users[id]
		list = append(list, &clone)
	}
	return list, nil
}
