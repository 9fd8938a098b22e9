package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-store-api/internal/domains/users/domain"
)

var ErrNotFound = errors.New("user not found")

// Repository stores registered users. List returns users in registration order.
type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
