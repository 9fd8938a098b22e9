package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-store-api/internal/domains/users/domain"
)

// RegisterUserInput carries the registration payload after schema validation.
type RegisterUserInput struct {
	Name    string
	Email   string
	Role    string
	Address string
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
