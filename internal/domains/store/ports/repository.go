package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("order %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
)

// Repository persists the catalog and placed orders.
// Listings are returned in insertion order.
type Repository interface {
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	SaveOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
}

// Transactor runs fn as one atomic unit of work. Writes made through the
// repository handed to fn are only visible to others if fn returns nil.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}

// UserDirectory resolves the customers orders are placed for.
// Lookup returns ErrUserNotFound when the user is unknown.
type UserDirectory interface {
	Lookup(ctx context.Context, id uuid.UUID) (Customer, error)
}

// Customer is the part of a user the store needs.
type Customer struct {
	ID   uuid.UUID
	Name string
}
