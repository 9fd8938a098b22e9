package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
)

// AddProductInput carries a catalog entry request. Variant fields that do not
// apply to Kind are ignored.
type AddProductInput struct {
	Kind           string
	Name           string
	Price          float64
	Stock          int
	WarrantyMonths int
	Size           string
	Color          string
}

// PlaceOrderInput carries an order request for an existing user.
type PlaceOrderInput struct {
	UserID uuid.UUID
	Lines  []domain.LineRequest
}

// Service exposes catalog and order use cases to adapters.
type Service interface {
	AddProduct(ctx context.Context, input AddProductInput) (*domain.Product, error)
	RemoveProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
}
