package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Transactor = (*Repository)(nil)
)

// Repository keeps the catalog and order history in process memory.
// Stored values are never handed out; callers always receive copies.
type Repository struct {
	mu    sync.RWMutex
	state *state
}

func NewRepository() *Repository {
	return &Repository{state: newState()}
}

func (r *Repository) SaveProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.saveProduct(product)
}

func (r *Repository) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.getProduct(id)
}

func (r *Repository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.deleteProduct(id)
}

func (r *Repository) ListProducts(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.listProducts(), nil
}

func (r *Repository) SaveOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.saveOrder(order)
}

func (r *Repository) GetOrder(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.getOrder(id)
}

func (r *Repository) ListOrdersByUser(_ context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.listOrdersByUser(userID), nil
}

// WithinTx holds the write lock for the whole unit of work. fn operates on a
// staged copy of the state that replaces the live state only when fn succeeds.
// fn must use the repository it is given, not r.
func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context, repo ports.Repository) error) error {
	if fn == nil {
		return errors.New("transaction function is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	staged := &txRepository{state: r.state.clone()}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.state = staged.state
	return nil
}

// txRepository is the lock-free view handed to a unit of work.
type txRepository struct {
	state *state
}

func (t *txRepository) SaveProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	return t.state.saveProduct(product)
}

func (t *txRepository) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	return t.state.getProduct(id)
}

func (t *txRepository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	return t.state.deleteProduct(id)
}

func (t *txRepository) ListProducts(_ context.Context) ([]*domain.Product, error) {
	return t.state.listProducts(), nil
}

func (t *txRepository) SaveOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	return t.state.saveOrder(order)
}

func (t *txRepository) GetOrder(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	return t.state.getOrder(id)
}

func (t *txRepository) ListOrdersByUser(_ context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return t.state.listOrdersByUser(userID), nil
}

// state holds the data behind both views. Values in the maps are treated as
// immutable: writes store fresh copies, so a shallow clone is a safe snapshot.
type state struct {
	products     map[uuid.UUID]*domain.Product
	productOrder []uuid.UUID
	orders       map[uuid.UUID]*domain.Order
	orderOrder   []uuid.UUID
}

func newState() *state {
	return &state{
		products: map[uuid.UUID]*domain.Product{},
		orders:   map[uuid.UUID]*domain.Order{},
	}
}

func (s *state) clone() *state {
	return &state{
		products:     maps.Clone(s.products),
		productOrder: slices.Clone(s.productOrder),
		orders:       maps.Clone(s.orders),
		orderOrder:   slices.Clone(s.orderOrder),
	}
}

func (s *state) saveProduct(product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if _, exists := s.products[clone.ID]; !exists {
		s.productOrder = append(s.productOrder, clone.ID)
	}
	s.products[clone.ID] = &clone
	saved := clone
	return &saved, nil
}

func (s *state) getProduct(id uuid.UUID) (*domain.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (s *state) deleteProduct(id uuid.UUID) error {
	if _, ok := s.products[id]; !ok {
		return ports.ErrProductNotFound
	}
	delete(s.products, id)
	s.productOrder = slices.DeleteFunc(s.productOrder, func(existing uuid.UUID) bool {
		return existing == id
	})
	return nil
}

func (s *state) listProducts() []*domain.Product {
	list := make([]*domain.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		clone := *s.products[id]
		list = append(list, &clone)
	}
	return list
}

func (s *state) saveOrder(order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if _, exists := s.orders[order.ID]; exists {
		return nil, errors.New("order already recorded")
	}
	s.orders[order.ID] = order.Clone()
	s.orderOrder = append(s.orderOrder, order.ID)
	return order.Clone(), nil
}

func (s *state) getOrder(id uuid.UUID) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return order.Clone(), nil
}

func (s *state) listOrdersByUser(userID uuid.UUID) []*domain.Order {
	list := []*domain.Order{}
	for _, id := range s.orderOrder {
		if order := s.orders[id]; order.UserID == userID {
			list = append(list, order.Clone())
		}
	}
	return list
}
