package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
)

// VariantPolicy decides what AddProduct does with an unrecognised kind.
type VariantPolicy int

const (
	// VariantPolicyStrict rejects unknown kinds as invalid input.
	VariantPolicyStrict VariantPolicy = iota
	// VariantPolicyLenient stores unknown kinds as generic products.
	VariantPolicyLenient
)

// Service orchestrates catalog and order use cases.
type Service struct {
	repo   ports.Repository
	tx     ports.Transactor
	users  ports.UserDirectory
	now    func() time.Time
	newID  func() uuid.UUID
	policy VariantPolicy
}

type Option func(*Service)

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides identifier generation for products and orders.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func WithVariantPolicy(policy VariantPolicy) Option {
	return func(s *Service) { s.policy = policy }
}

func NewService(repo ports.Repository, tx ports.Transactor, users ports.UserDirectory, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		tx:     tx,
		users:  users,
		now:    time.Now,
		newID:  uuid.New,
		policy: VariantPolicyStrict,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AddProduct validates and stores a new catalog entry.
func (s *Service) AddProduct(ctx context.Context, input ports.AddProductInput) (*domain.Product, error) {
	variant, err := s.variantFor(input)
	if err != nil {
		return nil, mapError(err)
	}
	product, err := domain.NewProduct(s.newID(), input.Name, input.Price, input.Stock, variant, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.SaveProduct(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) variantFor(input ports.AddProductInput) (domain.Variant, error) {
	kind, err := domain.ParseKind(input.Kind)
	if err != nil {
		if s.policy != VariantPolicyLenient {
			return nil, err
		}
		kind = domain.KindGeneric
	}
	switch kind {
	case domain.KindElectronic:
		return domain.NewElectronic(input.WarrantyMonths), nil
	case domain.KindApparel:
		return domain.NewApparel(input.Size, input.Color), nil
	default:
		return domain.Generic{}, nil
	}
}

// RemoveProduct deletes a catalog entry. Orders that reference it keep their snapshots.
func (s *Service) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

// PlaceOrder validates every line against the current catalog and, only when
// all lines pass, reserves the stock and records the order in one unit of work.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	customer, err := s.users.Lookup(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if len(input.Lines) == 0 {
		return nil, mapError(domain.ErrNoLines)
	}

	var placed *domain.Order
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repo ports.Repository) error {
		products, lines, err := resolveLines(ctx, repo, input.Lines)
		if err != nil {
			return err
		}
		for i, req := range input.Lines {
			if err := products[req.ProductID].Reserve(req.Quantity); err != nil {
				return &domain.LineError{Index: i, ProductID: req.ProductID, Err: err}
			}
		}
		for _, id := range uniqueProductIDs(input.Lines) {
			if _, err := repo.SaveProduct(ctx, products[id]); err != nil {
				return err
			}
		}
		order, err := domain.NewOrder(s.newID(), customer.ID, customer.Name, lines, s.now().UTC())
		if err != nil {
			return err
		}
		placed, err = repo.SaveOrder(ctx, order)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return placed, nil
}

// resolveLines loads each referenced product once and checks every line,
// counting repeated products against their cumulative quantity.
func resolveLines(ctx context.Context, repo ports.Repository, requests []domain.LineRequest) (map[uuid.UUID]*domain.Product, []domain.Line, error) {
	products := make(map[uuid.UUID]*domain.Product, len(requests))
	requested := make(map[uuid.UUID]int, len(requests))
	lines := make([]domain.Line, 0, len(requests))
	for i, req := range requests {
		if req.Quantity <= 0 {
			return nil, nil, &domain.LineError{Index: i, ProductID: req.ProductID, Err: domain.ErrInvalidQuantity}
		}
		product, ok := products[req.ProductID]
		if !ok {
			loaded, err := repo.GetProduct(ctx, req.ProductID)
			if errors.Is(err, ports.ErrNotFound) {
				return nil, nil, &domain.LineError{Index: i, ProductID: req.ProductID, Err: domain.ErrUnknownProduct}
			}
			if err != nil {
				return nil, nil, err
			}
			product = loaded
			products[req.ProductID] = product
		}
		requested[req.ProductID] += req.Quantity
		if !product.CanSupply(requested[req.ProductID]) {
			return nil, nil, &domain.LineError{Index: i, ProductID: req.ProductID, Err: domain.ErrInsufficientStock}
		}
		lines = append(lines, domain.Line{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   product.Price,
		})
	}
	return products, lines, nil
}

func uniqueProductIDs(requests []domain.LineRequest) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(requests))
	ids := make([]uuid.UUID, 0, len(requests))
	for _, req := range requests {
		if _, ok := seen[req.ProductID]; ok {
			continue
		}
		seen[req.ProductID] = struct{}{}
		ids = append(ids, req.ProductID)
	}
	return ids
}

func (s *Service) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// ListOrdersForUser returns the user's orders in placement order.
func (s *Service) ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	if _, err := s.users.Lookup(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListOrdersByUser(ctx, userID)
}

var _ ports.Service = (*Service)(nil)
