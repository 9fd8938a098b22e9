package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-store-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/users/ports"
)

// Service exposes user bounded context use cases.
type Service struct {
	repo  ports.Repository
	now   func() time.Time
	newID func() uuid.UUID
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

// WithIDGenerator overrides identifier generation.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, newID: uuid.New}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// RegisterUser validates the payload and stores a new user under a fresh identifier.
func (s *Service) RegisterUser(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, mapError(err)
	}
	user, err := domain.NewUser(s.newID(), input.Name, input.Email, role, input.Address, s.now().UTC())
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
