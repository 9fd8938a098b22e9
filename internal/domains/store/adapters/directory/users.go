// Package directory resolves store customers through the users bounded context.
package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"

	storeports "github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
	userports "github.com/Apurer/go-gin-store-api/internal/domains/users/ports"
)

var _ storeports.UserDirectory = (*Users)(nil)

// Users adapts the users service to the store's UserDirectory port.
type Users struct {
	users userports.Service
}

func NewUsers(users userports.Service) *Users {
	return &Users{users: users}
}

func (d *Users) Lookup(ctx context.Context, id uuid.UUID) (storeports.Customer, error) {
	if d == nil || d.users == nil {
		return storeports.Customer{}, errors.New("user directory not configured")
	}
	user, err := d.users.GetUser(ctx, id)
	if errors.Is(err, userports.ErrNotFound) {
		return storeports.Customer{}, storeports.ErrUserNotFound
	}
	if err != nil {
		return storeports.Customer{}, err
	}
	return storeports.Customer{ID: user.ID, Name: user.Name}, nil
}
