package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role distinguishes shoppers from store staff.
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleAdministrator Role = "administrator"
)

var (
	ErrEmptyName    = errors.New("user name is required")
	ErrEmptyEmail   = errors.New("user email is required")
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrInvalidRole  = errors.New("role must be customer or administrator")
)

// ParseRole accepts the canonical role names plus the Spanish aliases used by
// older clients ("cliente", "administrador").
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "customer", "cliente":
		return RoleCustomer, nil
	case "administrator", "administrador", "admin":
		return RoleAdministrator, nil
	default:
		return "", ErrInvalidRole
	}
}

// User is a registered account. Users are never mutated after registration.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      Role
	Address   string
	CreatedAt time.Time
}

// NewUser builds a user ensuring required invariants.
func NewUser(id uuid.UUID, name, email string, role Role, address string, createdAt time.Time) (*User, error) {
	user := &User{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Role:      role,
		Address:   strings.TrimSpace(address),
		CreatedAt: createdAt,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdministrator
}

// Validate re-applies core invariants.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	email := strings.TrimSpace(u.Email)
	if email == "" {
		return ErrEmptyEmail
	}
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	switch u.Role {
	case RoleCustomer, RoleAdministrator:
	default:
		return ErrInvalidRole
	}
	return nil
}
