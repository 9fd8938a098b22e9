package mapper

import (
	"time"

	userdomain "github.com/Apurer/go-gin-store-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-store-api/internal/domains/users/ports"
)

// RegisterUser represents the transport-level registration payload.
type RegisterUser struct {
	Name    string
	Email   string
	Role    string
	Address string
}

// User represents the transport-level read projection.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      string
	Address   string
	IsAdmin   bool
	CreatedAt time.Time
}

// ToRegisterInput converts a transport payload to the service input.
func ToRegisterInput(model RegisterUser) userports.RegisterUserInput {
	return userports.RegisterUserInput{
		Name:    model.Name,
		Email:   model.Email,
		Role:    model.Role,
		Address: model.Address,
	}
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Address:   user.Address,
		IsAdmin:   user.IsAdmin(),
		CreatedAt: user.CreatedAt,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}
