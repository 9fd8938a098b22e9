package storeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/go-gin-store-api/internal/domains/users/adapters/http/mapper"
	userports "github.com/Apurer/go-gin-store-api/internal/domains/users/ports"
)

// UserAPI implements the user routes.
type UserAPI struct {
	service userports.Service
}

// NewUserAPI wires dependencies.
func NewUserAPI(service userports.Service) UserAPI {
	return UserAPI{service: service}
}

func toTransportRegisterUser(model RegisterUserRequest) userhttpmapper.RegisterUser {
	return userhttpmapper.RegisterUser{
		Name:    model.Name,
		Email:   model.Email,
		Role:    model.Role,
		Address: model.Address,
	}
}

func fromTransportUser(user userhttpmapper.User) User {
	return User{
		Id:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Address:   user.Address,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

func fromTransportUsers(users []userhttpmapper.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, fromTransportUser(user))
	}
	return result
}

// Post /v1/users
// Register a user
func (api *UserAPI) RegisterUser(c *gin.Context) {
	var payload RegisterUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := userhttpmapper.ToRegisterInput(toTransportRegisterUser(payload))
	user, err := api.service.RegisterUser(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromTransportUser(userhttpmapper.FromDomainUser(user)))
}

// Get /v1/users
// List users in registration order
func (api *UserAPI) ListUsers(c *gin.Context) {
	users, err := api.service.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportUsers(userhttpmapper.FromDomainUsers(users)))
}

// Get /v1/users/:userId
// Find user by ID
func (api *UserAPI) GetUser(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	user, err := api.service.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportUser(userhttpmapper.FromDomainUser(user)))
}
