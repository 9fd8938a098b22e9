package directory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	storeports "github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
	usermemory "github.com/Apurer/go-gin-store-api/internal/domains/users/adapters/memory"
	userapp "github.com/Apurer/go-gin-store-api/internal/domains/users/application"
	userports "github.com/Apurer/go-gin-store-api/internal/domains/users/ports"
)

func TestUsers_Lookup(t *testing.T) {
	users := userapp.NewService(usermemory.NewRepository())
	ctx := context.Background()
	registered, err := users.RegisterUser(ctx, userports.RegisterUserInput{Name: "Ana", Email: "ana@example.com", Role: "customer"})
	require.NoError(t, err)

	dir := NewUsers(users)
	customer, err := dir.Lookup(ctx, registered.ID)
	require.NoError(t, err)
	require.Equal(t, storeports.Customer{ID: registered.ID, Name: "Ana"}, customer)

	_, err = dir.Lookup(ctx, uuid.New())
	require.ErrorIs(t, err, storeports.ErrUserNotFound)

	_, err = NewUsers(nil).Lookup(ctx, registered.ID)
	require.Error(t, err)
}
