//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-gin-store-api/test/pact"

	storeserver "github.com/Apurer/go-gin-store-api/go"
	storedirectory "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/directory"
	storememory "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/memory"
	storeobs "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/observability"
	storeapp "github.com/Apurer/go-gin-store-api/internal/domains/store/application"
	storedomain "github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
	usermemory "github.com/Apurer/go-gin-store-api/internal/domains/users/adapters/memory"
	userobs "github.com/Apurer/go-gin-store-api/internal/domains/users/adapters/observability"
	userapp "github.com/Apurer/go-gin-store-api/internal/domains/users/application"
	userdomain "github.com/Apurer/go-gin-store-api/internal/domains/users/domain"
	"github.com/Apurer/go-gin-store-api/internal/platform/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestStoreProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateCustomerCanBuy: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t)
				app.seedCustomer(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

// contractProviderApp serves a fresh in-memory store after every reset.
type contractProviderApp struct {
	mu       sync.RWMutex
	handler  http.Handler
	users    *usermemory.Repository
	products *storememory.Repository
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		h := app.handler
		app.mu.RUnlock()
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	userRepo := usermemory.NewRepository()
	storeRepo := storememory.NewRepository()

	userService := userobs.New(userapp.NewService(userRepo))
	storeService := storeobs.New(storeapp.NewService(storeRepo, storeRepo, storedirectory.NewUsers(userService)))

	router := gin.New()
	router.Use(gin.Recovery())
	router = storeserver.NewRouterWithGinEngine(router, storeserver.ApiHandleFunctions{
		UserAPI:    storeserver.NewUserAPI(userService),
		ProductAPI: storeserver.NewProductAPI(storeService),
		OrderAPI:   storeserver.NewOrderAPI(storeService),
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = router
	a.users = userRepo
	a.products = storeRepo
}

func (a *contractProviderApp) seedProduct(t testing.TB) {
	t.Helper()
	product, err := storedomain.NewProduct(
		uuid.MustParse(pacttest.ExistingProductID),
		pacttest.ProductName,
		pacttest.ProductPrice,
		pacttest.ProductStock,
		storedomain.NewElectronic(24),
		time.Now().UTC(),
	)
	require.NoError(t, err)
	_, err = a.products.SaveProduct(context.Background(), product)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedCustomer(t testing.TB) {
	t.Helper()
	user, err := userdomain.NewUser(
		uuid.MustParse(pacttest.CustomerID),
		pacttest.CustomerName,
		"pact.customer@example.com",
		userdomain.RoleCustomer,
		"",
		time.Now().UTC(),
	)
	require.NoError(t, err)
	_, err = a.users.Save(context.Background(), user)
	require.NoError(t, err)
}
