package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/memory"
	"github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
	"github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
)

type fakeDirectory struct {
	customers map[uuid.UUID]ports.Customer
}

func newFakeDirectory(customers ...ports.Customer) *fakeDirectory {
	d := &fakeDirectory{customers: map[uuid.UUID]ports.Customer{}}
	for _, c := range customers {
		d.customers[c.ID] = c
	}
	return d
}

func (d *fakeDirectory) Lookup(_ context.Context, id uuid.UUID) (ports.Customer, error) {
	c, ok := d.customers[id]
	if !ok {
		return ports.Customer{}, ports.ErrUserNotFound
	}
	return c, nil
}

type fixture struct {
	svc  *Service
	repo *memory.Repository
	user ports.Customer
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	repo := memory.NewRepository()
	user := ports.Customer{ID: uuid.New(), Name: "Ana"}
	return fixture{
		svc:  NewService(repo, repo, newFakeDirectory(user), opts...),
		repo: repo,
		user: user,
	}
}

func (f fixture) addProduct(t *testing.T, name string, price float64, stock int) *domain.Product {
	t.Helper()
	p, err := f.svc.AddProduct(context.Background(), ports.AddProductInput{Name: name, Price: price, Stock: stock})
	require.NoError(t, err)
	return p
}

func (f fixture) stockOf(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, err := f.svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p.Stock
}

func TestAddProduct_RoundTrip(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	added, err := f.svc.AddProduct(ctx, ports.AddProductInput{
		Kind: "electronic", Name: "TV", Price: 499.99, Stock: 3, WarrantyMonths: 36,
	})
	require.NoError(t, err)
	require.Equal(t, fixed, added.CreatedAt)

	fetched, err := f.svc.GetProduct(ctx, added.ID)
	require.NoError(t, err)
	require.Equal(t, added, fetched)
	details, ok := fetched.Electronic()
	require.True(t, ok)
	require.Equal(t, 36, details.WarrantyMonths)
}

func TestAddProduct_VariantDefaultsAndAliases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tv, err := f.svc.AddProduct(ctx, ports.AddProductInput{Kind: "electronico", Name: "Radio", Price: 20, Stock: 1})
	require.NoError(t, err)
	details, _ := tv.Electronic()
	require.Equal(t, domain.DefaultWarrantyMonths, details.WarrantyMonths)

	shirt, err := f.svc.AddProduct(ctx, ports.AddProductInput{Kind: "ropa", Name: "Camisa", Price: 12, Stock: 4, Size: "S"})
	require.NoError(t, err)
	apparel, ok := shirt.Apparel()
	require.True(t, ok)
	require.Equal(t, domain.Apparel{Size: "S", Color: domain.DefaultApparelColor}, apparel)

	plain, err := f.svc.AddProduct(ctx, ports.AddProductInput{Name: "Pen", Price: 1, Stock: 1, WarrantyMonths: 12})
	require.NoError(t, err)
	require.Equal(t, domain.KindGeneric, plain.Kind())
}

func TestAddProduct_InvalidInput(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name  string
		input ports.AddProductInput
		want  error
	}{
		{"empty name", ports.AddProductInput{Name: "  ", Price: 1, Stock: 1}, domain.ErrEmptyProductName},
		{"negative price", ports.AddProductInput{Name: "x", Price: -1, Stock: 1}, domain.ErrNegativePrice},
		{"negative stock", ports.AddProductInput{Name: "x", Price: 1, Stock: -1}, domain.ErrNegativeStock},
		{"unknown kind", ports.AddProductInput{Kind: "furniture", Name: "x", Price: 1, Stock: 1}, domain.ErrUnknownKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.AddProduct(context.Background(), tc.input)
			require.ErrorIs(t, err, ErrInvalidInput)
			require.ErrorIs(t, err, tc.want)
		})
	}
	list, err := f.svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestAddProduct_LenientPolicyFallsBackToGeneric(t *testing.T) {
	f := newFixture(t, WithVariantPolicy(VariantPolicyLenient))

	p, err := f.svc.AddProduct(context.Background(), ports.AddProductInput{Kind: "furniture", Name: "Chair", Price: 30, Stock: 2})
	require.NoError(t, err)
	require.Equal(t, domain.KindGeneric, p.Kind())
}

func TestPlaceOrder_DecrementsStockAndSnapshotsPrices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.addProduct(t, "Mouse", 10.0, 5)

	order, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{
		UserID: f.user.ID,
		Lines:  []domain.LineRequest{{ProductID: p1.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 30.0, order.Total(), 1e-9)
	assert.Equal(t, "Ana", order.CustomerName)
	assert.Equal(t, "Mouse", order.Lines[0].ProductName)
	assert.Equal(t, 2, f.stockOf(t, p1.ID))

	_, err = f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{
		UserID: f.user.ID,
		Lines:  []domain.LineRequest{{ProductID: p1.ID, Quantity: 3}},
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.stockOf(t, p1.ID))

	fetched, err := f.svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, order, fetched)
}

func TestPlaceOrder_IsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	plenty := f.addProduct(t, "Cable", 2.5, 10)
	scarce := f.addProduct(t, "Charger", 20, 1)

	_, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{
		UserID: f.user.ID,
		Lines: []domain.LineRequest{
			{ProductID: plenty.ID, Quantity: 4},
			{ProductID: scarce.ID, Quantity: 2},
		},
	})
	var lineErr *domain.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 1, lineErr.Index)
	assert.Equal(t, scarce.ID, lineErr.ProductID)
	assert.Equal(t, 10, f.stockOf(t, plenty.ID))
	assert.Equal(t, 1, f.stockOf(t, scarce.ID))

	orders, err := f.svc.ListOrdersForUser(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrder_RepeatedProductUsesCumulativeQuantity(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "Sticker", 1, 5)

	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID: f.user.ID,
		Lines: []domain.LineRequest{
			{ProductID: p.ID, Quantity: 3},
			{ProductID: p.ID, Quantity: 3},
		},
	})
	var lineErr *domain.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 1, lineErr.Index)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, f.stockOf(t, p.ID))

	order, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		UserID: f.user.ID,
		Lines: []domain.LineRequest{
			{ProductID: p.ID, Quantity: 2},
			{ProductID: p.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Len(t, order.Lines, 2)
	assert.Equal(t, 0, f.stockOf(t, p.ID))
}

func TestPlaceOrder_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Book", 8, 3)

	_, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{UserID: uuid.New(), Lines: []domain.LineRequest{{ProductID: p.ID, Quantity: 1}}})
	require.ErrorIs(t, err, ports.ErrUserNotFound)
	require.NotErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{UserID: uuid.New()})
	require.ErrorIs(t, err, ports.ErrUserNotFound)
	require.NotErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{UserID: f.user.ID})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoLines)

	_, err = f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{UserID: f.user.ID, Lines: []domain.LineRequest{{ProductID: p.ID, Quantity: 0}}})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	missing := uuid.New()
	_, err = f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{UserID: f.user.ID, Lines: []domain.LineRequest{
		{ProductID: p.ID, Quantity: 1},
		{ProductID: missing, Quantity: 1},
	}})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrUnknownProduct)
	var lineErr *domain.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, missing, lineErr.ProductID)

	assert.Equal(t, 3, f.stockOf(t, p.ID))
}

func TestRemoveProduct_KeepsOrderHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.addProduct(t, "Vase", 15, 2)

	order, err := f.svc.PlaceOrder(ctx, ports.PlaceOrderInput{UserID: f.user.ID, Lines: []domain.LineRequest{{ProductID: p.ID, Quantity: 1}}})
	require.NoError(t, err)
	require.NoError(t, f.svc.RemoveProduct(ctx, p.ID))

	_, err = f.svc.GetProduct(ctx, p.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.ErrorIs(t, f.svc.RemoveProduct(ctx, p.ID), ports.ErrProductNotFound)

	history, err := f.svc.ListOrdersForUser(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, order, history[0])
	assert.Equal(t, "Vase", history[0].Lines[0].ProductName)
}

func TestListOrdersForUser_FiltersAndOrders(t *testing.T) {
	repo := memory.NewRepository()
	ana := ports.Customer{ID: uuid.New(), Name: "Ana"}
	ben := ports.Customer{ID: uuid.New(), Name: "Ben"}
	svc := NewService(repo, repo, newFakeDirectory(ana, ben))
	ctx := context.Background()
	p, err := svc.AddProduct(ctx, ports.AddProductInput{Name: "Tea", Price: 3, Stock: 100})
	require.NoError(t, err)

	var anaOrders []uuid.UUID
	for i, user := range []uuid.UUID{ana.ID, ben.ID, ana.ID, ana.ID} {
		order, err := svc.PlaceOrder(ctx, ports.PlaceOrderInput{UserID: user, Lines: []domain.LineRequest{{ProductID: p.ID, Quantity: i + 1}}})
		require.NoError(t, err)
		if user == ana.ID {
			anaOrders = append(anaOrders, order.ID)
		}
	}

	list, err := svc.ListOrdersForUser(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, order := range list {
		assert.Equal(t, anaOrders[i], order.ID)
		assert.Equal(t, ana.ID, order.UserID)
	}

	_, err = svc.ListOrdersForUser(ctx, uuid.New())
	require.ErrorIs(t, err, ports.ErrUserNotFound)
}

func TestPlaceOrder_ConcurrentOrdersNeverOversell(t *testing.T) {
	f := newFixture(t)
	p := f.addProduct(t, "Limited", 99, 10)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{UserID: f.user.ID, Lines: []domain.LineRequest{{ProductID: p.ID, Quantity: 1}}})
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)
	assert.Equal(t, 0, f.stockOf(t, p.ID))
}
