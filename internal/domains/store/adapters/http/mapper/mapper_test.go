package mapper

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	storedomain "github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
)

func TestFromDomainProduct_ExposesOnlyVariantFields(t *testing.T) {
	tv, err := storedomain.NewProduct(uuid.New(), "TV", 300, 2, storedomain.NewElectronic(0), time.Now())
	require.NoError(t, err)
	out := FromDomainProduct(tv)
	require.Equal(t, "electronic", out.Kind)
	require.NotNil(t, out.WarrantyMonths)
	require.Equal(t, 24, *out.WarrantyMonths)
	require.Nil(t, out.Size)
	require.Nil(t, out.Color)

	shirt, err := storedomain.NewProduct(uuid.New(), "Shirt", 20, 2, storedomain.NewApparel("", ""), time.Now())
	require.NoError(t, err)
	out = FromDomainProduct(shirt)
	require.Nil(t, out.WarrantyMonths)
	require.Equal(t, "M", *out.Size)
	require.Equal(t, "Negro", *out.Color)
}

func TestToPlaceOrderInput(t *testing.T) {
	user, product := uuid.New(), uuid.New()

	input, err := ToPlaceOrderInput(PlaceOrder{
		UserID: user.String(),
		Items:  []OrderItemRequest{{ProductID: product.String(), Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, user, input.UserID)
	require.Equal(t, []storedomain.LineRequest{{ProductID: product, Quantity: 2}}, input.Lines)

	_, err = ToPlaceOrderInput(PlaceOrder{UserID: user.String(), Items: []OrderItemRequest{{ProductID: "x"}}})
	require.ErrorContains(t, err, "items[0].productId")
}

func TestFromDomainOrder_ComputesSubtotals(t *testing.T) {
	order, err := storedomain.NewOrder(uuid.New(), uuid.New(), "Ana", []storedomain.Line{
		{ProductID: uuid.New(), ProductName: "Mouse", Quantity: 3, UnitPrice: 10},
	}, time.Now())
	require.NoError(t, err)

	out := FromDomainOrder(order)
	require.Equal(t, "Ana", out.CustomerName)
	require.InDelta(t, 30.0, out.Items[0].Subtotal, 1e-9)
	require.InDelta(t, 30.0, out.Total, 1e-9)
}
