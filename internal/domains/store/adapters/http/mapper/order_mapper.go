package mapper

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	storedomain "github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
	storeports "github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
)

// PlaceOrder represents the transport-level order request.
type PlaceOrder struct {
	UserID string
	Items  []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID string
	Quantity  int
}

// Order represents the transport-level order projection.
type Order struct {
	ID           string
	CreatedAt    time.Time
	UserID       string
	CustomerName string
	Items        []OrderItem
	Total        float64
}

type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}

// ToPlaceOrderInput parses the identifiers of an order request.
func ToPlaceOrderInput(model PlaceOrder) (storeports.PlaceOrderInput, error) {
	userID, err := uuid.Parse(model.UserID)
	if err != nil {
		return storeports.PlaceOrderInput{}, fmt.Errorf("userId: %w", err)
	}
	lines := make([]storedomain.LineRequest, 0, len(model.Items))
	for i, item := range model.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return storeports.PlaceOrderInput{}, fmt.Errorf("items[%d].productId: %w", i, err)
		}
		lines = append(lines, storedomain.LineRequest{ProductID: productID, Quantity: item.Quantity})
	}
	return storeports.PlaceOrderInput{UserID: userID, Lines: lines}, nil
}

func FromDomainOrder(order *storedomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, OrderItem{
			ProductID:   line.ProductID.String(),
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal(),
		})
	}
	return Order{
		ID:           order.ID.String(),
		CreatedAt:    order.CreatedAt,
		UserID:       order.UserID.String(),
		CustomerName: order.CustomerName,
		Items:        items,
		Total:        order.Total(),
	}
}

func FromDomainOrders(orders []*storedomain.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
