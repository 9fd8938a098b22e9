package storeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storehttpmapper "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/http/mapper"
	storeports "github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
)

// OrderAPI implements the order routes.
type OrderAPI struct {
	service storeports.Service
}

// NewOrderAPI wires dependencies.
func NewOrderAPI(service storeports.Service) OrderAPI {
	return OrderAPI{service: service}
}

func toTransportPlaceOrder(model PlaceOrderRequest) storehttpmapper.PlaceOrder {
	items := make([]storehttpmapper.OrderItemRequest, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, storehttpmapper.OrderItemRequest{ProductID: item.ProductId, Quantity: item.Quantity})
	}
	return storehttpmapper.PlaceOrder{UserID: model.UserId, Items: items}
}

func fromTransportOrder(order storehttpmapper.Order) Order {
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ProductId:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return Order{
		Id:           order.ID,
		CreatedAt:    order.CreatedAt,
		UserId:       order.UserID,
		CustomerName: order.CustomerName,
		Items:        items,
		Total:        order.Total,
	}
}

func fromTransportOrders(orders []storehttpmapper.Order) []Order {
	result := make([]Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, fromTransportOrder(order))
	}
	return result
}

// Post /v1/orders
// Place an order for an existing user
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input, err := storehttpmapper.ToPlaceOrderInput(toTransportPlaceOrder(payload))
	if err != nil {
		responder.BadRequest(c, err.Error())
		return
	}
	order, err := api.service.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromTransportOrder(storehttpmapper.FromDomainOrder(order)))
}

// Get /v1/orders/:orderId
// Find order by ID
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportOrder(storehttpmapper.FromDomainOrder(order)))
}

// Get /v1/users/:userId/orders
// List a user's orders in placement order
func (api *OrderAPI) ListOrdersForUser(c *gin.Context) {
	id, ok := pathID(c, "userId")
	if !ok {
		return
	}
	orders, err := api.service.ListOrdersForUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportOrders(storehttpmapper.FromDomainOrders(orders)))
}
