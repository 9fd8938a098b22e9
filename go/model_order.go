package storeserver

import "time"

type PlaceOrderRequest struct {
	UserId string             `json:"userId" binding:"required,uuid"`
	Items  []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type OrderItemRequest struct {
	ProductId string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"gt=0"`
}

type Order struct {
	Id           string      `json:"id"`
	CreatedAt    time.Time   `json:"createdAt"`
	UserId       string      `json:"userId"`
	CustomerName string      `json:"customerName"`
	Items        []OrderItem `json:"items"`
	Total        float64     `json:"total"`
}

type OrderItem struct {
	ProductId   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Subtotal    float64 `json:"subtotal"`
}
