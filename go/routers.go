package storeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the health check
	HealthAPI HealthAPI
	// Routes for the UserAPI part of the API
	UserAPI UserAPI
	// Routes for the ProductAPI part of the API
	ProductAPI ProductAPI
	// Routes for the OrderAPI part of the API
	OrderAPI OrderAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Root",
			http.MethodGet,
			"/",
			handleFunctions.HealthAPI.Root,
		},
		{
			"RegisterUser",
			http.MethodPost,
			"/v1/users",
			handleFunctions.UserAPI.RegisterUser,
		},
		{
			"ListUsers",
			http.MethodGet,
			"/v1/users",
			handleFunctions.UserAPI.ListUsers,
		},
		{
			"GetUser",
			http.MethodGet,
			"/v1/users/:userId",
			handleFunctions.UserAPI.GetUser,
		},
		{
			"ListOrdersForUser",
			http.MethodGet,
			"/v1/users/:userId/orders",
			handleFunctions.OrderAPI.ListOrdersForUser,
		},
		{
			"AddProduct",
			http.MethodPost,
			"/v1/products",
			handleFunctions.ProductAPI.AddProduct,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/v1/products",
			handleFunctions.ProductAPI.ListProducts,
		},
		{
			"GetProduct",
			http.MethodGet,
			"/v1/products/:productId",
			handleFunctions.ProductAPI.GetProduct,
		},
		{
			"RemoveProduct",
			http.MethodDelete,
			"/v1/products/:productId",
			handleFunctions.ProductAPI.RemoveProduct,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/v1/orders",
			handleFunctions.OrderAPI.PlaceOrder,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/v1/orders/:orderId",
			handleFunctions.OrderAPI.GetOrder,
		},
	}
}
