package storeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storehttpmapper "github.com/Apurer/go-gin-store-api/internal/domains/store/adapters/http/mapper"
	storeports "github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
)

// ProductAPI implements the catalog routes.
type ProductAPI struct {
	service storeports.Service
}

// NewProductAPI wires dependencies.
func NewProductAPI(service storeports.Service) ProductAPI {
	return ProductAPI{service: service}
}

func toTransportAddProduct(model AddProductRequest) storehttpmapper.AddProduct {
	return storehttpmapper.AddProduct{
		Kind:           model.Kind,
		Name:           model.Name,
		Price:          *model.Price,
		Stock:          *model.Stock,
		WarrantyMonths: model.WarrantyMonths,
		Size:           model.Size,
		Color:          model.Color,
	}
}

func fromTransportProduct(product storehttpmapper.Product) Product {
	return Product{
		Id:             product.ID,
		Kind:           product.Kind,
		Name:           product.Name,
		Price:          product.Price,
		Stock:          product.Stock,
		WarrantyMonths: product.WarrantyMonths,
		Size:           product.Size,
		Color:          product.Color,
		CreatedAt:      product.CreatedAt,
	}
}

func fromTransportProducts(products []storehttpmapper.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, fromTransportProduct(product))
	}
	return result
}

// Post /v1/products
// Add a product to the catalog
func (api *ProductAPI) AddProduct(c *gin.Context) {
	var payload AddProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := storehttpmapper.ToAddProductInput(toTransportAddProduct(payload))
	product, err := api.service.AddProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromTransportProduct(storehttpmapper.FromDomainProduct(product)))
}

// Get /v1/products
// List the catalog in insertion order
func (api *ProductAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportProducts(storehttpmapper.FromDomainProducts(products)))
}

// Get /v1/products/:productId
// Find product by ID
func (api *ProductAPI) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromTransportProduct(storehttpmapper.FromDomainProduct(product)))
}

// Delete /v1/products/:productId
// Remove a product from the catalog
func (api *ProductAPI) RemoveProduct(c *gin.Context) {
	id, ok := pathID(c, "productId")
	if !ok {
		return
	}
	if err := api.service.RemoveProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
