package mapper

import (
	"time"

	storedomain "github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
	storeports "github.com/Apurer/go-gin-store-api/internal/domains/store/ports"
)

// AddProduct represents the transport-level catalog entry request.
type AddProduct struct {
	Kind           string
	Name           string
	Price          float64
	Stock          int
	WarrantyMonths *int
	Size           *string
	Color          *string
}

// Product represents the transport-level product projection. Variant fields
// are nil unless the product is of that kind.
type Product struct {
	ID             string
	Kind           string
	Name           string
	Price          float64
	Stock          int
	WarrantyMonths *int
	Size           *string
	Color          *string
	CreatedAt      time.Time
}

func ToAddProductInput(model AddProduct) storeports.AddProductInput {
	input := storeports.AddProductInput{
		Kind:  model.Kind,
		Name:  model.Name,
		Price: model.Price,
		Stock: model.Stock,
	}
	if model.WarrantyMonths != nil {
		input.WarrantyMonths = *model.WarrantyMonths
	}
	if model.Size != nil {
		input.Size = *model.Size
	}
	if model.Color != nil {
		input.Color = *model.Color
	}
	return input
}

func FromDomainProduct(product *storedomain.Product) Product {
	if product == nil {
		return Product{}
	}
	out := Product{
		ID:        product.ID.String(),
		Kind:      string(product.Kind()),
		Name:      product.Name,
		Price:     product.Price,
		Stock:     product.Stock,
		CreatedAt: product.CreatedAt,
	}
	if e, ok := product.Electronic(); ok {
		warranty := e.WarrantyMonths
		out.WarrantyMonths = &warranty
	}
	if a, ok := product.Apparel(); ok {
		size, color := a.Size, a.Color
		out.Size = &size
		out.Color = &color
	}
	return out
}

func FromDomainProducts(products []*storedomain.Product) []Product {
	result := make([]Product, 0, len(products))
	for _, product := range products {
		result = append(result, FromDomainProduct(product))
	}
	return result
}
