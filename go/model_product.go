package storeserver

import "time"

type AddProductRequest struct {
	// Kind is generic, electronic or apparel. Empty means generic.
	Kind           string   `json:"kind,omitempty"`
	Name           string   `json:"name" binding:"required"`
	Price          *float64 `json:"price" binding:"required,gte=0"`
	Stock          *int     `json:"stock" binding:"required,gte=0"`
	WarrantyMonths *int     `json:"warrantyMonths,omitempty" binding:"omitempty,gte=0"`
	Size           *string  `json:"size,omitempty"`
	Color          *string  `json:"color,omitempty"`
}

type Product struct {
	Id             string    `json:"id"`
	Kind           string    `json:"kind"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Stock          int       `json:"stock"`
	WarrantyMonths *int      `json:"warrantyMonths,omitempty"`
	Size           *string   `json:"size,omitempty"`
	Color          *string   `json:"color,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
