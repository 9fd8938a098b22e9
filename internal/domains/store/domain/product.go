package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind tags the product variant.
type Kind string

const (
	KindGeneric    Kind = "generic"
	KindElectronic Kind = "electronic"
	KindApparel    Kind = "apparel"
)

const (
	DefaultWarrantyMonths = 24
	DefaultApparelSize    = "M"
	DefaultApparelColor   = "Negro"
)

var (
	ErrEmptyProductName  = errors.New("product name is required")
	ErrNegativePrice     = errors.New("price must be greater or equal to zero")
	ErrNegativeStock     = errors.New("stock must be greater or equal to zero")
	ErrUnknownKind       = errors.New("product kind must be generic, electronic or apparel")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ParseKind resolves a kind name, accepting the Spanish aliases of older clients.
// An empty name means generic.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "generic", "generico", "genérico":
		return KindGeneric, nil
	case "electronic", "electronico", "electrónico":
		return KindElectronic, nil
	case "apparel", "ropa":
		return KindApparel, nil
	default:
		return "", ErrUnknownKind
	}
}

// Variant is the closed set of product-specific attributes.
type Variant interface {
	Kind() Kind
	isVariant()
}

// Generic products carry only the base attributes.
type Generic struct{}

// Electronic products carry a warranty period.
type Electronic struct {
	WarrantyMonths int
}

// Apparel products carry a size and color.
type Apparel struct {
	Size  string
	Color string
}

func (Generic) Kind() Kind    { return KindGeneric }
func (Electronic) Kind() Kind { return KindElectronic }
func (Apparel) Kind() Kind    { return KindApparel }

func (Generic) isVariant()    {}
func (Electronic) isVariant() {}
func (Apparel) isVariant()    {}

// NewElectronic applies the default warranty when none is given.
func NewElectronic(warrantyMonths int) Electronic {
	if warrantyMonths <= 0 {
		warrantyMonths = DefaultWarrantyMonths
	}
	return Electronic{WarrantyMonths: warrantyMonths}
}

// NewApparel applies the default size and color when none are given.
func NewApparel(size, color string) Apparel {
	size = strings.TrimSpace(size)
	if size == "" {
		size = DefaultApparelSize
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultApparelColor
	}
	return Apparel{Size: size, Color: color}
}

// Product is a catalog entry. Stock is only changed through Reserve.
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     float64
	Stock     int
	Variant   Variant
	CreatedAt time.Time
}

// NewProduct validates the invariants and builds a catalog entry.
// A nil variant means generic.
func NewProduct(id uuid.UUID, name string, price float64, stock int, variant Variant, createdAt time.Time) (*Product, error) {
	if variant == nil {
		variant = Generic{}
	}
	p := &Product{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Price:     price,
		Stock:     stock,
		Variant:   variant,
		CreatedAt: createdAt,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Kind returns the variant tag.
func (p *Product) Kind() Kind {
	if p.Variant == nil {
		return KindGeneric
	}
	return p.Variant.Kind()
}

// Electronic exposes the electronic attributes when the product is electronic.
func (p *Product) Electronic() (Electronic, bool) {
	v, ok := p.Variant.(Electronic)
	return v, ok
}

// Apparel exposes the apparel attributes when the product is apparel.
func (p *Product) Apparel() (Apparel, bool) {
	v, ok := p.Variant.(Apparel)
	return v, ok
}

// Validate re-applies the catalog invariants.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyProductName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// CanSupply reports whether the current stock covers quantity.
func (p *Product) CanSupply(quantity int) bool {
	return quantity > 0 && p.Stock >= quantity
}

// Reserve decrements stock by quantity.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.Stock < quantity {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	return nil
}
