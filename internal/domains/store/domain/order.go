package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoLines         = errors.New("order must contain at least one line")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrUnknownProduct  = errors.New("product does not exist")
)

// LineRequest is one requested (product, quantity) pair of an order.
type LineRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

// Line is an order line with the product name and price captured at placement.
type Line struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// Subtotal is quantity times the snapshot unit price.
func (l Line) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// Order is an immutable record of a placed purchase. UserID and each line's
// ProductID are plain identifiers; the order does not own those entities.
type Order struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CustomerName string
	Lines        []Line
	CreatedAt    time.Time
}

// NewOrder builds an order from already-validated lines.
func NewOrder(id, userID uuid.UUID, customerName string, lines []Line, createdAt time.Time) (*Order, error) {
	o := &Order{
		ID:           id,
		UserID:       userID,
		CustomerName: customerName,
		Lines:        append([]Line(nil), lines...),
		CreatedAt:    createdAt,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Total sums the line subtotals.
func (o *Order) Total() float64 {
	var total float64
	for _, line := range o.Lines {
		total += line.Subtotal()
	}
	return total
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if len(o.Lines) == 0 {
		return ErrNoLines
	}
	for i, line := range o.Lines {
		if line.Quantity <= 0 {
			return &LineError{Index: i, ProductID: line.ProductID, Err: ErrInvalidQuantity}
		}
		if line.UnitPrice < 0 {
			return &LineError{Index: i, ProductID: line.ProductID, Err: ErrNegativePrice}
		}
	}
	return nil
}

// Clone returns a deep copy so stored orders cannot be mutated through returned values.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}

// LineError identifies the order line that caused a rejection.
type LineError struct {
	Index     int
	ProductID uuid.UUID
	Err       error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (product %s): %v", e.Index, e.ProductID, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
