package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-store-api/internal/domains/store/domain"
)

var (
	// ErrInvalidInput signals the request violated a catalog or order invariant.
	ErrInvalidInput = errors.New("invalid store input")
)

var validationErrors = []error{
	domain.ErrEmptyProductName,
	domain.ErrNegativePrice,
	domain.ErrNegativeStock,
	domain.ErrUnknownKind,
	domain.ErrInsufficientStock,
	domain.ErrNoLines,
	domain.ErrInvalidQuantity,
	domain.ErrUnknownProduct,
}

func mapError(err error) error {
	if err == nil || errors.Is(err, ErrInvalidInput) {
		return err
	}
	var lineErr *domain.LineError
	if errors.As(err, &lineErr) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return err
}
