package application

import (
	"errors"
	"fmt"

	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput wraps request validation failures.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrNotAllowed signals the caller lacks rights for the operation.
	ErrNotAllowed = errors.New("operation not allowed")
)

func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrInvalidArtworkID),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidStatus):
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	default:
		return err
	}
}
