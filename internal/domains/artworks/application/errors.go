package application

import (
	"errors"
	"fmt"

	"github.com/galeria/marketplace-api/internal/domains/artworks/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid artwork input")

// ErrNotAllowed signals the caller lacks the role or ownership required.
var ErrNotAllowed = errors.New("caller is not allowed to manage this artwork")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyTitle) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidAuthor) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
