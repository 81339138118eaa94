package ports

import (
	"context"
	"errors"

	"github.com/galeria/marketplace-api/internal/domains/artworks/domain"
)

var ErrNotFound = errors.New("artwork not found")

// Filter narrows catalog listings.
type Filter struct {
	AuthorID   int64
	OnlyActive bool
}

type Repository interface {
	Save(ctx context.Context, artwork *domain.Artwork) (*domain.Artwork, error)
	GetByID(ctx context.Context, id int64) (*domain.Artwork, error)
	List(ctx context.Context, filter Filter) ([]*domain.Artwork, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}
