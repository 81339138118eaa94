package ports

import (
	"context"

	"github.com/galeria/marketplace-api/internal/domains/artworks/domain"
)

// Directory answers the authorization questions the catalog needs, resolved
// freshly per request by the users bounded context.
type Directory interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	CanSell(ctx context.Context, userID int64) (bool, error)
}

// Service exposes artwork catalog use cases to adapters.
type Service interface {
	Create(ctx context.Context, callerID int64, artwork *domain.Artwork) (*domain.Artwork, error)
	GetByID(ctx context.Context, id int64) (*domain.Artwork, error)
	List(ctx context.Context, filter Filter) ([]*domain.Artwork, error)
	Deactivate(ctx context.Context, callerID, id int64) error
	Activate(ctx context.Context, callerID, id int64) error
}
