package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/galeria/marketplace-api/internal/domains/artworks/domain"
	"github.com/galeria/marketplace-api/internal/domains/artworks/ports"
)

var _ ports.Repository = (*Repository)(nil)

// ErrStockExhausted signals an adjustment would drive quantity negative.
var ErrStockExhausted = errors.New("artwork stock exhausted")

// Repository is an in-memory artwork persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	artworks map[int64]*domain.Artwork
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{artworks: map[int64]*domain.Artwork{}}
}

func (r *Repository) Save(_ context.Context, artwork *domain.Artwork) (*domain.Artwork, error) {
	if artwork == nil {
		return nil, errors.New("artwork is nil")
	}
	clone := cloneArtwork(artwork)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.artworks[clone.ID] = clone
	return cloneArtwork(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	artwork, ok := r.artworks[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneArtwork(artwork), nil
}

func (r *Repository) List(_ context.Context, filter ports.Filter) ([]*domain.Artwork, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Artwork, 0, len(r.artworks))
	for _, artwork := range r.artworks {
		if filter.AuthorID != 0 && artwork.AuthorID != filter.AuthorID {
			continue
		}
		if filter.OnlyActive && !artwork.Active {
			continue
		}
		list = append(list, cloneArtwork(artwork))
	}
	return list, nil
}

func (r *Repository) SetActive(_ context.Context, id int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	artwork, ok := r.artworks[id]
	if !ok {
		return ports.ErrNotFound
	}
	artwork.Active = active
	return nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.artworks[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.artworks, id)
	return nil
}

// AdjustQuantity applies a stock delta and guards against going negative.
// The orders memory adapter uses it for reservation and restitution.
func (r *Repository) AdjustQuantity(_ context.Context, id int64, delta int) (*domain.Artwork, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	artwork, ok := r.artworks[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	next := artwork.Quantity + delta
	if next < 0 {
		return nil, ErrStockExhausted
	}
	artwork.Quantity = next
	return cloneArtwork(artwork), nil
}

func cloneArtwork(a *domain.Artwork) *domain.Artwork {
	clone := *a
	if len(a.Tags) > 0 {
		clone.Tags = append([]string{}, a.Tags...)
	}
	return &clone
}
