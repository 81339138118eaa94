package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	artworksmemory "github.com/galeria/marketplace-api/internal/domains/artworks/adapters/memory"
	artworksports "github.com/galeria/marketplace-api/internal/domains/artworks/ports"
	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
	"github.com/galeria/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order adapter backed by the in-memory artwork
// repository for stock movements. Development and test use only.
type Repository struct {
	mu       sync.RWMutex
	orders   map[int64]*domain.Order
	nextID   int64
	nextLine int64
	catalog  *artworksmemory.Repository
}

func NewRepository(catalog *artworksmemory.Repository) *Repository {
	return &Repository{orders: map[int64]*domain.Order{}, catalog: catalog}
}

// Place validates every line against current stock, then reserves the stock
// and records the order. A mid-reservation failure undoes earlier decrements
// so the adapter keeps the all-or-nothing contract of the port.
func (r *Repository) Place(ctx context.Context, userID int64, lines []domain.LineRequest) (*domain.Order, error) {
	for _, line := range lines {
		artwork, err := r.catalog.GetByID(ctx, line.ArtworkID)
		if err != nil {
			if errors.Is(err, artworksports.ErrNotFound) {
				return nil, fmt.Errorf("%w: artwork %d", ports.ErrInsufficientStock, line.ArtworkID)
			}
			return nil, err
		}
		if !artwork.Available(line.Quantity) {
			return nil, fmt.Errorf("%w: artwork %d", ports.ErrInsufficientStock, line.ArtworkID)
		}
	}

	reserved := make([]domain.LineRequest, 0, len(lines))
	rollback := func() {
		for _, line := range reserved {
			_, _ = r.catalog.AdjustQuantity(ctx, line.ArtworkID, line.Quantity)
		}
	}

	order := &domain.Order{
		UserID:   userID,
		Status:   domain.StatusPending,
		PlacedAt: time.Now().UTC(),
	}
	for _, line := range lines {
		artwork, err := r.catalog.AdjustQuantity(ctx, line.ArtworkID, -line.Quantity)
		if err != nil {
			rollback()
			if errors.Is(err, artworksmemory.ErrStockExhausted) || errors.Is(err, artworksports.ErrNotFound) {
				return nil, fmt.Errorf("%w: artwork %d", ports.ErrInsufficientStock, line.ArtworkID)
			}
			return nil, err
		}
		reserved = append(reserved, line)
		subtotal := artwork.Price * float64(line.Quantity)
		order.Lines = append(order.Lines, domain.Line{
			ArtworkID: line.ArtworkID,
			Quantity:  line.Quantity,
			UnitPrice: artwork.Price,
			Subtotal:  subtotal,
			Artwork: &domain.ArtworkSummary{
				ID:          artwork.ID,
				Title:       artwork.Title,
				Description: artwork.Description,
				Price:       artwork.Price,
				ImageURL:    artwork.ImageURL,
			},
		})
		order.Total += subtotal
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	for i := range order.Lines {
		r.nextLine++
		order.Lines[i].ID = r.nextLine
		order.Lines[i].OrderID = order.ID
	}
	r.orders[order.ID] = order
	return cloneOrder(order), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByOwner(_ context.Context, userID int64, status domain.Status) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		if status != "" && order.Status != status {
			continue
		}
		list = append(list, cloneOrder(order))
	}
	sortByPlacedDesc(list)
	return list, nil
}

func (r *Repository) ListPage(_ context.Context, filter ports.AdminFilter) ([]*domain.Order, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if filter.UserID != 0 && order.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		matched = append(matched, cloneOrder(order))
	}
	sortByPlacedDesc(matched)
	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []*domain.Order{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *Repository) Complete(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if order.Status != domain.StatusPending {
		return nil, ports.ErrInvalidState
	}
	order.Status = domain.StatusCompleted
	return cloneOrder(order), nil
}

func (r *Repository) Cancel(ctx context.Context, id int64) error {
	r.mu.Lock()
	order, ok := r.orders[id]
	if !ok {
		r.mu.Unlock()
		return ports.ErrNotFound
	}
	if order.Status != domain.StatusPending {
		r.mu.Unlock()
		return ports.ErrInvalidState
	}
	delete(r.orders, id)
	lines := order.Lines
	r.mu.Unlock()

	for _, line := range lines {
		_, _ = r.catalog.AdjustQuantity(ctx, line.ArtworkID, line.Quantity)
	}
	return nil
}

func sortByPlacedDesc(orders []*domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].PlacedAt.Equal(orders[j].PlacedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].PlacedAt.After(orders[j].PlacedAt)
	})
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Lines = make([]domain.Line, len(o.Lines))
	copy(clone.Lines, o.Lines)
	for i := range clone.Lines {
		if o.Lines[i].Artwork != nil {
			summary := *o.Lines[i].Artwork
			clone.Lines[i].Artwork = &summary
		}
	}
	if o.Owner != nil {
		owner := *o.Owner
		clone.Owner = &owner
	}
	return &clone
}
