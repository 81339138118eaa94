package ports

import (
	"context"
	"errors"

	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
)

var (
	// ErrNotFound signals a missing order.
	ErrNotFound = errors.New("order not found")
	// ErrInsufficientStock signals a referenced artwork is missing, inactive
	// or lacks stock for the requested quantity. Placement is all-or-nothing.
	ErrInsufficientStock = errors.New("artwork unavailable or insufficient stock")
	// ErrInvalidState signals a lifecycle operation on a non-pending order.
	ErrInvalidState = errors.New("order is not pending")
)

// AdminFilter narrows and pages the administrative listing.
type AdminFilter struct {
	UserID int64
	Status domain.Status
	Page   int
	Limit  int
}

// Repository owns order persistence including the transactional stock
// reservation performed at placement.
type Repository interface {
	// Place atomically validates stock for every line, creates the order with
	// server-side price snapshots, decrements stock and writes the total.
	// On any failure nothing is persisted and no stock moves.
	Place(ctx context.Context, userID int64, lines []domain.LineRequest) (*domain.Order, error)

	// GetByID returns the order with lines, artwork summaries and owner.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// ListByOwner returns one principal's orders, optionally filtered by status.
	ListByOwner(ctx context.Context, userID int64, status domain.Status) ([]*domain.Order, error)

	// ListPage returns a page of orders plus the total matching count.
	ListPage(ctx context.Context, filter AdminFilter) ([]*domain.Order, int64, error)

	// Complete transitions a pending order to completed. Stock is untouched.
	Complete(ctx context.Context, id int64) (*domain.Order, error)

	// Cancel restores the stock of every line and deletes the order and its
	// lines in a single transaction. Only pending orders may be cancelled.
	Cancel(ctx context.Context, id int64) error
}
