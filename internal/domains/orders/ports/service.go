package ports

import (
	"context"

	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
)

// Directory answers authorization questions about principals. Roles are
// resolved at call time, never taken from stale token claims.
type Directory interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// PlaceOrderInput is a placement request on behalf of one buyer.
type PlaceOrderInput struct {
	UserID int64
	Lines  []domain.LineRequest
}

// AdminListInput filters and pages the administrative listing.
type AdminListInput struct {
	CallerID int64
	UserID   int64
	Status   domain.Status
	Page     int
	Limit    int
}

// Page is one page of the administrative listing.
type Page struct {
	Orders     []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// Service exposes the order use cases.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	GetByID(ctx context.Context, callerID, orderID int64) (*domain.Order, error)
	ListOwn(ctx context.Context, userID int64, status domain.Status) ([]*domain.Order, error)
	ListAll(ctx context.Context, input AdminListInput) (*Page, error)
	Complete(ctx context.Context, callerID, orderID int64) (*domain.Order, error)
	Cancel(ctx context.Context, callerID, orderID int64) error
}
