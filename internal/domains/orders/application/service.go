package application

import (
	"context"
	"math"

	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
	"github.com/galeria/marketplace-api/internal/domains/orders/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Service orchestrates the order use cases: placement with stock reservation,
// listing, completion and cancellation with restitution.
type Service struct {
	repo      ports.Repository
	directory ports.Directory
	events    ports.EventPublisher
}

func NewService(repo ports.Repository, directory ports.Directory, events ports.EventPublisher) *Service {
	if events == nil {
		events = ports.NoopEvents{}
	}
	return &Service{repo: repo, directory: directory, events: events}
}

// PlaceOrder validates the request and delegates the atomic reservation to the
// repository. The buyer is always the caller; prices come from the catalog.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	if err := domain.ValidateRequest(input.Lines); err != nil {
		return nil, mapError(err)
	}
	order, err := s.repo.Place(ctx, input.UserID, input.Lines)
	if err != nil {
		return nil, err
	}
	s.events.OrderPlaced(ctx, order)
	return order, nil
}

// GetByID returns one order. Buyers see only their own orders; administrators
// see any.
func (s *Service) GetByID(ctx context.Context, callerID, orderID int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != callerID {
		admin, err := s.directory.IsAdmin(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, ErrNotAllowed
		}
	}
	return order, nil
}

// ListOwn returns the caller's orders, optionally filtered by status.
func (s *Service) ListOwn(ctx context.Context, userID int64, status domain.Status) ([]*domain.Order, error) {
	if status != "" && !domain.IsValidStatus(status) {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	return s.repo.ListByOwner(ctx, userID, status)
}

// ListAll returns a page of every order. Administrators only.
func (s *Service) ListAll(ctx context.Context, input ports.AdminListInput) (*ports.Page, error) {
	admin, err := s.directory.IsAdmin(ctx, input.CallerID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotAllowed
	}
	if input.Status != "" && !domain.IsValidStatus(input.Status) {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	orders, total, err := s.repo.ListPage(ctx, ports.AdminFilter{
		UserID: input.UserID,
		Status: input.Status,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	return &ports.Page{
		Orders:     orders,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Complete transitions a pending order to completed. Administrators only.
// Stock is not touched; the goods are considered delivered.
func (s *Service) Complete(ctx context.Context, callerID, orderID int64) (*domain.Order, error) {
	admin, err := s.directory.IsAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, ErrNotAllowed
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsPending() {
		return nil, ports.ErrInvalidState
	}
	completed, err := s.repo.Complete(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.events.OrderCompleted(ctx, completed)
	return completed, nil
}

// Cancel removes a pending order and returns its stock to the catalog.
// Allowed for the owner or an administrator.
func (s *Service) Cancel(ctx context.Context, callerID, orderID int64) error {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != callerID {
		admin, err := s.directory.IsAdmin(ctx, callerID)
		if err != nil {
			return err
		}
		if !admin {
			return ErrNotAllowed
		}
	}
	if !order.IsPending() {
		return ports.ErrInvalidState
	}
	if err := s.repo.Cancel(ctx, orderID); err != nil {
		return err
	}
	s.events.OrderCancelled(ctx, order)
	return nil
}

var _ ports.Service = (*Service)(nil)
