package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/galeria/marketplace-api/internal/domains/orders/application"
	ordersdomain "github.com/galeria/marketplace-api/internal/domains/orders/domain"
	ordersports "github.com/galeria/marketplace-api/internal/domains/orders/ports"
)

// PlaceOrderActivityName reserves stock and persists a new order.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Business failures cross the activity boundary as typed application errors;
// the starter maps the types back to the order port sentinels.
const (
	ErrTypeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrTypeInvalidInput      = "INVALID_INPUT"
	ErrTypeNotAllowed        = "NOT_ALLOWED"
	ErrTypeNotFound          = "NOT_FOUND"
	ErrTypeInvalidState      = "INVALID_STATE"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs the transactional placement and returns the stored order.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "userId", input.UserID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.UserID, "lines", len(input.Lines))
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.UserID, "error", err)
		return nil, typedBusinessError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID, "total", order.Total)
	return order, nil
}

// typedBusinessError converts known business failures into non-retryable
// application errors so the type survives serialization. Unknown errors pass
// through untouched.
func typedBusinessError(err error) error {
	errType := ""
	switch {
	case errors.Is(err, ordersports.ErrInsufficientStock):
		errType = ErrTypeInsufficientStock
	case errors.Is(err, ordersports.ErrNotFound):
		errType = ErrTypeNotFound
	case errors.Is(err, ordersports.ErrInvalidState):
		errType = ErrTypeInvalidState
	case errors.Is(err, ordersapp.ErrInvalidInput):
		errType = ErrTypeInvalidInput
	case errors.Is(err, ordersapp.ErrNotAllowed):
		errType = ErrTypeNotAllowed
	default:
		return err
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), errType, err)
}
