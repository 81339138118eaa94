package ports

import (
	"context"

	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable workflow operations required by the
// orders bounded context.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
}
