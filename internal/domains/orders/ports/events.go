package ports

import (
	"context"

	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
)

// EventPublisher emits order lifecycle notifications after state changes are
// committed. Publication is best effort and must never fail the use case.
type EventPublisher interface {
	OrderPlaced(ctx context.Context, order *domain.Order)
	OrderCompleted(ctx context.Context, order *domain.Order)
	OrderCancelled(ctx context.Context, order *domain.Order)
}

// NoopEvents discards every event. Used when no broker is configured.
type NoopEvents struct{}

func (NoopEvents) OrderPlaced(context.Context, *domain.Order)    {}
func (NoopEvents) OrderCompleted(context.Context, *domain.Order) {}
func (NoopEvents) OrderCancelled(context.Context, *domain.Order) {}

var _ EventPublisher = NoopEvents{}
