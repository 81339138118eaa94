package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	platformkafka "github.com/galeria/marketplace-api/internal/platform/kafka"

	"github.com/galeria/marketplace-api/internal/domains/orders/domain"
	"github.com/galeria/marketplace-api/internal/domains/orders/ports"
)

const (
	EventOrderPlaced    = "OrderPlaced"
	EventOrderCompleted = "OrderCompleted"
	EventOrderCancelled = "OrderCancelled"

	eventVersion = 1
	producerName = "galeria-api"
)

// Envelope is the versioned wrapper shared by every order event.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type linePayload struct {
	ArtworkID int64   `json:"artwork_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type orderPayload struct {
	OrderID int64         `json:"order_id"`
	UserID  int64         `json:"user_id"`
	Status  string        `json:"status"`
	Total   float64       `json:"total"`
	Lines   []linePayload `json:"lines"`
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher emits order lifecycle events to Kafka. Messages are keyed by
// order id so one order's events land on one partition in order.
type Publisher struct {
	producer *platformkafka.Producer
	logger   *slog.Logger
}

func NewPublisher(producer *platformkafka.Producer, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{producer: producer, logger: logger}
}

func (p *Publisher) OrderPlaced(ctx context.Context, order *domain.Order) {
	p.publish(ctx, EventOrderPlaced, order)
}

func (p *Publisher) OrderCompleted(ctx context.Context, order *domain.Order) {
	p.publish(ctx, EventOrderCompleted, order)
}

func (p *Publisher) OrderCancelled(ctx context.Context, order *domain.Order) {
	p.publish(ctx, EventOrderCancelled, order)
}

func (p *Publisher) publish(ctx context.Context, eventType string, order *domain.Order) {
	if p == nil || p.producer == nil || order == nil {
		return
	}
	payload := orderPayload{
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  string(order.Status),
		Total:   order.Total,
	}
	for _, line := range order.Lines {
		payload.Lines = append(payload.Lines, linePayload{
			ArtworkID: line.ArtworkID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal order event", slog.String("error", err.Error()))
		return
	}
	envelope := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  eventVersion,
		OccurredAt:    time.Now().UTC(),
		Producer:      producerName,
		CorrelationID: strconv.FormatInt(order.ID, 10),
		Payload:       raw,
	}
	if span := trace.SpanContextFromContext(ctx); span.HasTraceID() {
		envelope.TraceID = span.TraceID().String()
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("failed to marshal event envelope", slog.String("error", err.Error()))
		return
	}
	p.producer.Publish([]byte(envelope.CorrelationID), value)
}
