package kafka

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Producer is an asynchronous Kafka publisher. Messages are buffered on an
// inbox channel and flushed by a background goroutine so request handling
// never blocks on the broker.
type Producer struct {
	writer  *kafka.Writer
	inbox   chan kafka.Message
	closeCh chan struct{}
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewProducer builds a producer for the given brokers and topic.
func NewProducer(brokers []string, topic string, buffer int, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buffer),
		closeCh: make(chan struct{}),
		logger:  logger,
	}
}

// Start launches the flush loop. Cancelling ctx drains the inbox and closes
// the underlying writer.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				p.Close()
				for m := range p.inbox {
					p.write(m)
				}
				_ = p.writer.Close()
				close(p.closeCh)
				return
			case m, ok := <-p.inbox:
				if !ok {
					_ = p.writer.Close()
					close(p.closeCh)
					return
				}
				p.write(m)
			}
		}
	}()
}

// Publish enqueues a message. Drops the message with a warning when the inbox
// is full or the producer is closed; event publication is best effort. The
// mutex keeps the send from racing Close on the inbox channel.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) {
	msg := kafka.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.logger.Warn("kafka producer closed, dropping message", slog.String("key", string(key)))
		return
	}
	select {
	case p.inbox <- msg:
	default:
		p.logger.Warn("kafka inbox full, dropping message", slog.String("key", string(key)))
	}
}

// Close stops accepting messages and lets the flush loop drain what remains.
// Safe to call more than once and after the start context was cancelled.
func (p *Producer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.inbox)
}

// WaitClosed blocks until the flush loop has exited.
func (p *Producer) WaitClosed() { <-p.closeCh }

func (p *Producer) write(m kafka.Message) {
	if err := p.writer.WriteMessages(context.Background(), m); err != nil {
		p.logger.Error("kafka write failed", slog.String("error", err.Error()))
	}
}
