package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"storepress/internal/logger"
	"storepress/internal/models"
)

const TypeProductPublished = "product.published"

// Event is the wire format on the product-events topic.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits pipeline events to Kafka. Emission is strictly
// best-effort: every failure is logged and swallowed, and with no
// brokers configured the publisher is a no-op.
type Publisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

func NewPublisher(brokers, topic string, log *logger.Logger) *Publisher {
	p := &Publisher{log: log.With("component", "events")}
	if brokers == "" {
		return p
	}

	p.writer = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}
	return p
}

// ProductPublished emits one product.published event.
func (p *Publisher) ProductPublished(ctx context.Context, product *models.Product) {
	p.emit(ctx, Event{
		ID:        uuid.New().String(),
		Type:      TypeProductPublished,
		URL:       product.URL,
		Slug:      product.SlugValue(),
		Title:     product.Title,
		Timestamp: time.Now().UTC(),
	})
}

func (p *Publisher) emit(ctx context.Context, event Event) {
	if p.writer == nil {
		p.log.Debug("event bus not configured, dropping event", "type", event.Type)
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to marshal event", "type", event.Type, "error", err)
		return
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.URL),
		Value: value,
	}); err != nil {
		p.log.Error("failed to emit event", "type", event.Type, "error", err)
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
