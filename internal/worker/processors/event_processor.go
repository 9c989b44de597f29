package processors

import (
	"context"

	"storepress/internal/config"
	"storepress/internal/events"
	"storepress/internal/logger"
	"storepress/internal/worker/processors/indexing"
)

type EventProcessor struct {
	config   *config.Config
	logger   *logger.Logger
	indexing *indexing.Notifier
}

func NewEventProcessor(cfg *config.Config, log *logger.Logger) *EventProcessor {
	return &EventProcessor{
		config:   cfg,
		logger:   log.With("component", "processor"),
		indexing: indexing.New(cfg, log),
	}
}

func (ep *EventProcessor) Process(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.TypeProductPublished:
		return ep.indexing.ProductPublished(ctx, event)
	default:
		ep.logger.Debug("ignoring event", "type", event.Type)
		return nil
	}
}
